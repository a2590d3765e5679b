// Package dispatch routes agent function-call events to the domain
// components and guarantees the agent always receives a well-formed result.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vsvipul11/ai-test-bot/internal/events"
	"github.com/vsvipul11/ai-test-bot/internal/observability/metrics"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// Call is one function invocation from the agent transport.
type Call struct {
	FunctionName string         `json:"function_name"`
	ToolCallID   string         `json:"tool_call_id,omitempty"`
	SessionID    string         `json:"session_id,omitempty"`
	Arguments    map[string]any `json:"arguments,omitempty"`
}

// Outcome is the terminal result of a dispatch. Result is always
// JSON-serializable; for unregistered functions it is nil with
// Handled=false so protocol drift never breaks the session.
type Outcome struct {
	FunctionName string `json:"function_name"`
	ToolCallID   string `json:"tool_call_id,omitempty"`
	Handled      bool   `json:"handled"`
	Success      bool   `json:"success"`
	Result       any    `json:"result"`
}

// State is the dispatcher's position in the call lifecycle.
type State int

const (
	StateIdle State = iota
	StateDispatching
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDispatching:
		return "dispatching"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handler executes one registered function. A returned error is converted to
// a structured failure result; it never propagates to the transport.
type Handler func(ctx context.Context, call Call) (any, error)

// EventPublisher broadcasts domain events to UI observers.
type EventPublisher interface {
	Publish(eventType, sessionID string, payload any)
}

// Dispatcher holds the function registry and serializes invocations so at
// most one call is in flight at a time.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[string]Handler
	state    State
	bus      EventPublisher
	metrics  *metrics.DispatchMetrics
	logger   *logging.Logger
}

// New creates a dispatcher with an empty registry.
func New(bus EventPublisher, m *metrics.DispatchMetrics, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		handlers: make(map[string]Handler),
		state:    StateIdle,
		bus:      bus,
		metrics:  m,
		logger:   logger,
	}
}

// Register binds a function name to its handler. Later registrations for the
// same name replace earlier ones.
func (d *Dispatcher) Register(name string, h Handler) {
	d.mu.Lock()
	d.handlers[name] = h
	d.mu.Unlock()
}

// State reports the current lifecycle state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Dispatch runs one function call to completion. It never returns an error
// and never panics: unknown functions yield an unhandled null result, and
// handler errors or panics yield a structured failure result.
func (d *Dispatcher) Dispatch(ctx context.Context, call Call) Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()

	outcome := Outcome{
		FunctionName: call.FunctionName,
		ToolCallID:   call.ToolCallID,
	}

	handler, ok := d.handlers[call.FunctionName]
	if !ok {
		d.logger.Warn("dispatch: unhandled function", "function", call.FunctionName)
		d.state = StateCompleted
		d.metrics.ObserveDispatch(call.FunctionName, "unhandled", 0)
		d.publishCompleted(call, outcome, 0)
		d.state = StateIdle
		return outcome
	}

	d.state = StateDispatching
	start := time.Now()

	result, err := d.run(ctx, handler, call)
	elapsed := time.Since(start)

	outcome.Handled = true
	if err != nil {
		d.state = StateFailed
		outcome.Result = failureResult(err)
		d.metrics.ObserveDispatch(call.FunctionName, "failure", elapsed.Seconds())
		d.logger.Warn("dispatch: function failed",
			"function", call.FunctionName,
			"session_id", call.SessionID,
			"error", err,
		)
	} else {
		d.state = StateCompleted
		outcome.Success = true
		outcome.Result = result
		d.metrics.ObserveDispatch(call.FunctionName, "success", elapsed.Seconds())
		d.logger.Info("dispatch: function completed",
			"function", call.FunctionName,
			"session_id", call.SessionID,
			"duration_ms", elapsed.Milliseconds(),
		)
	}

	d.publishCompleted(call, outcome, elapsed)
	d.state = StateIdle
	return outcome
}

// run invokes the handler with panic containment.
func (d *Dispatcher) run(ctx context.Context, h Handler, call Call) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatch: handler panicked",
				"function", call.FunctionName, "panic", r)
			result = nil
			err = fmt.Errorf("dispatch: %s: internal error", call.FunctionName)
		}
	}()
	return h(ctx, call)
}

func (d *Dispatcher) publishCompleted(call Call, outcome Outcome, elapsed time.Duration) {
	if d.bus == nil {
		return
	}
	d.bus.Publish(events.TypeDispatchCompleted, call.SessionID, events.DispatchCompletedV1{
		EventID:      uuid.NewString(),
		SessionID:    call.SessionID,
		FunctionName: call.FunctionName,
		Handled:      outcome.Handled,
		Success:      outcome.Success,
		DurationMS:   elapsed.Milliseconds(),
		CompletedAt:  time.Now().UTC(),
	})
}

// failureResult shapes an error into the agent-consumable failure object.
func failureResult(err error) map[string]any {
	return map[string]any{
		"success": false,
		"message": err.Error(),
	}
}

// decodeArgs maps loosely-typed agent arguments onto a typed request. The
// JSON round trip handles the numeric coercions the agent's runtime
// introduces (e.g. integer severity arriving as a float).
func decodeArgs(args map[string]any, dst any) error {
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("dispatch: encode arguments: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("dispatch: decode arguments: %w", err)
	}
	return nil
}

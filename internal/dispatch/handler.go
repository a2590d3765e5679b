package dispatch

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// FunctionCallEvent is the webhook payload the agent transport posts when
// the assistant invokes a tool. ToolCallID must be echoed back so the
// transport can correlate the result with the originating call.
type FunctionCallEvent struct {
	FunctionName string         `json:"function_name"`
	ToolCallID   string         `json:"tool_call_id,omitempty"`
	SessionID    string         `json:"session_id,omitempty"`
	Arguments    map[string]any `json:"arguments,omitempty"`
}

// FunctionCallResponse is the JSON body returned to the transport. The agent
// uses Result as the function's return value in the ongoing dialogue.
type FunctionCallResponse struct {
	ToolCallID   string `json:"tool_call_id,omitempty"`
	FunctionName string `json:"function_name"`
	Handled      bool   `json:"handled"`
	Success      bool   `json:"success"`
	Result       any    `json:"result"`
}

// HTTPHandler serves the agent transport's function-call webhook.
type HTTPHandler struct {
	dispatcher *Dispatcher
	logger     *logging.Logger
}

// NewHTTPHandler creates a webhook handler over the dispatcher.
func NewHTTPHandler(dispatcher *Dispatcher, logger *logging.Logger) *HTTPHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &HTTPHandler{dispatcher: dispatcher, logger: logger}
}

// HandleFunctionCall is the HTTP handler for POST /api/function-call.
// Malformed envelopes are the only 4xx path; once a call reaches the
// dispatcher the response is always 200 with a terminal result object.
func (h *HTTPHandler) HandleFunctionCall(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		h.logger.Error("dispatch: failed to read body", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var event FunctionCallEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("dispatch: failed to parse event", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if event.FunctionName == "" {
		http.Error(w, "function_name is required", http.StatusBadRequest)
		return
	}

	h.logger.Info("dispatch: received function call",
		"function", event.FunctionName,
		"session_id", event.SessionID,
		"tool_call_id", event.ToolCallID,
	)

	outcome := h.dispatcher.Dispatch(r.Context(), Call{
		FunctionName: event.FunctionName,
		ToolCallID:   event.ToolCallID,
		SessionID:    event.SessionID,
		Arguments:    event.Arguments,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(FunctionCallResponse{
		ToolCallID:   outcome.ToolCallID,
		FunctionName: outcome.FunctionName,
		Handled:      outcome.Handled,
		Success:      outcome.Success,
		Result:       outcome.Result,
	})
}

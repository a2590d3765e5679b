package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// Envelope wraps a domain event payload for delivery to subscribers. The
// payload is pre-marshaled so every subscriber sees the same bytes.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	SessionID  string          `json:"session_id,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Bus fans domain events out to in-process subscribers. UI surfaces attach
// through Subscribe; publishers never block on a slow subscriber.
type Bus struct {
	logger *logging.Logger

	mu   sync.RWMutex
	subs map[string]chan Envelope
}

// subscriberBuffer bounds how far a subscriber may fall behind before
// events are dropped for it.
const subscriberBuffer = 64

// NewBus creates an in-process event bus.
func NewBus(logger *logging.Logger) *Bus {
	if logger == nil {
		logger = logging.Default()
	}
	return &Bus{
		logger: logger,
		subs:   make(map[string]chan Envelope),
	}
}

// Publish marshals the payload and delivers it to all current subscribers.
// Delivery is best-effort: a subscriber whose buffer is full misses the event.
func (b *Bus) Publish(eventType, sessionID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("events: marshal payload", "type", eventType, "error", err)
		return
	}
	env := Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		SessionID:  sessionID,
		Payload:    data,
		OccurredAt: time.Now().UTC(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- env:
		default:
			b.logger.Warn("events: subscriber lagging, dropping event",
				"subscriber", id,
				"type", eventType,
			)
		}
	}
}

// Subscribe registers a new subscriber and returns its channel plus a cancel
// function. Cancel must be called to release the subscription.
func (b *Bus) Subscribe() (<-chan Envelope, func()) {
	id := uuid.NewString()
	ch := make(chan Envelope, subscriberBuffer)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if existing, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(existing)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// SubscriberCount reports how many subscribers are attached.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

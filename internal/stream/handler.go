// Package stream pushes domain events to UI observers over WebSocket so
// presentational surfaces can react without polling.
package stream

import (
	"net/http"

	"github.com/vsvipul11/ai-test-bot/internal/events"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
	"golang.org/x/net/websocket"
)

// statusMessage is a control frame sent to the client.
type statusMessage struct {
	Type      string `json:"type"` // "connected", "pong"
	SessionID string `json:"session_id,omitempty"`
}

// inboundMessage is what the client may send. Only pings are meaningful.
type inboundMessage struct {
	Type string `json:"type"`
}

// Handler bridges the event bus to WebSocket connections.
type Handler struct {
	bus    *events.Bus
	logger *logging.Logger
}

// NewHandler creates a WebSocket event stream handler.
func NewHandler(bus *events.Bus, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{bus: bus, logger: logger}
}

// HandleWebSocket upgrades to WebSocket and streams events. An optional
// "session" query parameter narrows delivery to that session's events plus
// events with no session scope.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionFilter := r.URL.Query().Get("session")

	ch, cancel := h.bus.Subscribe()
	defer cancel()

	_ = websocket.JSON.Send(conn, statusMessage{Type: "connected", SessionID: sessionFilter})

	h.logger.Info("stream: connection opened", "session_filter", sessionFilter)

	// The read loop exists to notice disconnects and answer pings.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg inboundMessage
			if err := websocket.JSON.Receive(conn, &msg); err != nil {
				h.logger.Debug("stream: connection closed", "error", err)
				return
			}
			if msg.Type == "ping" {
				_ = websocket.JSON.Send(conn, statusMessage{Type: "pong"})
			}
		}
	}()

	for {
		select {
		case env, ok := <-ch:
			if !ok {
				return
			}
			if !matches(sessionFilter, env.SessionID) {
				continue
			}
			if err := websocket.JSON.Send(conn, env); err != nil {
				h.logger.Debug("stream: send failed", "error", err)
				return
			}
		case <-done:
			return
		}
	}
}

// matches keeps session-scoped events on their own session while letting
// unscoped events reach every observer.
func matches(filter, eventSession string) bool {
	if filter == "" || eventSession == "" {
		return true
	}
	return filter == eventSession
}

package session

import (
	"encoding/json"
	"net/http"

	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// StartRequest optionally carries a previously issued session id so a
// reconnecting client keeps its identity.
type StartRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// StartResponse returns the session id the client should use from now on.
type StartResponse struct {
	SessionID string `json:"session_id"`
}

// Handler serves the session identity endpoint.
type Handler struct {
	manager *Manager
	logger  *logging.Logger
}

// NewHandler creates a session HTTP handler.
func NewHandler(manager *Manager, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{manager: manager, logger: logger}
}

// Start is the HTTP handler for POST /api/session. Calling it twice with the
// same session id returns that same id.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if r.Body != nil {
		// An empty or absent body means a brand new session.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	id := h.manager.GetOrCreate(r.Context(), req.SessionID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(StartResponse{SessionID: id})
}

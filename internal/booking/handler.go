package booking

import (
	"encoding/json"
	"net/http"

	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// CurrentResponse is the UI-facing view of the session's stored booking.
type CurrentResponse struct {
	Success bool     `json:"success"`
	Booking *Booking `json:"booking,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Handler serves the booking read endpoints for UI surfaces.
type Handler struct {
	orchestrator *Orchestrator
	logger       *logging.Logger
}

// NewHandler creates a booking HTTP handler.
func NewHandler(orchestrator *Orchestrator, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{orchestrator: orchestrator, logger: logger}
}

// Current is the HTTP handler for GET /api/booking. It returns the session's
// current booking, if one exists.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	b, ok, err := h.orchestrator.Current(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("booking: load current booking failed", "session_id", sessionID, "error", err)
		http.Error(w, "failed to load booking", http.StatusInternalServerError)
		return
	}

	resp := CurrentResponse{Success: true}
	if ok {
		resp.Booking = &b
	} else {
		resp.Message = "No booking found for this session"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// Clear is the HTTP handler for DELETE /api/booking. It discards the
// session's stored booking so a fresh consultation starts clean.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	if err := h.orchestrator.Clear(r.Context(), sessionID); err != nil {
		h.logger.Error("booking: clear booking failed", "session_id", sessionID, "error", err)
		http.Error(w, "failed to clear booking", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(CurrentResponse{Success: true, Message: "Booking cleared"})
}

package appointments

import (
	"encoding/json"
	"net/http"

	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// Handler serves the appointment lookup endpoint for UI surfaces. It shares
// the gateway with the agent's function call, so placeholder substitution and
// degraded results behave identically on both paths.
type Handler struct {
	gateway *Gateway
	logger  *logging.Logger
}

// NewHandler creates an appointments HTTP handler.
func NewHandler(gateway *Gateway, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{gateway: gateway, logger: logger}
}

// Lookup is the HTTP handler for GET /api/appointments.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	phoneNumber := r.URL.Query().Get("phoneNumber")
	if phoneNumber == "" {
		http.Error(w, "phoneNumber is required", http.StatusBadRequest)
		return
	}

	result := h.gateway.Check(r.Context(), phoneNumber)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

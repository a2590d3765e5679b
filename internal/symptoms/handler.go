package symptoms

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// Handler handles HTTP requests for the symptom ledger
type Handler struct {
	ledger *Ledger
	logger *logging.Logger
}

// NewHandler creates a new symptoms handler
func NewHandler(ledger *Ledger, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{ledger: ledger, logger: logger}
}

// RecordResponse is the response for a successful record.
type RecordResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	SessionID     string  `json:"session_id"`
	SymptomRecord *Record `json:"symptom_record"`
}

// Record handles POST /api/symptoms requests
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("symptoms: failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.ledger.Record(r.Context(), req)
	if err != nil {
		if isValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("symptoms: failed to record", "error", err)
		http.Error(w, "failed to record symptom", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RecordResponse{
		Success:       true,
		Message:       "Symptom recorded successfully",
		SessionID:     rec.SessionID,
		SymptomRecord: rec,
	})
}

// ListResponse is the response for listing a session's symptoms.
type ListResponse struct {
	Success   bool     `json:"success"`
	SessionID string   `json:"session_id"`
	Symptoms  []Record `json:"symptoms"`
}

// List handles GET /api/symptoms?session_id= requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	records, err := h.ledger.List(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("symptoms: failed to list", "error", err, "session_id", sessionID)
		http.Error(w, "failed to list symptoms", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{
		Success:   true,
		SessionID: sessionID,
		Symptoms:  records,
	})
}

// MergeRequest is the bulk path used when the agent wraps up an assessment.
type MergeRequest struct {
	SessionID string          `json:"session_id"`
	Symptoms  []RecordRequest `json:"symptoms"`
}

// MergeResponse reports what the merge appended.
type MergeResponse struct {
	Success  bool     `json:"success"`
	Appended int      `json:"appended"`
	Skipped  int      `json:"skipped"`
	Records  []Record `json:"records"`
}

// Merge handles POST /api/symptoms/merge requests
func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("symptoms: failed to decode merge request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	appended, err := h.ledger.Merge(r.Context(), req.SessionID, req.Symptoms)
	if err != nil {
		if isValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("symptoms: merge failed", "error", err, "session_id", req.SessionID)
		http.Error(w, "failed to merge symptoms", http.StatusInternalServerError)
		return
	}

	if appended == nil {
		appended = []Record{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MergeResponse{
		Success:  true,
		Appended: len(appended),
		Skipped:  len(req.Symptoms) - len(appended),
		Records:  appended,
	})
}

func isValidation(err error) bool {
	return errors.Is(err, ErrMissingSymptom) ||
		errors.Is(err, ErrMissingSession) ||
		errors.Is(err, ErrInvalidSeverity)
}

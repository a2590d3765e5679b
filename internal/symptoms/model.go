package symptoms

import (
	"strings"
	"time"
)

// Record is one reported symptom. Records are append-only: once written they
// are never mutated or deleted.
type Record struct {
	Symptom   string    `json:"symptom"`
	Severity  int       `json:"severity,omitempty"`
	Duration  string    `json:"duration,omitempty"`
	Location  string    `json:"location,omitempty"`
	Triggers  string    `json:"triggers,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// RecordRequest is the input for recording a symptom.
type RecordRequest struct {
	Symptom   string `json:"symptom"`
	Severity  int    `json:"severity,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Location  string `json:"location,omitempty"`
	Triggers  string `json:"triggers,omitempty"`
	SessionID string `json:"session_id"`
}

// Validate validates the record request
func (r *RecordRequest) Validate() error {
	if strings.TrimSpace(r.Symptom) == "" {
		return ErrMissingSymptom
	}
	if strings.TrimSpace(r.SessionID) == "" {
		return ErrMissingSession
	}
	if r.Severity < 0 || r.Severity > 10 {
		return ErrInvalidSeverity
	}
	return nil
}

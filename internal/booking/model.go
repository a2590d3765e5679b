// Package booking turns a validated booking request into an upstream
// reservation, normalizes the confirmation, and persists the current booking
// for the session.
package booking

import "time"

// Booking is the normalized confirmation kept as the session's current
// booking. A new booking overwrites the previous one.
type Booking struct {
	Doctor           string    `json:"doctor"`
	Date             string    `json:"date"`
	StartDateTime    string    `json:"startDateTime"`
	ConsultationType string    `json:"consultation_type"`
	Campus           string    `json:"campus,omitempty"`
	PatientName      string    `json:"patient_name"`
	MobileNumber     string    `json:"mobile_number"`
	PaymentMode      string    `json:"payment_mode,omitempty"`
	PaymentURL       string    `json:"payment_url,omitempty"`
	ReferenceID      string    `json:"reference_id,omitempty"`
	LeadID           string    `json:"lead_id,omitempty"`
	BookedAt         time.Time `json:"booked_at"`
}

// Request is the agent-supplied booking payload. SelectedDay, StartTime,
// ConsultationType, PatientName, and MobileNumber have no fallback; the rest
// default from the last slot query context and then the configured baseline.
type Request struct {
	WeekSelection    string `json:"week_selection,omitempty"`
	SelectedDay      string `json:"selected_day"`
	StartTime        string `json:"start_time"`
	ConsultationType string `json:"consultation_type"`
	CampusID         string `json:"campus_id,omitempty"`
	SpecialityID     string `json:"speciality_id,omitempty"`
	PatientName      string `json:"patient_name"`
	MobileNumber     string `json:"mobile_number"`
	PaymentMode      string `json:"payment_mode,omitempty"`
	SessionID        string `json:"session_id,omitempty"`
}

// Result is the agent-facing reply for book_appointment. Failures are
// expressed through Success and Message, never through an error the caller
// must catch.
type Result struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Booking    *Booking `json:"booking,omitempty"`
	PaymentURL string   `json:"payment_url,omitempty"`
	Error      string   `json:"error,omitempty"`
}

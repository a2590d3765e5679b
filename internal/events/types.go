package events

import "time"

// Event type names used on the bus and over the UI stream.
const (
	TypeSymptomRecorded    = "symptom.recorded"
	TypeAppointmentChecked = "appointment.checked"
	TypeSlotsFetched       = "slots.fetched"
	TypeBookingCompleted   = "booking.completed"
	TypeDispatchCompleted  = "dispatch.completed"
)

type SymptomRecordedV1 struct {
	EventID    string    `json:"event_id"`
	SessionID  string    `json:"session_id"`
	Symptom    string    `json:"symptom"`
	Severity   int       `json:"severity,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	Location   string    `json:"location,omitempty"`
	Triggers   string    `json:"triggers,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type AppointmentCheckedV1 struct {
	EventID     string    `json:"event_id"`
	PhoneNumber string    `json:"phone_number"`
	Found       bool      `json:"found"`
	Date        string    `json:"date,omitempty"`
	Time        string    `json:"time,omitempty"`
	Doctor      string    `json:"doctor,omitempty"`
	Type        string    `json:"type,omitempty"`
	Campus      string    `json:"campus,omitempty"`
	Status      string    `json:"status,omitempty"`
	Degraded    bool      `json:"degraded,omitempty"`
	Message     string    `json:"message,omitempty"`
	CheckedAt   time.Time `json:"checked_at"`
}

type SlotV1 struct {
	TimeRange string `json:"time_range"`
	StartTime string `json:"start_time"`
	Formatted string `json:"formatted"`
}

type SlotsFetchedV1 struct {
	EventID          string    `json:"event_id"`
	Date             string    `json:"date"`
	ConsultationType string    `json:"consultation_type"`
	Campus           string    `json:"campus"`
	WeekSelection    string    `json:"week_selection"`
	SelectedDay      string    `json:"selected_day"`
	SlotCount        int       `json:"slot_count"`
	Slots            []SlotV1  `json:"slots"`
	FetchedAt        time.Time `json:"fetched_at"`
}

type BookingCompletedV1 struct {
	EventID          string    `json:"event_id"`
	SessionID        string    `json:"session_id,omitempty"`
	Doctor           string    `json:"doctor"`
	Date             string    `json:"date"`
	StartDateTime    string    `json:"start_date_time"`
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

type DispatchCompletedV1 struct {
	EventID      string    `json:"event_id"`
	SessionID    string    `json:"session_id,omitempty"`
	FunctionName string    `json:"function_name"`
	Handled      bool      `json:"handled"`
	Success      bool      `json:"success"`
	DurationMS   int64     `json:"duration_ms"`
	CompletedAt  time.Time `json:"completed_at"`
}

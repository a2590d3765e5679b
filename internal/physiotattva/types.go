package physiotattva

import "encoding/json"

// UpstreamAppointment is the raw appointment object returned by the
// follow-up endpoint. Most fields are optional in practice; normalization
// happens in the gateways.
type UpstreamAppointment struct {
	ID               json.Number `json:"id,omitempty"`
	StartDateTime    string      `json:"startDateTime"`
	EndDateTime      string      `json:"endDateTime,omitempty"`
	Doctor           string      `json:"doctor"`
	ConsultationType string      `json:"consultationType"`
	Campus           string      `json:"campus,omitempty"`
	Status           string      `json:"status"`
	PatientName      string      `json:"patientName,omitempty"`
	CallerName       string      `json:"callerName,omitempty"`
}

// FollowUpResponse is the envelope for GET /follow-up-appointments/{phone}.
// A success=true response with no appointment object means the patient has
// no upcoming appointment; the upstream does not distinguish that from some
// error states, which the lookup gateway treats as "zero appointments".
type FollowUpResponse struct {
	Success     bool                 `json:"success"`
	Appointment *UpstreamAppointment `json:"appointment,omitempty"`
	Message     string               `json:"message,omitempty"`
}

// SlotQuery holds the query parameters for GET /fetch-slots.
type SlotQuery struct {
	WeekSelection    string
	SelectedDay      string
	ConsultationType string
	CampusID         string
}

// FetchSlotsResponse is the envelope for GET /fetch-slots. HourlySlots maps
// keys like "slot_available_9-10" to an availability marker ("available" or
// anything else).
type FetchSlotsResponse struct {
	Success        bool              `json:"success"`
	SearchCriteria SearchCriteria    `json:"search_criteria"`
	HourlySlots    map[string]string `json:"hourly_slots"`
	Message        string            `json:"message,omitempty"`
}

// SearchCriteria echoes the resolved query, including the concrete date the
// day/week selection landed on.
type SearchCriteria struct {
	Date string `json:"date"`
}

// BookRequest is the body for POST /book-appointment.
type BookRequest struct {
	WeekSelection    string `json:"week_selection"`
	SelectedDay      string `json:"selected_day"`
	StartTime        string `json:"start_time"`
	ConsultationType string `json:"consultation_type"`
	CampusID         string `json:"campus_id"`
	SpecialityID     string `json:"speciality_id"`
	UserID           string `json:"user_id"`
	PatientName      string `json:"patient_name"`
	MobileNumber     string `json:"mobile_number"`
	PaymentMode      string `json:"payment_mode"`
}

// AppointmentInfo is the booking confirmation sub-object.
type AppointmentInfo struct {
	AppointedDoctor  string      `json:"appointed_doctor"`
	CalculatedDate   string      `json:"calculated_date"`
	StartDateTime    string      `json:"startDateTime"`
	ConsultationType string      `json:"consultation_type"`
	LeadID           json.Number `json:"lead_id,omitempty"`
	PaymentMode      string      `json:"payment_mode,omitempty"`
}

// PaymentInfo carries the payment link for "pay now" bookings.
type PaymentInfo struct {
	ShortURL    string `json:"short_url,omitempty"`
	ReferenceID string `json:"reference_id,omitempty"`
}

// BookResponse is the envelope for POST /book-appointment.
type BookResponse struct {
	Success         bool             `json:"success"`
	AppointmentInfo *AppointmentInfo `json:"appointmentInfo,omitempty"`
	Payment         *PaymentInfo     `json:"payment,omitempty"`
	Message         string           `json:"message,omitempty"`
}

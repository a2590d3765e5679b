// Package appointments normalizes remote appointment lookups into a stable
// shape the agent and UI can rely on, regardless of how ragged the upstream
// response is.
package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vsvipul11/ai-test-bot/internal/events"
	"github.com/vsvipul11/ai-test-bot/internal/physiotattva"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// Appointment is the normalized view of an upstream appointment.
type Appointment struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Doctor string `json:"doctor"`
	Type   string `json:"type"`
	Campus string `json:"campus"`
	Status string `json:"status"`
	// PatientName falls back to the caller name when the structured field
	// is absent upstream.
	PatientName string `json:"patient_name,omitempty"`
}

// LookupResult is the agent-facing reply for check_appointment. It is always
// well-formed: upstream failures degrade to a "no appointments" result with
// Success=false rather than an error.
type LookupResult struct {
	Success          bool          `json:"success"`
	PhoneNumber      string        `json:"phone_number"`
	HasAppointments  bool          `json:"has_appointments"`
	Appointments     []Appointment `json:"appointments"`
	AppointmentCount int           `json:"appointment_count"`
	Message          string        `json:"message"`
	Error            string        `json:"error,omitempty"`
}

// upstreamClient is the slice of the scheduling API the gateway uses.
type upstreamClient interface {
	FollowUpAppointments(ctx context.Context, phoneNumber string) (*physiotattva.FollowUpResponse, error)
}

// EventPublisher broadcasts domain events to UI observers.
type EventPublisher interface {
	Publish(eventType, sessionID string, payload any)
}

// Placeholder strings the agent sometimes extracts instead of an actual
// phone number. Both resolve to the configured fallback number.
var phonePlaceholders = map[string]struct{}{
	"patient_phone_number":   {},
	"patient's phone number": {},
}

// Gateway resolves appointment lookups against the scheduling API.
type Gateway struct {
	client        upstreamClient
	bus           EventPublisher
	fallbackPhone string
	logger        *logging.Logger
}

// NewGateway creates an appointment lookup gateway. fallbackPhone substitutes
// for empty or placeholder phone numbers.
func NewGateway(client upstreamClient, bus EventPublisher, fallbackPhone string, logger *logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{
		client:        client,
		bus:           bus,
		fallbackPhone: fallbackPhone,
		logger:        logger,
	}
}

// Check looks up the current appointment for a phone number. It never
// returns an error: failures are absorbed into a degraded LookupResult so
// the conversation can continue.
func (g *Gateway) Check(ctx context.Context, phoneNumber string) LookupResult {
	phone := g.resolvePhone(phoneNumber)

	resp, err := g.client.FollowUpAppointments(ctx, phone)
	if err != nil {
		g.logger.Error("appointments: upstream lookup failed", "phone", phone, "error", err)
		result := LookupResult{
			Success:      false,
			PhoneNumber:  phone,
			Appointments: []Appointment{},
			Error:        err.Error(),
			Message:      fmt.Sprintf("Unable to retrieve appointments for %s. Please try again later.", phone),
		}
		g.publishChecked(phone, result, true)
		return result
	}

	var appts []Appointment
	// Absence of the appointment object on a success envelope means "no
	// upcoming appointment": a successful empty result, not an error. The
	// upstream does not let us tell those apart, so we preserve that reading.
	if resp.Success && resp.Appointment != nil {
		appts = append(appts, normalize(resp.Appointment))
	}
	if appts == nil {
		appts = []Appointment{}
	}

	result := LookupResult{
		Success:          true,
		PhoneNumber:      phone,
		HasAppointments:  len(appts) > 0,
		Appointments:     appts,
		AppointmentCount: len(appts),
	}
	if len(appts) > 0 {
		result.Message = fmt.Sprintf("Found %d upcoming appointment for phone number %s", len(appts), phone)
	} else {
		result.Message = fmt.Sprintf("No upcoming appointments found for phone number %s", phone)
	}

	g.publishChecked(phone, result, false)
	return result
}

func (g *Gateway) resolvePhone(phoneNumber string) string {
	phone := strings.TrimSpace(phoneNumber)
	if phone == "" {
		return g.fallbackPhone
	}
	if _, placeholder := phonePlaceholders[phone]; placeholder {
		return g.fallbackPhone
	}
	return phone
}

// normalize maps a raw upstream appointment to the stable internal shape,
// deriving independent date and time strings from the combined timestamp.
func normalize(a *physiotattva.UpstreamAppointment) Appointment {
	date, timeOfDay := formatStartDateTime(a.StartDateTime)

	campus := a.Campus
	if campus == "" {
		campus = "Online"
	}
	patient := a.PatientName
	if patient == "" {
		patient = a.CallerName
	}

	return Appointment{
		Date:        date,
		Time:        timeOfDay,
		Doctor:      a.Doctor,
		Type:        a.ConsultationType,
		Campus:      campus,
		Status:      a.Status,
		PatientName: patient,
	}
}

// formatStartDateTime splits the upstream's combined timestamp into a
// human-formatted date and a 12-hour time. Unparseable input passes through
// as the date with an empty time rather than dropping the appointment.
func formatStartDateTime(raw string) (string, string) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("January 2, 2006"), t.Format("3:04 PM")
		}
	}
	return raw, ""
}

func (g *Gateway) publishChecked(phone string, result LookupResult, degraded bool) {
	if g.bus == nil {
		return
	}
	ev := events.AppointmentCheckedV1{
		EventID:     uuid.NewString(),
		PhoneNumber: phone,
		Found:       result.HasAppointments,
		Degraded:    degraded,
		Message:     result.Message,
		CheckedAt:   time.Now().UTC(),
	}
	if len(result.Appointments) > 0 {
		a := result.Appointments[0]
		ev.Date, ev.Time, ev.Doctor = a.Date, a.Time, a.Doctor
		ev.Type, ev.Campus, ev.Status = a.Type, a.Campus, a.Status
	}
	g.bus.Publish(events.TypeAppointmentChecked, "", ev)
}

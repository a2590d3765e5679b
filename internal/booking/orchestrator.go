package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vsvipul11/ai-test-bot/internal/events"
	"github.com/vsvipul11/ai-test-bot/internal/physiotattva"
	"github.com/vsvipul11/ai-test-bot/internal/slots"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// upstreamClient is the slice of the scheduling API the orchestrator uses.
type upstreamClient interface {
	BookAppointment(ctx context.Context, req physiotattva.BookRequest) (*physiotattva.BookResponse, error)
}

// slotContext reads the last successful slot query for defaulting.
type slotContext interface {
	Get() (slots.QueryContext, bool)
}

// EventPublisher broadcasts domain events to UI observers.
type EventPublisher interface {
	Publish(eventType, sessionID string, payload any)
}

// Defaults is the baseline used when neither the request nor the cached slot
// context supplies a value.
type Defaults struct {
	WeekSelection string
	CampusID      string
	SpecialityID  string
	PaymentMode   string
}

// Orchestrator books appointments against the scheduling API and keeps the
// session's current booking.
type Orchestrator struct {
	client   upstreamClient
	slotCtx  slotContext
	store    Store
	bus      EventPublisher
	defaults Defaults
	logger   *logging.Logger
}

// NewOrchestrator creates a booking orchestrator.
func NewOrchestrator(client upstreamClient, slotCtx slotContext, store Store, bus EventPublisher, defaults Defaults, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{
		client:   client,
		slotCtx:  slotCtx,
		store:    store,
		bus:      bus,
		defaults: defaults,
		logger:   logger,
	}
}

// Book validates the request, fills omitted optional fields from the cached
// slot context and then the baseline defaults, and books upstream. Missing
// required fields return a validation error before any network call; upstream
// failures come back as a structured failure result with a nil error.
func (o *Orchestrator) Book(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	o.fillDefaults(&req)

	upstream := physiotattva.BookRequest{
		WeekSelection:    req.WeekSelection,
		SelectedDay:      slots.CanonicalDay(req.SelectedDay),
		StartTime:        req.StartTime,
		ConsultationType: req.ConsultationType,
		CampusID:         req.CampusID,
		SpecialityID:     req.SpecialityID,
		PatientName:      req.PatientName,
		MobileNumber:     req.MobileNumber,
		PaymentMode:      req.PaymentMode,
	}

	resp, err := o.client.BookAppointment(ctx, upstream)
	if err != nil || !resp.Success {
		if err != nil {
			o.logger.Error("booking: upstream booking failed", "patient", req.PatientName, "error", err)
		} else {
			o.logger.Warn("booking: upstream rejected booking", "patient", req.PatientName, "message", resp.Message)
		}
		result := Result{
			Success: false,
			Message: "Unable to book the appointment. Please try again.",
		}
		if err != nil {
			result.Error = err.Error()
		}
		return result, nil
	}

	booked := o.normalize(req, resp)

	if err := o.store.Save(ctx, req.SessionID, booked); err != nil {
		// The upstream reservation exists either way; losing the local copy
		// is survivable.
		o.logger.Warn("booking: persist current booking failed", "session_id", req.SessionID, "error", err)
	}

	o.publishCompleted(req.SessionID, booked)

	result := Result{
		Success:    true,
		Message:    "Appointment booked with " + booked.Doctor + " on " + booked.Date,
		Booking:    &booked,
		PaymentURL: booked.PaymentURL,
	}
	o.logger.Info("booking: appointment booked",
		"session_id", req.SessionID,
		"doctor", booked.Doctor,
		"date", booked.Date,
		"consultation_type", booked.ConsultationType,
	)
	return result, nil
}

// Current returns the session's stored booking, if any.
func (o *Orchestrator) Current(ctx context.Context, sessionID string) (Booking, bool, error) {
	return o.store.Current(ctx, sessionID)
}

// Clear removes the session's stored booking.
func (o *Orchestrator) Clear(ctx context.Context, sessionID string) error {
	return o.store.Clear(ctx, sessionID)
}

func validate(req Request) error {
	switch {
	case req.SelectedDay == "":
		return &slots.MissingFieldError{Field: "selected_day"}
	case req.StartTime == "":
		return &slots.MissingFieldError{Field: "start_time"}
	case req.ConsultationType == "":
		return &slots.MissingFieldError{Field: "consultation_type"}
	case req.PatientName == "":
		return &slots.MissingFieldError{Field: "patient_name"}
	case req.MobileNumber == "":
		return &slots.MissingFieldError{Field: "mobile_number"}
	}
	return nil
}

// fillDefaults resolves omitted optional fields: cached slot context first,
// configured baseline second.
func (o *Orchestrator) fillDefaults(req *Request) {
	var cached slots.QueryContext
	if o.slotCtx != nil {
		cached, _ = o.slotCtx.Get()
	}
	if req.WeekSelection == "" {
		req.WeekSelection = cached.WeekSelection
	}
	if req.WeekSelection == "" {
		req.WeekSelection = o.defaults.WeekSelection
	}
	if req.CampusID == "" {
		req.CampusID = cached.CampusID
	}
	if req.CampusID == "" {
		req.CampusID = o.defaults.CampusID
	}
	if req.SpecialityID == "" {
		req.SpecialityID = o.defaults.SpecialityID
	}
	if req.PaymentMode == "" {
		req.PaymentMode = o.defaults.PaymentMode
	}
}

func (o *Orchestrator) normalize(req Request, resp *physiotattva.BookResponse) Booking {
	b := Booking{
		ConsultationType: req.ConsultationType,
		Campus:           req.CampusID,
		PatientName:      req.PatientName,
		MobileNumber:     req.MobileNumber,
		PaymentMode:      req.PaymentMode,
		BookedAt:         time.Now().UTC(),
	}
	if info := resp.AppointmentInfo; info != nil {
		b.Doctor = info.AppointedDoctor
		b.Date = info.CalculatedDate
		b.StartDateTime = info.StartDateTime
		if info.ConsultationType != "" {
			b.ConsultationType = info.ConsultationType
		}
		b.LeadID = info.LeadID.String()
		if info.PaymentMode != "" {
			b.PaymentMode = info.PaymentMode
		}
	}
	if pay := resp.Payment; pay != nil {
		b.PaymentURL = pay.ShortURL
		b.ReferenceID = pay.ReferenceID
	}
	return b
}

func (o *Orchestrator) publishCompleted(sessionID string, b Booking) {
	if o.bus == nil {
		return
	}
	o.bus.Publish(events.TypeBookingCompleted, sessionID, events.BookingCompletedV1{
		EventID:          uuid.NewString(),
		SessionID:        sessionID,
		Doctor:           b.Doctor,
		Date:             b.Date,
		StartDateTime:    b.StartDateTime,
		ConsultationType: b.ConsultationType,
		Campus:           b.Campus,
		PatientName:      b.PatientName,
		MobileNumber:     b.MobileNumber,
		PaymentMode:      b.PaymentMode,
		PaymentURL:       b.PaymentURL,
		ReferenceID:      b.ReferenceID,
		LeadID:           b.LeadID,
		BookedAt:         b.BookedAt,
	})
}

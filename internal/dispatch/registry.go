package dispatch

import (
	"context"

	"github.com/vsvipul11/ai-test-bot/internal/appointments"
	"github.com/vsvipul11/ai-test-bot/internal/booking"
	"github.com/vsvipul11/ai-test-bot/internal/slots"
	"github.com/vsvipul11/ai-test-bot/internal/symptoms"
)

// Function names the agent is allowed to invoke.
const (
	FuncRecordSymptom    = "record_symptom"
	FuncCheckAppointment = "check_appointment"
	FuncFetchSlots       = "fetch_slots"
	FuncBookAppointment  = "book_appointment"
)

// Services groups the domain components behind the function registry.
type Services struct {
	Symptoms     *symptoms.Ledger
	Appointments *appointments.Gateway
	Slots        *slots.Gateway
	Booking      *booking.Orchestrator
}

// RegisterDomain binds the consultation functions to their handlers.
func (d *Dispatcher) RegisterDomain(s Services) {
	d.Register(FuncRecordSymptom, recordSymptomHandler(s.Symptoms))
	d.Register(FuncCheckAppointment, checkAppointmentHandler(s.Appointments))
	d.Register(FuncFetchSlots, fetchSlotsHandler(s.Slots))
	d.Register(FuncBookAppointment, bookAppointmentHandler(s.Booking))
}

func recordSymptomHandler(ledger *symptoms.Ledger) Handler {
	return func(ctx context.Context, call Call) (any, error) {
		var req symptoms.RecordRequest
		if err := decodeArgs(call.Arguments, &req); err != nil {
			return nil, err
		}
		if req.SessionID == "" {
			req.SessionID = call.SessionID
		}
		rec, err := ledger.Record(ctx, req)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"success":    true,
			"message":    "Symptom recorded",
			"session_id": rec.SessionID,
			"symptom":    rec,
		}, nil
	}
}

func checkAppointmentHandler(gw *appointments.Gateway) Handler {
	return func(ctx context.Context, call Call) (any, error) {
		var args struct {
			PhoneNumber string `json:"phone_number"`
		}
		if err := decodeArgs(call.Arguments, &args); err != nil {
			return nil, err
		}
		// Check absorbs upstream failures into the result object.
		return gw.Check(ctx, args.PhoneNumber), nil
	}
}

func fetchSlotsHandler(gw *slots.Gateway) Handler {
	return func(ctx context.Context, call Call) (any, error) {
		var req slots.FetchRequest
		if err := decodeArgs(call.Arguments, &req); err != nil {
			return nil, err
		}
		result, err := gw.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func bookAppointmentHandler(o *booking.Orchestrator) Handler {
	return func(ctx context.Context, call Call) (any, error) {
		var req booking.Request
		if err := decodeArgs(call.Arguments, &req); err != nil {
			return nil, err
		}
		if req.SessionID == "" {
			req.SessionID = call.SessionID
		}
		result, err := o.Book(ctx, req)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

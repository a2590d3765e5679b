package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vsvipul11/ai-test-bot/internal/events"
	"github.com/vsvipul11/ai-test-bot/internal/physiotattva"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// FetchRequest is the agent-supplied slot query. SelectedDay is the one
// required field; the upstream query is meaningless without it.
type FetchRequest struct {
	WeekSelection    string `json:"week_selection,omitempty"`
	SelectedDay      string `json:"selected_day"`
	ConsultationType string `json:"consultation_type,omitempty"`
	CampusID         string `json:"campus_id,omitempty"`
}

// FetchResult is the agent-facing reply for fetch_slots.
type FetchResult struct {
	Success          bool   `json:"success"`
	Date             string `json:"date,omitempty"`
	AvailableSlots   []Slot `json:"available_slots"`
	TotalAvailable   int    `json:"total_available"`
	ConsultationType string `json:"consultation_type,omitempty"`
	Campus           string `json:"campus,omitempty"`
	Message          string `json:"message"`
	Error            string `json:"error,omitempty"`
}

// upstreamClient is the slice of the scheduling API the gateway uses.
type upstreamClient interface {
	FetchSlots(ctx context.Context, q physiotattva.SlotQuery) (*physiotattva.FetchSlotsResponse, error)
}

// EventPublisher broadcasts domain events to UI observers.
type EventPublisher interface {
	Publish(eventType, sessionID string, payload any)
}

// Defaults fills optional query fields the agent leaves out.
type Defaults struct {
	WeekSelection    string
	ConsultationType string
	CampusID         string
}

// Gateway queries slot availability and keeps the last successful query
// context cached for the booking flow.
type Gateway struct {
	client   upstreamClient
	cache    *Cache
	bus      EventPublisher
	defaults Defaults
	logger   *logging.Logger
}

// NewGateway creates a slot discovery gateway.
func NewGateway(client upstreamClient, cache *Cache, bus EventPublisher, defaults Defaults, logger *logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{
		client:   client,
		cache:    cache,
		bus:      bus,
		defaults: defaults,
		logger:   logger,
	}
}

// ErrMissingDay reports a fetch with no selected day.
var ErrMissingDay = &MissingFieldError{Field: "selected_day"}

// MissingFieldError is a validation failure for a required field with no
// fallback default.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}

// Fetch validates the query, asks upstream for availability, and returns the
// normalized slot list. Validation failures return an error before any
// network call; upstream failures return a well-formed degraded result.
func (g *Gateway) Fetch(ctx context.Context, req FetchRequest) (FetchResult, error) {
	if req.SelectedDay == "" {
		return FetchResult{}, ErrMissingDay
	}

	week := req.WeekSelection
	if week == "" {
		week = g.defaults.WeekSelection
	}
	consultationType := req.ConsultationType
	if consultationType == "" {
		consultationType = g.defaults.ConsultationType
	}
	campus := req.CampusID
	if campus == "" {
		campus = g.defaults.CampusID
	}
	day := CanonicalDay(req.SelectedDay)

	resp, err := g.client.FetchSlots(ctx, physiotattva.SlotQuery{
		WeekSelection:    week,
		SelectedDay:      day,
		ConsultationType: consultationType,
		CampusID:         campus,
	})
	if err != nil || !resp.Success {
		if err != nil {
			g.logger.Error("slots: upstream fetch failed", "day", day, "error", err)
		} else {
			g.logger.Warn("slots: upstream reported failure", "day", day, "message", resp.Message)
		}
		// Whatever was cached no longer reflects reality.
		g.cache.Clear()

		result := FetchResult{
			Success:        false,
			AvailableSlots: []Slot{},
			Message:        "Unable to fetch available slots. Please try again or select a different day.",
		}
		if err != nil {
			result.Error = err.Error()
		}
		return result, nil
	}

	available := parseSlots(resp.HourlySlots)
	date := resp.SearchCriteria.Date

	g.cache.Set(QueryContext{
		Date:             date,
		ConsultationType: consultationType,
		CampusID:         campus,
		WeekSelection:    week,
		SelectedDay:      req.SelectedDay,
		AvailableSlots:   available,
	})

	result := FetchResult{
		Success:          true,
		Date:             date,
		AvailableSlots:   available,
		TotalAvailable:   len(available),
		ConsultationType: consultationType,
		Campus:           campus,
	}
	if len(available) > 0 {
		result.Message = fmt.Sprintf("Found %d available slots for %s at %s", len(available), date, campus)
	} else {
		result.Message = fmt.Sprintf("No available slots found for %s at %s", date, campus)
	}

	g.publishFetched(result, week, req.SelectedDay)
	return result, nil
}

func (g *Gateway) publishFetched(result FetchResult, week, selectedDay string) {
	if g.bus == nil {
		return
	}
	evSlots := make([]events.SlotV1, 0, len(result.AvailableSlots))
	for _, s := range result.AvailableSlots {
		evSlots = append(evSlots, events.SlotV1{
			TimeRange: s.TimeRange,
			StartTime: s.StartTime,
			Formatted: s.Formatted,
		})
	}
	g.bus.Publish(events.TypeSlotsFetched, "", events.SlotsFetchedV1{
		EventID:          uuid.NewString(),
		Date:             result.Date,
		ConsultationType: result.ConsultationType,
		Campus:           result.Campus,
		WeekSelection:    week,
		SelectedDay:      selectedDay,
		SlotCount:        result.TotalAvailable,
		Slots:            evSlots,
		FetchedAt:        time.Now().UTC(),
	})
}

package slots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsvipul11/ai-test-bot/internal/physiotattva"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

type mockUpstream struct {
	resp    *physiotattva.FetchSlotsResponse
	err     error
	queries []physiotattva.SlotQuery
}

func (m *mockUpstream) FetchSlots(_ context.Context, q physiotattva.SlotQuery) (*physiotattva.FetchSlotsResponse, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func testDefaults() Defaults {
	return Defaults{
		WeekSelection:    "this week",
		ConsultationType: "Online",
		CampusID:         "Indiranagar",
	}
}

func TestFetchRequiresSelectedDay(t *testing.T) {
	up := &mockUpstream{}
	g := NewGateway(up, NewCache(), nil, testDefaults(), logging.New("error"))

	_, err := g.Fetch(context.Background(), FetchRequest{ConsultationType: "Online"})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "selected_day", missing.Field)
	assert.Empty(t, up.queries, "validation failure must not reach the network")
}

func TestFetchCanonicalizesDayAndAppliesDefaults(t *testing.T) {
	up := &mockUpstream{resp: &physiotattva.FetchSlotsResponse{
		Success:        true,
		SearchCriteria: physiotattva.SearchCriteria{Date: "2025-03-17"},
		HourlySlots:    map[string]string{},
	}}
	g := NewGateway(up, NewCache(), nil, testDefaults(), logging.New("error"))

	_, err := g.Fetch(context.Background(), FetchRequest{SelectedDay: "Monday"})
	require.NoError(t, err)

	require.Len(t, up.queries, 1)
	q := up.queries[0]
	assert.Equal(t, "mon", q.SelectedDay)
	assert.Equal(t, "this week", q.WeekSelection)
	assert.Equal(t, "Online", q.ConsultationType)
	assert.Equal(t, "Indiranagar", q.CampusID)
}

func TestFetchSurfacesOnlyAvailableSlots(t *testing.T) {
	up := &mockUpstream{resp: &physiotattva.FetchSlotsResponse{
		Success:        true,
		SearchCriteria: physiotattva.SearchCriteria{Date: "2025-03-17"},
		HourlySlots: map[string]string{
			"slot_available_9-10":  "available",
			"slot_available_10-11": "unavailable",
		},
	}}
	g := NewGateway(up, NewCache(), nil, testDefaults(), logging.New("error"))

	result, err := g.Fetch(context.Background(), FetchRequest{SelectedDay: "Monday", ConsultationType: "Online"})
	require.NoError(t, err)

	require.True(t, result.Success)
	require.Len(t, result.AvailableSlots, 1)
	assert.Equal(t, "9-10", result.AvailableSlots[0].TimeRange)
	assert.Equal(t, "9:00 AM", result.AvailableSlots[0].StartTime)
	assert.Equal(t, "9:00 AM - 10:00 AM", result.AvailableSlots[0].Formatted)
	assert.Equal(t, "2025-03-17", result.Date)
}

func TestFetchSortsSlotsByStartHour(t *testing.T) {
	up := &mockUpstream{resp: &physiotattva.FetchSlotsResponse{
		Success:        true,
		SearchCriteria: physiotattva.SearchCriteria{Date: "2025-03-17"},
		HourlySlots: map[string]string{
			"slot_available_15-16": "available",
			"slot_available_9-10":  "available",
			"slot_available_12-13": "available",
		},
	}}
	g := NewGateway(up, NewCache(), nil, testDefaults(), logging.New("error"))

	result, err := g.Fetch(context.Background(), FetchRequest{SelectedDay: "tue"})
	require.NoError(t, err)

	require.Len(t, result.AvailableSlots, 3)
	assert.Equal(t, "9-10", result.AvailableSlots[0].TimeRange)
	assert.Equal(t, "12-13", result.AvailableSlots[1].TimeRange)
	assert.Equal(t, "15-16", result.AvailableSlots[2].TimeRange)
}

func TestFetchCachesQueryContext(t *testing.T) {
	up := &mockUpstream{resp: &physiotattva.FetchSlotsResponse{
		Success:        true,
		SearchCriteria: physiotattva.SearchCriteria{Date: "2025-03-17"},
		HourlySlots:    map[string]string{"slot_available_9-10": "available"},
	}}
	cache := NewCache()
	g := NewGateway(up, cache, nil, testDefaults(), logging.New("error"))

	_, err := g.Fetch(context.Background(), FetchRequest{
		SelectedDay:      "Monday",
		ConsultationType: "In-Person",
		CampusID:         "Koramangala",
	})
	require.NoError(t, err)

	ctx, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, "2025-03-17", ctx.Date)
	assert.Equal(t, "In-Person", ctx.ConsultationType)
	assert.Equal(t, "Koramangala", ctx.CampusID)
	assert.Equal(t, "Monday", ctx.SelectedDay)
	require.Len(t, ctx.AvailableSlots, 1)
}

func TestFetchFailureClearsCacheAndDegrades(t *testing.T) {
	cache := NewCache()
	cache.Set(QueryContext{Date: "2025-03-10"})

	up := &mockUpstream{err: errors.New("timeout")}
	g := NewGateway(up, cache, nil, testDefaults(), logging.New("error"))

	result, err := g.Fetch(context.Background(), FetchRequest{SelectedDay: "mon"})
	require.NoError(t, err, "upstream failure is a degraded result, not an error")

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
	_, ok := cache.Get()
	assert.False(t, ok, "failed refresh must not leave stale slots cached")
}

func TestFetchUpstreamReportedFailure(t *testing.T) {
	cache := NewCache()
	up := &mockUpstream{resp: &physiotattva.FetchSlotsResponse{Success: false, Message: "no such campus"}}
	g := NewGateway(up, cache, nil, testDefaults(), logging.New("error"))

	result, err := g.Fetch(context.Background(), FetchRequest{SelectedDay: "mon"})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsvipul11/ai-test-bot/internal/slots"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

func TestCurrentRequiresSessionID(t *testing.T) {
	o := NewOrchestrator(&mockUpstream{}, slots.NewCache(), NewMemoryStore(), nil, testDefaults(), logging.New("error"))
	h := NewHandler(o, logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/booking", nil)
	rec := httptest.NewRecorder()
	h.Current(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCurrentReturnsStoredBooking(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "s1", Booking{Doctor: "Dr. Sharma", PatientName: "Jane Doe"}))

	o := NewOrchestrator(&mockUpstream{}, slots.NewCache(), store, nil, testDefaults(), logging.New("error"))
	h := NewHandler(o, logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/booking?session_id=s1", nil)
	rec := httptest.NewRecorder()
	h.Current(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CurrentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "Dr. Sharma", resp.Booking.Doctor)
}

func TestCurrentNoBooking(t *testing.T) {
	o := NewOrchestrator(&mockUpstream{}, slots.NewCache(), NewMemoryStore(), nil, testDefaults(), logging.New("error"))
	h := NewHandler(o, logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/booking?session_id=missing", nil)
	rec := httptest.NewRecorder()
	h.Current(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CurrentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Booking)
	assert.NotEmpty(t, resp.Message)
}

func TestClearRequiresSessionID(t *testing.T) {
	o := NewOrchestrator(&mockUpstream{}, slots.NewCache(), NewMemoryStore(), nil, testDefaults(), logging.New("error"))
	h := NewHandler(o, logging.New("error"))

	req := httptest.NewRequest(http.MethodDelete, "/api/booking", nil)
	rec := httptest.NewRecorder()
	h.Clear(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearRemovesStoredBooking(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "s1", Booking{Doctor: "Dr. Sharma"}))

	o := NewOrchestrator(&mockUpstream{}, slots.NewCache(), store, nil, testDefaults(), logging.New("error"))
	h := NewHandler(o, logging.New("error"))

	req := httptest.NewRequest(http.MethodDelete, "/api/booking?session_id=s1", nil)
	rec := httptest.NewRecorder()
	h.Clear(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CurrentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	_, ok, err := store.Current(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

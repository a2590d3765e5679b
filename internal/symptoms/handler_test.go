package symptoms

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

func newTestHandler() *Handler {
	ledger := NewLedger(NewInMemoryRepository(), nil, logging.New("error"))
	return NewHandler(ledger, logging.New("error"))
}

func TestHandlerRecord(t *testing.T) {
	h := newTestHandler()

	body := `{"symptom":"lower back pain","severity":7,"session_id":"s1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/symptoms", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Record(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp RecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "s1", resp.SessionID)
	require.NotNil(t, resp.SymptomRecord)
	assert.Equal(t, "lower back pain", resp.SymptomRecord.Symptom)
	assert.False(t, resp.SymptomRecord.Timestamp.IsZero())
}

func TestHandlerRecordMissingSymptom(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/symptoms", strings.NewReader(`{"session_id":"s1"}`))
	w := httptest.NewRecorder()

	h.Record(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "symptom is required")
}

func TestHandlerListRequiresSession(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/symptoms", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerRecordThenList(t *testing.T) {
	h := newTestHandler()

	for _, body := range []string{
		`{"symptom":"back pain","session_id":"s1"}`,
		`{"symptom":"knee pain","session_id":"s1"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/symptoms", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Record(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/symptoms?session_id=s1", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Symptoms, 2)
	assert.Equal(t, "back pain", resp.Symptoms[0].Symptom)
	assert.Equal(t, "knee pain", resp.Symptoms[1].Symptom)
}

func TestHandlerMerge(t *testing.T) {
	h := newTestHandler()

	record := `{"symptom":"back pain","session_id":"s1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/symptoms", strings.NewReader(record))
	h.Record(httptest.NewRecorder(), req)

	merge := `{"session_id":"s1","symptoms":[{"symptom":"back pain"},{"symptom":"hip pain"}]}`
	req = httptest.NewRequest(http.MethodPost, "/api/symptoms/merge", strings.NewReader(merge))
	w := httptest.NewRecorder()
	h.Merge(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp MergeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Appended)
	assert.Equal(t, 1, resp.Skipped)
}

package physiotattva

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

func TestFollowUpAppointments(t *testing.T) {
	var gotPath, gotUserID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserID = r.URL.Query().Get("user_id")
		_ = json.NewEncoder(w).Encode(FollowUpResponse{
			Success: true,
			Appointment: &UpstreamAppointment{
				StartDateTime:    "2025-03-10T10:00:00Z",
				Doctor:           "Dr. Sharma",
				ConsultationType: "Online",
				Status:           "booked",
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1", time.Second, logging.New("error"))
	resp, err := c.FollowUpAppointments(context.Background(), "9873219957")
	require.NoError(t, err)

	assert.Equal(t, "/follow-up-appointments/9873219957", gotPath)
	assert.Equal(t, "1", gotUserID)
	require.NotNil(t, resp.Appointment)
	assert.Equal(t, "Dr. Sharma", resp.Appointment.Doctor)
}

func TestFetchSlotsQueryEncoding(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{
			"week_selection":    r.URL.Query().Get("week_selection"),
			"selected_day":      r.URL.Query().Get("selected_day"),
			"consultation_type": r.URL.Query().Get("consultation_type"),
			"campus_id":         r.URL.Query().Get("campus_id"),
			"user_id":           r.URL.Query().Get("user_id"),
		}
		_ = json.NewEncoder(w).Encode(FetchSlotsResponse{
			Success:        true,
			SearchCriteria: SearchCriteria{Date: "2025-03-17"},
			HourlySlots:    map[string]string{"slot_available_9-10": "available"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1", time.Second, logging.New("error"))
	resp, err := c.FetchSlots(context.Background(), SlotQuery{
		WeekSelection:    "this week",
		SelectedDay:      "mon",
		ConsultationType: "Online",
		CampusID:         "Indiranagar",
	})
	require.NoError(t, err)

	assert.Equal(t, "this week", got["week_selection"])
	assert.Equal(t, "mon", got["selected_day"])
	assert.Equal(t, "Indiranagar", got["campus_id"])
	assert.Equal(t, "2025-03-17", resp.SearchCriteria.Date)
}

func TestBookAppointmentPostsBody(t *testing.T) {
	var got BookRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(BookResponse{
			Success: true,
			AppointmentInfo: &AppointmentInfo{
				AppointedDoctor: "Dr. Sharma",
				CalculatedDate:  "2025-03-17",
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1", time.Second, logging.New("error"))
	resp, err := c.BookAppointment(context.Background(), BookRequest{
		SelectedDay:  "mon",
		StartTime:    "10:00 AM",
		PatientName:  "Jane Doe",
		MobileNumber: "9999999999",
	})
	require.NoError(t, err)

	assert.Equal(t, "1", got.UserID, "client fills in its user id")
	assert.Equal(t, "Jane Doe", got.PatientName)
	require.NotNil(t, resp.AppointmentInfo)
	assert.Equal(t, "Dr. Sharma", resp.AppointmentInfo.AppointedDoctor)
}

func TestNonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "1", time.Second, logging.New("error"))
	_, err := c.FollowUpAppointments(context.Background(), "9873219957")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

type recordedCall struct {
	operation string
	status    string
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) ObserveUpstream(operation, status string) {
	f.calls = append(f.calls, recordedCall{operation, status})
}

func TestRecorderObservesCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fetch-slots" {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(FollowUpResponse{Success: true})
	}))
	defer srv.Close()

	rec := &fakeRecorder{}
	c := NewClient(srv.URL, "1", time.Second, logging.New("error"))
	c.SetRecorder(rec)

	_, err := c.FollowUpAppointments(context.Background(), "9873219957")
	require.NoError(t, err)

	_, err = c.FetchSlots(context.Background(), SlotQuery{SelectedDay: "mon"})
	require.Error(t, err)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, recordedCall{"follow_up_appointments", "ok"}, rec.calls[0])
	assert.Equal(t, recordedCall{"fetch_slots", "error"}, rec.calls[1])
}

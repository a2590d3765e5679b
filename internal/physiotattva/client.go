// Package physiotattva is a thin HTTP client for the Physiotattva
// scheduling/EHR API. It speaks the raw upstream shapes; normalization into
// stable internal models is the gateways' job.
package physiotattva

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

const defaultTimeout = 10 * time.Second

// Upstream operation labels for metrics.
const (
	opFollowUpAppointments = "follow_up_appointments"
	opFetchSlots           = "fetch_slots"
	opBookAppointment      = "book_appointment"
)

// UpstreamRecorder counts upstream calls per operation and outcome.
type UpstreamRecorder interface {
	ObserveUpstream(operation, status string)
}

// Client calls the Physiotattva scheduling API.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
	logger     *logging.Logger
	recorder   UpstreamRecorder
}

// NewClient creates a new scheduling API client. userID identifies the
// calling application to the upstream (a fixed tenant id, not the patient).
func NewClient(baseURL, userID string, timeout time.Duration, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SetRecorder attaches an upstream call recorder. A nil recorder disables
// recording.
func (c *Client) SetRecorder(rec UpstreamRecorder) {
	c.recorder = rec
}

// FollowUpAppointments looks up the patient's current follow-up appointment
// by phone number.
func (c *Client) FollowUpAppointments(ctx context.Context, phoneNumber string) (*FollowUpResponse, error) {
	endpoint := fmt.Sprintf("%s/follow-up-appointments/%s?user_id=%s",
		c.baseURL, url.PathEscape(phoneNumber), url.QueryEscape(c.userID))

	var out FollowUpResponse
	if err := c.get(ctx, endpoint, opFollowUpAppointments, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchSlots queries hourly availability for a day/week/type/campus selection.
func (c *Client) FetchSlots(ctx context.Context, q SlotQuery) (*FetchSlotsResponse, error) {
	params := url.Values{}
	params.Set("week_selection", q.WeekSelection)
	params.Set("selected_day", q.SelectedDay)
	params.Set("consultation_type", q.ConsultationType)
	params.Set("campus_id", q.CampusID)
	params.Set("user_id", c.userID)
	endpoint := c.baseURL + "/fetch-slots?" + params.Encode()

	var out FetchSlotsResponse
	if err := c.get(ctx, endpoint, opFetchSlots, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookAppointment reserves a slot and returns the confirmation envelope.
func (c *Client) BookAppointment(ctx context.Context, req BookRequest) (*BookResponse, error) {
	if req.UserID == "" {
		req.UserID = c.userID
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("physiotattva: marshal booking: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/book-appointment", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("physiotattva: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var out BookResponse
	if err := c.do(httpReq, opBookAppointment, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, endpoint, operation string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("physiotattva: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, operation, out)
}

func (c *Client) do(req *http.Request, operation string, out any) (err error) {
	if c.recorder != nil {
		defer func() {
			status := "ok"
			if err != nil {
				status = "error"
			}
			c.recorder.ObserveUpstream(operation, status)
		}()
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("physiotattva: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("physiotattva: read response: %w", err)
	}

	c.logger.Debug("physiotattva: upstream call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode != http.StatusOK {
		msg := string(respBody)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return fmt.Errorf("physiotattva: status %d: %s", resp.StatusCode, msg)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("physiotattva: unmarshal response: %w", err)
	}
	return nil
}

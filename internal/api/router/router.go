// Package router wires the HTTP surface: the agent's function-call webhook,
// the session and symptom endpoints for UI surfaces, and the event stream.
package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vsvipul11/ai-test-bot/internal/appointments"
	"github.com/vsvipul11/ai-test-bot/internal/booking"
	"github.com/vsvipul11/ai-test-bot/internal/dispatch"
	httpmiddleware "github.com/vsvipul11/ai-test-bot/internal/http/middleware"
	"github.com/vsvipul11/ai-test-bot/internal/session"
	"github.com/vsvipul11/ai-test-bot/internal/stream"
	"github.com/vsvipul11/ai-test-bot/internal/symptoms"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	SessionHandler      *session.Handler
	SymptomsHandler     *symptoms.Handler
	AppointmentsHandler *appointments.Handler
	BookingHandler      *booking.Handler
	DispatchHandler     *dispatch.HTTPHandler
	StreamHandler       *stream.Handler
	MetricsHandler      http.Handler

	CORSAllowedOrigins []string

	// WebhookRateLimit caps function-call webhook traffic per IP, in
	// requests per second. Zero disables limiting.
	WebhookRateLimit float64
	WebhookBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/healthz", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// The websocket stream is long-lived, so the request timeout only
	// covers the REST surface.
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(60 * time.Second))
		if cfg.DispatchHandler != nil {
			call := api.With()
			if cfg.WebhookRateLimit > 0 {
				call = api.With(httpmiddleware.RateLimit(cfg.WebhookRateLimit, cfg.WebhookBurst))
			}
			call.Post("/function-call", cfg.DispatchHandler.HandleFunctionCall)
		}

		if cfg.SessionHandler != nil {
			api.Post("/session", cfg.SessionHandler.Start)
		}

		if cfg.SymptomsHandler != nil {
			api.Route("/symptoms", func(s chi.Router) {
				s.Post("/", cfg.SymptomsHandler.Record)
				s.Get("/", cfg.SymptomsHandler.List)
				s.Post("/merge", cfg.SymptomsHandler.Merge)
			})
		}

		if cfg.AppointmentsHandler != nil {
			api.Get("/appointments", cfg.AppointmentsHandler.Lookup)
		}

		if cfg.BookingHandler != nil {
			api.Get("/booking", cfg.BookingHandler.Current)
			api.Delete("/booking", cfg.BookingHandler.Clear)
		}
	})

	if cfg.StreamHandler != nil {
		r.Get("/ws/events", cfg.StreamHandler.HandleWebSocket)
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

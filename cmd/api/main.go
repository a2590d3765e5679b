package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/vsvipul11/ai-test-bot/internal/api/router"
	"github.com/vsvipul11/ai-test-bot/internal/appointments"
	"github.com/vsvipul11/ai-test-bot/internal/booking"
	appconfig "github.com/vsvipul11/ai-test-bot/internal/config"
	"github.com/vsvipul11/ai-test-bot/internal/dispatch"
	"github.com/vsvipul11/ai-test-bot/internal/events"
	"github.com/vsvipul11/ai-test-bot/internal/observability/metrics"
	"github.com/vsvipul11/ai-test-bot/internal/physiotattva"
	"github.com/vsvipul11/ai-test-bot/internal/session"
	"github.com/vsvipul11/ai-test-bot/internal/slots"
	"github.com/vsvipul11/ai-test-bot/internal/stream"
	"github.com/vsvipul11/ai-test-bot/internal/symptoms"
	"github.com/vsvipul11/ai-test-bot/pkg/logging"
)

func main() {
	// Local development convenience; ignored when no .env exists.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting consultation API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Optional Redis. Without it, session and booking state live in memory.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not available, using in-memory stores", "error", err)
			redisClient = nil
		}
	}

	// Optional Postgres for the symptom ledger.
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		p, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("postgres not available, using in-memory symptom store", "error", err)
		} else if err := p.Ping(ctx); err != nil {
			logger.Warn("postgres not reachable, using in-memory symptom store", "error", err)
			p.Close()
		} else {
			pool = p
			defer pool.Close()
		}
	}

	var sessionStore session.Store = session.NewMemoryStore()
	var bookingStore booking.Store = booking.NewMemoryStore()
	if redisClient != nil {
		sessionStore = session.NewRedisStore(redisClient)
		bookingStore = booking.NewRedisStore(redisClient)
	}

	var symptomRepo symptoms.Repository = symptoms.NewInMemoryRepository()
	if pool != nil {
		symptomRepo = symptoms.NewPostgresRepository(pool)
	}

	bus := events.NewBus(logger)
	dispatchMetrics := metrics.NewDispatchMetrics(nil)

	physio := physiotattva.NewClient(cfg.PhysiotattvaBaseURL, cfg.PhysiotattvaUserID, cfg.UpstreamTimeout, logger)
	physio.SetRecorder(dispatchMetrics)

	sessionManager := session.NewManager(sessionStore, logger)
	ledger := symptoms.NewLedger(symptomRepo, bus, logger)
	slotCache := slots.NewCache()
	apptGateway := appointments.NewGateway(physio, bus, cfg.FallbackPhoneNumber, logger)

	services := dispatch.Services{
		Symptoms:     ledger,
		Appointments: apptGateway,
		Slots: slots.NewGateway(physio, slotCache, bus, slots.Defaults{
			WeekSelection:    cfg.DefaultWeekSelection,
			ConsultationType: cfg.DefaultConsultationType,
			CampusID:         cfg.DefaultCampus,
		}, logger),
		Booking: booking.NewOrchestrator(physio, slotCache, bookingStore, bus, booking.Defaults{
			WeekSelection: cfg.DefaultWeekSelection,
			CampusID:      cfg.DefaultCampus,
			SpecialityID:  cfg.DefaultSpeciality,
			PaymentMode:   cfg.DefaultPaymentMode,
		}, logger),
	}

	dispatcher := dispatch.New(bus, dispatchMetrics, logger)
	dispatcher.RegisterDomain(services)

	r := router.New(&router.Config{
		Logger:              logger,
		SessionHandler:      session.NewHandler(sessionManager, logger),
		SymptomsHandler:     symptoms.NewHandler(ledger, logger),
		AppointmentsHandler: appointments.NewHandler(apptGateway, logger),
		BookingHandler:      booking.NewHandler(services.Booking, logger),
		DispatchHandler:     dispatch.NewHTTPHandler(dispatcher, logger),
		StreamHandler:       stream.NewHandler(bus, logger),
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		WebhookRateLimit:    20,
		WebhookBurst:        40,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"salon-booking-api/internal/booking"
	"salon-booking-api/internal/config"
	"salon-booking-api/internal/credentials"
	"salon-booking-api/internal/gcal"
	"salon-booking-api/internal/handler"
	"salon-booking-api/internal/lib/logger/sl"
	"salon-booking-api/internal/logging"
	"salon-booking-api/internal/metrics"
	"salon-booking-api/internal/middleware"
	"salon-booking-api/internal/store"
	fsstore "salon-booking-api/internal/store/firestore"
	"salon-booking-api/internal/store/memory"
	"salon-booking-api/internal/sweeper"
)

type backend interface {
	booking.AppointmentStore
	booking.StatusProvider
	sweeper.Purger
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", sl.Err(err))
		os.Exit(1)
	}

	log := logging.New(cfg.Env, os.Stdout)
	log.Info("starting salon booking api",
		slog.String("env", cfg.Env),
		slog.String("store", cfg.StoreDriver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds, err := credentials.Load(ctx, cfg.ServiceAccountKey, cfg.ServiceAccountFile)
	if err != nil {
		log.Error("failed to load service account", sl.Err(err))
		os.Exit(1)
	}

	db, err := openBackend(ctx, cfg, creds, log)
	if err != nil {
		log.Error("failed to open store", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close store", sl.Err(err))
		}
	}()

	cal, err := gcal.New(ctx, cfg.CalendarID, option.WithCredentials(creds))
	if err != nil {
		log.Error("failed to create calendar client", sl.Err(err))
		os.Exit(1)
	}

	m := metrics.New()

	// runs alongside startup; failures are only logged
	go sweeper.New(log, db, cfg.RetentionDays, cfg.Location(), time.Now, m.SweptTotal).RunOnce(ctx)

	svc := booking.New(log, db, db, cal, booking.Options{
		Location:        cfg.Location(),
		SlotDuration:    cfg.SlotDuration,
		OpenWhenUnknown: cfg.UnknownStatusPolicy == config.PolicyOpen,
		Outcomes:        m.Bookings,
		StatusReads:     m.StatusReads,
	})

	h := handler.New(log, svc)
	httpSrv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: h.Routes(handler.RouterConfig{
			Metrics:     m,
			RateLimiter: middleware.NewRateLimiter(ctx, cfg.BookRateRPS, cfg.BookRateBurst),
			CORSOrigins: cfg.CORSAllowedOrigins,

			TrustProxyHeaders: cfg.TrustProxyHeaders,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("http server listening", slog.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", sl.Err(err))
			stop()
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", sl.Err(err))
	}
}

func openBackend(ctx context.Context, cfg config.Config, creds *google.Credentials, log *slog.Logger) (backend, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("db ping: %w", err)
		}
		log.Info("connected to postgres")

		if migration, err := os.ReadFile(cfg.MigrationsPath); err != nil {
			log.Warn("migration file not found, skipping", sl.Err(err))
		} else if _, err := pool.Exec(ctx, string(migration)); err != nil {
			log.Warn("migration failed", sl.Err(err))
		} else {
			log.Info("migration applied", slog.String("path", cfg.MigrationsPath))
		}
		return store.New(pool), nil

	case config.DriverMemory:
		log.Warn("using in-memory store, appointments are lost on restart")
		return memory.New(), nil

	default:
		projectID := cfg.FirestoreProjectID
		if projectID == "" {
			projectID = creds.ProjectID
		}
		st, err := fsstore.New(ctx, projectID, option.WithCredentials(creds))
		if err != nil {
			return nil, err
		}
		log.Info("connected to firestore", slog.String("project", projectID))
		return st, nil
	}
}

// Package handler exposes the booking service over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"salon-booking-api/internal/booking"
	"salon-booking-api/internal/lib/logger/sl"
	"salon-booking-api/internal/logging"
	"salon-booking-api/internal/metrics"
	"salon-booking-api/internal/middleware"
	"salon-booking-api/internal/model"
)

type Booker interface {
	Book(ctx context.Context, req booking.Request) (*model.Appointment, error)
	Status(ctx context.Context) (bool, error)
}

type Handler struct {
	log     *slog.Logger
	booking Booker
}

func New(log *slog.Logger, b Booker) *Handler {
	return &Handler{log: log, booking: b}
}

type RouterConfig struct {
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string

	// TrustProxyHeaders lets X-Forwarded-For and X-Real-IP replace the
	// peer address, which also keys the booking rate limit.
	TrustProxyHeaders bool
}

func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(h.log))
	r.Use(chimw.Recoverer)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics.RequestDuration))
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", h.Health)
	r.Get("/api/status", h.Status)

	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(middleware.RateLimit(cfg.RateLimiter))
		}
		r.Post("/api/book", h.Book)
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}
	return r
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx, h.log).ErrorContext(ctx, "failed to encode response", sl.Err(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Package sweeper purges appointments that fell out of the retention window.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"salon-booking-api/internal/lib/logger/sl"
	"salon-booking-api/internal/model"
)

type Purger interface {
	PurgeThrough(ctx context.Context, cutoff string) (int, error)
}

type Sweeper struct {
	log       *slog.Logger
	purger    Purger
	retention int
	loc       *time.Location
	now       func() time.Time
	swept     prometheus.Counter
}

func New(log *slog.Logger, purger Purger, retentionDays int, loc *time.Location, now func() time.Time, swept prometheus.Counter) *Sweeper {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Sweeper{log: log, purger: purger, retention: retentionDays, loc: loc, now: now, swept: swept}
}

// Cutoff is today minus the retention window, as YYYY-MM-DD. Appointments
// on or before it are stale.
func (s *Sweeper) Cutoff() string {
	return s.now().In(s.loc).AddDate(0, 0, -s.retention).Format(model.DateLayout)
}

func (s *Sweeper) Run(ctx context.Context) (int, error) {
	const op = "sweeper.Run"
	cutoff := s.Cutoff()
	log := s.log.With(slog.String("op", op), slog.String("cutoff", cutoff))

	log.Info("sweeping stale appointments")

	n, err := s.purger.PurgeThrough(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if s.swept != nil {
		s.swept.Add(float64(n))
	}

	if n == 0 {
		log.Info("no stale appointments found")
		return 0, nil
	}
	log.Info("stale appointments deleted", slog.Int("count", n))
	return n, nil
}

// RunOnce runs the sweep and only logs a failure; startup goes on regardless.
func (s *Sweeper) RunOnce(ctx context.Context) {
	if _, err := s.Run(ctx); err != nil {
		s.log.Error("retention sweep failed", sl.Err(err))
	}
}

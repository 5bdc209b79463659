// Package booking accepts appointment requests for the salon's single chair.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"salon-booking-api/internal/lib/logger/sl"
	"salon-booking-api/internal/logging"
	"salon-booking-api/internal/model"
	"salon-booking-api/internal/store"
)

type AppointmentStore interface {
	SlotTaken(ctx context.Context, date, clock string) (bool, error)
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
}

type StatusProvider interface {
	ShopOpen(ctx context.Context) (bool, error)
}

type Calendar interface {
	InsertEvent(ctx context.Context, ev model.CalendarEvent) (string, error)
}

type State int

const (
	StateUnknown State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type Request struct {
	Date       string `json:"date" validate:"required"`
	Time       string `json:"time" validate:"required"`
	ClientName string `json:"clientName" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

type Options struct {
	Location     *time.Location
	SlotDuration time.Duration

	// OpenWhenUnknown decides the gate when the status cannot be read.
	OpenWhenUnknown bool

	Outcomes    *prometheus.CounterVec
	StatusReads *prometheus.CounterVec
}

type Service struct {
	log          *slog.Logger
	appointments AppointmentStore
	status       StatusProvider
	calendar     Calendar
	validate     *validator.Validate

	loc             *time.Location
	duration        time.Duration
	openWhenUnknown bool

	outcomes    *prometheus.CounterVec
	statusReads *prometheus.CounterVec
}

func New(log *slog.Logger, appointments AppointmentStore, status StatusProvider, cal Calendar, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.SlotDuration <= 0 {
		opts.SlotDuration = 30 * time.Minute
	}
	return &Service{
		log:             log,
		appointments:    appointments,
		status:          status,
		calendar:        cal,
		validate:        validator.New(),
		loc:             opts.Location,
		duration:        opts.SlotDuration,
		openWhenUnknown: opts.OpenWhenUnknown,
		outcomes:        opts.Outcomes,
		statusReads:     opts.StatusReads,
	}
}

func (s *Service) state(ctx context.Context) (State, error) {
	open, err := s.status.ShopOpen(ctx)
	st := StateOpen
	switch {
	case err != nil:
		st = StateUnknown
	case !open:
		st = StateClosed
	}
	if s.statusReads != nil {
		s.statusReads.WithLabelValues(st.String()).Inc()
	}
	return st, err
}

// Status reports whether bookings are accepted. When the status cannot be
// read the unknown policy answers, and the read error is returned as well.
func (s *Service) Status(ctx context.Context) (bool, error) {
	const op = "booking.Status"

	st, err := s.state(ctx)
	if err != nil {
		return s.openWhenUnknown, fmt.Errorf("%s: %w", op, err)
	}
	return st == StateOpen, nil
}

// Book reserves the requested slot and mirrors it into the calendar. If the
// calendar insert fails the reservation is removed again.
func (s *Service) Book(ctx context.Context, req Request) (*model.Appointment, error) {
	const op = "booking.Book"
	log := logging.FromContext(ctx, s.log).With(slog.String("op", op))

	a, err := s.book(ctx, log, req)
	s.record(err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func (s *Service) book(ctx context.Context, log *slog.Logger, req Request) (*model.Appointment, error) {
	st, err := s.state(ctx)
	switch st {
	case StateClosed:
		return nil, ErrShopClosed
	case StateUnknown:
		log.Warn("shop status unavailable, applying policy",
			sl.Err(err), slog.Bool("open_when_unknown", s.openWhenUnknown))
		if !s.openWhenUnknown {
			return nil, ErrShopClosed
		}
	}

	req = Request{
		Date:       strings.TrimSpace(req.Date),
		Time:       strings.TrimSpace(req.Time),
		ClientName: strings.TrimSpace(req.ClientName),
		Phone:      strings.TrimSpace(req.Phone),
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrMissingData
	}

	slot, err := ParseSlot(req.Date, req.Time, s.loc, s.duration)
	if err != nil {
		return nil, err
	}

	taken, err := s.appointments.SlotTaken(ctx, slot.Date(), slot.Time())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	a := &model.Appointment{
		ID:         slot.ID(),
		Date:       slot.Date(),
		Time:       slot.Time(),
		ClientName: req.ClientName,
		Phone:      req.Phone,
		Status:     model.StatusReserved,
	}
	if err := s.appointments.CreateAppointment(ctx, a); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	eventID, err := s.calendar.InsertEvent(ctx, model.CalendarEvent{
		Summary:     "Hair appointment – " + a.ClientName,
		Description: "Phone: " + a.Phone,
		Start:       slot.Start,
		End:         slot.End,
		TimeZone:    s.loc.String(),
	})
	if err != nil {
		if derr := s.appointments.DeleteAppointment(context.WithoutCancel(ctx), a.ID); derr != nil {
			log.Error("failed to roll back appointment after calendar failure",
				slog.String("appointment_id", a.ID), sl.Err(derr))
		}
		return nil, err
	}

	log.Info("appointment booked",
		slog.String("appointment_id", a.ID),
		slog.String("event_id", eventID),
		slog.String("end", slot.EndTime()),
	)
	return a, nil
}

func (s *Service) record(err error) {
	if s.outcomes == nil {
		return
	}
	result := "created"
	switch {
	case err == nil:
	case errors.Is(err, ErrShopClosed):
		result = "closed"
	case errors.Is(err, ErrMissingData), errors.Is(err, ErrInvalidDateTime):
		result = "invalid"
	case errors.Is(err, ErrSlotTaken):
		result = "conflict"
	default:
		result = "error"
	}
	s.outcomes.WithLabelValues(result).Inc()
}

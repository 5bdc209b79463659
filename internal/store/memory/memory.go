// Package memory is an in-process backend for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"salon-booking-api/internal/model"
	"salon-booking-api/internal/store"
)

type Store struct {
	mu           sync.Mutex
	appointments map[string]model.Appointment
	open         *bool
	now          func() time.Time
}

func New() *Store {
	return &Store{
		appointments: make(map[string]model.Appointment),
		now:          time.Now,
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) SlotTaken(_ context.Context, date, clock string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.Date == date && a.Time == clock {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateAppointment(_ context.Context, a *model.Appointment) error {
	const op = "memory.CreateAppointment"

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[a.ID]; ok {
		return fmt.Errorf("%s: %w", op, store.ErrSlotTaken)
	}
	a.CreatedAt = s.now().UTC()
	s.appointments[a.ID] = *a
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, id string) error {
	const op = "memory.DeleteAppointment"

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[id]; !ok {
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	}
	delete(s.appointments, id)
	return nil
}

func (s *Store) PurgeThrough(_ context.Context, cutoff string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, a := range s.appointments {
		if a.Date <= cutoff {
			delete(s.appointments, id)
			n++
		}
	}
	return n, nil
}

// ShopOpen is true until SetShopOpen stores a flag.
func (s *Store) ShopOpen(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open == nil || *s.open, nil
}

func (s *Store) SetShopOpen(_ context.Context, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = &open
	return nil
}

// Appointments returns a snapshot ordered by date and time.
func (s *Store) Appointments() []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

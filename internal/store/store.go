// Package store holds the storage errors shared by every backend and the
// Postgres backend itself.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrSlotTaken = errors.New("slot already taken")
	ErrNotFound  = errors.New("not found")
)

const (
	AppointmentsCollection = "appointments"
	SettingsCollection     = "settings"
	StatusDocument         = "status"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"salon-booking-api/internal/model"
)

const uniqueViolation = "23505"

func (s *Store) SlotTaken(ctx context.Context, date, clock string) (bool, error) {
	const op = "store.SlotTaken"

	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM appointments WHERE date = $1 AND time = $2)`,
		date, clock,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// CreateAppointment inserts a under its slot id; the primary key turns a
// concurrent duplicate into ErrSlotTaken.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	const op = "store.CreateAppointment"

	err := s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, date, time, client_name, phone, status)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at`,
		a.ID, a.Date, a.Time, a.ClientName, a.Phone, a.Status,
	).Scan(&a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w", op, ErrSlotTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	const op = "store.DeleteAppointment"

	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// PurgeThrough deletes every appointment dated on or before cutoff
// (YYYY-MM-DD) in one statement.
func (s *Store) PurgeThrough(ctx context.Context, cutoff string) (int, error) {
	const op = "store.PurgeThrough"

	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE date <= $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(tag.RowsAffected()), nil
}

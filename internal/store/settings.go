package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ShopOpen reports the is_open flag of the status row. A missing row or a
// NULL flag counts as open; only an explicit false closes the shop.
func (s *Store) ShopOpen(ctx context.Context) (bool, error) {
	const op = "store.ShopOpen"

	var open *bool
	err := s.pool.QueryRow(ctx,
		`SELECT is_open FROM settings WHERE key = $1`, StatusDocument,
	).Scan(&open)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return open == nil || *open, nil
}

func (s *Store) SetShopOpen(ctx context.Context, open bool) error {
	const op = "store.SetShopOpen"

	_, err := s.pool.Exec(ctx,
		`INSERT INTO settings (key, is_open) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET is_open = EXCLUDED.is_open`,
		StatusDocument, open,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

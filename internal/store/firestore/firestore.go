// Package firestore stores appointments and the shop status in Cloud Firestore.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"salon-booking-api/internal/model"
	"salon-booking-api/internal/store"
)

type appointmentDoc struct {
	Date       string    `firestore:"date"`
	Time       string    `firestore:"time"`
	ClientName string    `firestore:"clientName"`
	Phone      string    `firestore:"phone"`
	Status     string    `firestore:"status"`
	CreatedAt  time.Time `firestore:"createdAt,serverTimestamp"`
}

type Store struct {
	client *firestore.Client
}

func New(ctx context.Context, projectID string, opts ...option.ClientOption) (*Store, error) {
	const op = "firestore.New"

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) appointments() *firestore.CollectionRef {
	return s.client.Collection(store.AppointmentsCollection)
}

func (s *Store) SlotTaken(ctx context.Context, date, clock string) (bool, error) {
	const op = "firestore.SlotTaken"

	docs, err := s.appointments().
		Where("date", "==", date).
		Where("time", "==", clock).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return len(docs) > 0, nil
}

// CreateAppointment uses Create, which fails with AlreadyExists when the
// slot document is present, so two racing bookings cannot both land.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	const op = "firestore.CreateAppointment"

	wr, err := s.appointments().Doc(a.ID).Create(ctx, appointmentDoc{
		Date:       a.Date,
		Time:       a.Time,
		ClientName: a.ClientName,
		Phone:      a.Phone,
		Status:     a.Status,
	})
	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("%s: %w", op, store.ErrSlotTaken)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	a.CreatedAt = wr.UpdateTime
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	const op = "firestore.DeleteAppointment"

	_, err := s.appointments().Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PurgeThrough deletes every appointment dated on or before cutoff inside a
// single transaction.
func (s *Store) PurgeThrough(ctx context.Context, cutoff string) (int, error) {
	const op = "firestore.PurgeThrough"

	var deleted int
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// the function may be retried
		deleted = 0

		docs, err := tx.Documents(s.appointments().Where("date", "<=", cutoff)).GetAll()
		if err != nil {
			return err
		}
		for _, d := range docs {
			if err := tx.Delete(d.Ref); err != nil {
				return err
			}
		}
		deleted = len(docs)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return deleted, nil
}

// ShopOpen reads settings/status. A missing document or a non-boolean
// is_open counts as open.
func (s *Store) ShopOpen(ctx context.Context) (bool, error) {
	const op = "firestore.ShopOpen"

	snap, err := s.client.Collection(store.SettingsCollection).Doc(store.StatusDocument).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	open, ok := snap.Data()["is_open"].(bool)
	if !ok {
		return true, nil
	}
	return open, nil
}

func (s *Store) SetShopOpen(ctx context.Context, open bool) error {
	const op = "firestore.SetShopOpen"

	_, err := s.client.Collection(store.SettingsCollection).Doc(store.StatusDocument).
		Set(ctx, map[string]any{"is_open": open}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

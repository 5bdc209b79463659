package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-booking-api/internal/model"
	"salon-booking-api/internal/store"
)

func appointment(date, clock string) *model.Appointment {
	return &model.Appointment{
		ID:     model.SlotID(date, clock),
		Date:   date,
		Time:   clock,
		Status: model.StatusReserved,
	}
}

func TestCreateDuplicate(t *testing.T) {
	st := New()
	ctx := context.Background()

	require.NoError(t, st.CreateAppointment(ctx, appointment("2030-01-02", "10:00")))
	assert.ErrorIs(t, st.CreateAppointment(ctx, appointment("2030-01-02", "10:00")), store.ErrSlotTaken)

	taken, err := st.SlotTaken(ctx, "2030-01-02", "10:00")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.Len(t, st.Appointments(), 1)
}

func TestConcurrentCreate(t *testing.T) {
	st := New()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := st.CreateAppointment(ctx, appointment("2030-01-02", "10:00")); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestPurgeAndDelete(t *testing.T) {
	st := New()
	ctx := context.Background()

	for _, d := range []string{"2030-01-01", "2030-01-05", "2030-01-06"} {
		require.NoError(t, st.CreateAppointment(ctx, appointment(d, "09:00")))
	}

	n, err := st.PurgeThrough(ctx, "2030-01-05")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, st.DeleteAppointment(ctx, model.SlotID("2030-01-06", "09:00")))
	assert.ErrorIs(t, st.DeleteAppointment(ctx, model.SlotID("2030-01-06", "09:00")), store.ErrNotFound)
	assert.Empty(t, st.Appointments())
}

func TestShopOpen(t *testing.T) {
	st := New()
	ctx := context.Background()

	open, err := st.ShopOpen(ctx)
	require.NoError(t, err)
	assert.True(t, open)

	require.NoError(t, st.SetShopOpen(ctx, false))
	open, _ = st.ShopOpen(ctx)
	assert.False(t, open)
}

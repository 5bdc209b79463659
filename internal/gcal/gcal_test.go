package gcal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"salon-booking-api/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), "salon@example.com",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return c
}

func TestInsertEvent(t *testing.T) {
	var got calendar.Event
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"evt-1"}`))
	})

	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	start := time.Date(2030, 3, 4, 23, 45, 0, 0, paris)

	id, err := c.InsertEvent(context.Background(), model.CalendarEvent{
		Summary:     "Hair appointment – Camille",
		Description: "Phone: 0600000000",
		Start:       start,
		End:         start.Add(30 * time.Minute),
		TimeZone:    "Europe/Paris",
	})
	require.NoError(t, err)

	assert.Equal(t, "evt-1", id)
	assert.True(t, strings.HasSuffix(path, "calendars/salon@example.com/events"), path)
	assert.Equal(t, "Hair appointment – Camille", got.Summary)
	assert.Equal(t, "2030-03-04T23:45:00", got.Start.DateTime)
	assert.Equal(t, "2030-03-05T00:15:00", got.End.DateTime)
	assert.Equal(t, "Europe/Paris", got.End.TimeZone)
}

func TestInsertEventFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
	})

	_, err := c.InsertEvent(context.Background(), model.CalendarEvent{
		Start: time.Now(),
		End:   time.Now().Add(30 * time.Minute),
	})
	assert.Error(t, err)
}

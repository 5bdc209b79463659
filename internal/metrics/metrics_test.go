package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.Bookings.WithLabelValues("created").Inc()
	m.SweptTotal.Add(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bookings.WithLabelValues("created")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SweptTotal))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `salon_bookings_total{result="created"} 1`)
	assert.Contains(t, string(body), "salon_appointments_swept_total 3")
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg *prometheus.Registry

	Bookings        *prometheus.CounterVec
	StatusReads     *prometheus.CounterVec
	SweptTotal      prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		reg: reg,
		Bookings: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "salon_bookings_total",
			Help: "Booking attempts by result.",
		}, []string{"result"}),
		StatusReads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "salon_status_reads_total",
			Help: "Shop status reads by resulting state.",
		}, []string{"state"}),
		SweptTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "salon_appointments_swept_total",
			Help: "Appointments removed by the retention sweeper.",
		}),
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "salon_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status code.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 0.6, 1, 3, 6},
		}, []string{"route", "method", "code"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

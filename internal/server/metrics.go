package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the HTTP API.
type Metrics struct {
	// Requests by route pattern, method and status code
	Requests *prometheus.CounterVec

	// Request latency by route pattern
	Latency *prometheus.HistogramVec

	// Metric id lookups by result: "hit" or "miss"
	Lookups *prometheus.CounterVec
}

// NewMetrics creates the API collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthmetrics_http_requests_total",
			Help: "Total HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),

		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "healthmetrics_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"route"}),

		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthmetrics_metric_lookups_total",
			Help: "Metric id lookups by result",
		}, []string{"result"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method, code string, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(route, method, code).Inc()
		m.Latency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// IncrementLookup records a metric id lookup.
func (m *Metrics) IncrementLookup(found bool) {
	if m == nil {
		return
	}
	result := "miss"
	if found {
		result = "hit"
	}
	m.Lookups.WithLabelValues(result).Inc()
}

package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bridge
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Invocation metrics
	Invocations        *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	InvocationFailures *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		Invocations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_invocations_total",
				Help: "Total number of capability invocations",
			},
			[]string{"capability", "status"},
		),
		InvocationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_invocation_duration_seconds",
				Help:    "Capability invocation duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 30},
			},
			[]string{"capability"},
		),
		InvocationFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_invocation_failures_total",
				Help: "Total number of failed invocations by failure kind",
			},
			[]string{"capability", "kind"},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bridge_uptime_seconds",
				Help: "Bridge uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordInvocation records a capability invocation outcome
func (m *Metrics) RecordInvocation(capability, status, kind string, duration time.Duration) {
	m.Invocations.WithLabelValues(capability, status).Inc()
	m.InvocationDuration.WithLabelValues(capability).Observe(duration.Seconds())
	if kind != "" {
		m.InvocationFailures.WithLabelValues(capability, kind).Inc()
	}
}

// Package metrics records per-run check counters and exports them as a
// node_exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/axellelanca/refcheck/internal/models"
)

// Metrics holds the collectors for one run. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	checks   *prometheus.CounterVec
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a fresh registry with the refcheck collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		checks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refcheck_checks_total",
				Help: "Referral checks completed, by front-end and resulting status",
			},
			[]string{"mode", "status"},
		),
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refcheck_check_attempts_total",
				Help: "Exchanges with the status authority, by front-end and outcome",
			},
			[]string{"mode", "outcome"}, // ok, server_fault, client_fault, transport_fault, malformed
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "refcheck_check_duration_seconds",
				Help: "Wall-clock time to resolve one referral, retries included",
				Buckets: []float64{
					0.1,
					0.25,
					0.5,
					1.0,
					2.5,
					5.0,
					10.0,
					15.0,
					30.0,
				},
			},
			[]string{"mode"},
		),
	}
}

// RecordCheck records one resolved referral.
func (m *Metrics) RecordCheck(mode string, status models.Status, d time.Duration) {
	if m == nil {
		return
	}
	m.checks.WithLabelValues(mode, string(status)).Inc()
	m.duration.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordAttempt records one exchange with the status authority.
func (m *Metrics) RecordAttempt(mode, outcome string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(mode, outcome).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all collected metrics to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

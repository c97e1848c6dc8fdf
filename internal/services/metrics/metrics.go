// Package metrics exposes evaluation outcomes as Prometheus metrics.
package metrics

import (
	"context"
	"math"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adpasswd/internal/domain"
)

// Metrics records every evaluation reported to it.
type Metrics struct {
	registry *prometheus.Registry

	// Seconds until the password expires; +Inf when it never does
	PasswordExpiry prometheus.Gauge

	// Level of the last evaluation: 0 ok, 1 warn, 2 error
	StatusLevel prometheus.Gauge

	// Evaluations by result kind and failure reason
	Evaluations *prometheus.CounterVec

	EvaluateLatency prometheus.Histogram

	LastEvaluation prometheus.Gauge
}

// New creates a Metrics instance registered on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		PasswordExpiry: factory.NewGauge(prometheus.GaugeOpts{
			Name: "adpasswd_password_expiry_seconds",
			Help: "Seconds until the account password expires, +Inf if it never expires",
		}),

		StatusLevel: factory.NewGauge(prometheus.GaugeOpts{
			Name: "adpasswd_status_level",
			Help: "Level of the last evaluation (0 ok, 1 warn, 2 error)",
		}),

		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adpasswd_evaluations_total",
			Help: "Total evaluations by result and failure reason",
		}, []string{"result", "reason"}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "adpasswd_evaluation_duration_seconds",
			Help:    "Duration of one full evaluation including external tools",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		LastEvaluation: factory.NewGauge(prometheus.GaugeOpts{
			Name: "adpasswd_last_evaluation_timestamp_seconds",
			Help: "Unix time of the last evaluation",
		}),
	}
}

// Registry returns the registry holding the adpasswd metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Report implements domain.StatusReporter.
func (m *Metrics) Report(_ context.Context, status domain.Status) error {
	if m == nil {
		return nil
	}

	result := status.Result
	switch result.Kind {
	case domain.KindExpiresIn:
		m.PasswordExpiry.Set(result.Remaining.Seconds())
		m.Evaluations.WithLabelValues("expires_in", "").Inc()
	case domain.KindNeverExpires:
		m.PasswordExpiry.Set(math.Inf(1))
		m.Evaluations.WithLabelValues("never_expires", "").Inc()
	case domain.KindMustChange:
		m.PasswordExpiry.Set(0)
		m.Evaluations.WithLabelValues("must_change", "").Inc()
	default:
		m.Evaluations.WithLabelValues("unavailable", result.Reason.String()).Inc()
	}

	m.StatusLevel.Set(float64(status.Level))
	m.EvaluateLatency.Observe(status.Duration.Seconds())
	if !status.CheckedAt.IsZero() {
		m.LastEvaluation.Set(float64(status.CheckedAt.Unix()))
	}
	return nil
}

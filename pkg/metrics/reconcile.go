package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReconcileMetrics records metadata for payment reconciliation runs.
type ReconcileMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	saved    prometheus.Counter
	removed  prometheus.Counter
}

// NewReconcileMetrics registers the reconciliation metrics on the provided registerer.
func NewReconcileMetrics(reg prometheus.Registerer) *ReconcileMetrics {
	if reg == nil {
		return &ReconcileMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconcile_duration_seconds",
		Help:    "Duration of payment reconciliation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_success",
		Help: "Successful payment reconciliation runs.",
	}, []string{"trigger"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_failure",
		Help: "Failed payment reconciliation runs.",
	}, []string{"trigger"})
	saved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_payments_saved_total",
		Help: "Payment rows created or updated by reconciliation.",
	})
	removed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_payments_removed_total",
		Help: "Payment rows deleted by reconciliation.",
	})
	reg.MustRegister(duration, success, failure, saved, removed)
	return &ReconcileMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		saved:    saved,
		removed:  removed,
	}
}

// ObserveDuration records the duration for the named trigger.
func (m *ReconcileMetrics) ObserveDuration(trigger string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(trigger)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named trigger.
func (m *ReconcileMetrics) IncSuccess(trigger string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(trigger)).Inc()
}

// IncFailure increments the failure counter for the named trigger.
func (m *ReconcileMetrics) IncFailure(trigger string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(trigger)).Inc()
}

// AddSaved counts payment rows written by a run.
func (m *ReconcileMetrics) AddSaved(n int) {
	if m == nil || m.saved == nil || n <= 0 {
		return
	}
	m.saved.Add(float64(n))
}

// AddRemoved counts payment rows removed by a run.
func (m *ReconcileMetrics) AddRemoved(n int) {
	if m == nil || m.removed == nil || n <= 0 {
		return
	}
	m.removed.Add(float64(n))
}

func normalizeLabel(trigger string) string {
	if trigger == "" {
		return "unknown"
	}
	return trigger
}

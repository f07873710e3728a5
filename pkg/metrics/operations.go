package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records latency and outcome per named operation.
type OperationMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewOperationMetrics registers the operation metrics on reg under subsystem.
// A nil registerer yields a no-op recorder.
func NewOperationMetrics(reg prometheus.Registerer, subsystem string) *OperationMetrics {
	if reg == nil {
		return &OperationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operation_duration_seconds",
		Help:      "Duration of operations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operation_success_total",
		Help:      "Operations that completed without error.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operation_failure_total",
		Help:      "Operations that returned an error.",
	}, []string{"operation"})
	reg.MustRegister(duration, success, failure)
	return &OperationMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *OperationMetrics) ObserveDuration(op string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (m *OperationMetrics) IncSuccess(op string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (m *OperationMetrics) IncFailure(op string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(op)).Inc()
}

// Observe records duration since start and the outcome in one call.
func (m *OperationMetrics) Observe(op string, start time.Time, failed bool) {
	m.ObserveDuration(op, time.Since(start))
	if failed {
		m.IncFailure(op)
		return
	}
	m.IncSuccess(op)
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}

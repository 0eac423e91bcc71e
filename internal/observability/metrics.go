// Package observability holds the Prometheus meters shared by the handlers.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Invocation outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeNotFound = "not_found"
)

// Metrics holds the Prometheus metrics registry and handler meters.
type Metrics struct {
	Registry           *prometheus.Registry
	InvocationsTotal   *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	ListedObjectsTotal prometheus.Counter
}

// NewMetrics creates a custom Prometheus registry with the cdkapp metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	invocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cdkapp_invocations_total",
		Help: "Total number of handler invocations.",
	}, []string{"handler", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cdkapp_invocation_duration_seconds",
		Help:    "Duration of handler invocations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"handler"})

	listed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cdkapp_listed_objects_total",
		Help: "Total number of objects returned by container listings.",
	})

	reg.MustRegister(invocations, duration, listed)

	return &Metrics{
		Registry:           reg,
		InvocationsTotal:   invocations,
		InvocationDuration: duration,
		ListedObjectsTotal: listed,
	}
}

// ObserveInvocation records one finished invocation. A nil receiver is a no-op.
func (m *Metrics) ObserveInvocation(handler, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.InvocationsTotal.WithLabelValues(handler, outcome).Inc()
	m.InvocationDuration.WithLabelValues(handler).Observe(elapsed.Seconds())
}

// AddListedObjects counts objects returned by a listing. A nil receiver is a no-op.
func (m *Metrics) AddListedObjects(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ListedObjectsTotal.Add(float64(n))
}

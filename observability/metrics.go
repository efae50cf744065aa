package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type opMetrics struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var (
	opMetricsOnce sync.Once
	opRegistry    *opMetrics
)

// Ops returns the lazily-initialised registry recording every executed ledger
// operation.
func Ops() *opMetrics {
	opMetricsOnce.Do(func() {
		opRegistry = &opMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "groledger",
				Subsystem: "ops",
				Name:      "executed_total",
				Help:      "Executed ledger operations segmented by operation and outcome.",
			}, []string{"op", "outcome"}),
			errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "groledger",
				Subsystem: "ops",
				Name:      "errors_total",
				Help:      "Failed ledger operations segmented by operation and error kind.",
			}, []string{"op", "kind"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "groledger",
				Subsystem: "ops",
				Name:      "duration_seconds",
				Help:      "Latency distribution for ledger operations including commit.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"op"}),
		}
		prometheus.MustRegister(
			opRegistry.requests,
			opRegistry.errors,
			opRegistry.latency,
		)
	})
	return opRegistry
}

// Observe records the outcome of an operation. An empty kind means success.
func (m *opMetrics) Observe(op, kind string, duration time.Duration) {
	if m == nil {
		return
	}
	if op == "" {
		op = "unknown"
	}
	outcome := "success"
	if kind != "" {
		outcome = "error"
		m.errors.WithLabelValues(op, kind).Inc()
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(duration.Seconds())
}

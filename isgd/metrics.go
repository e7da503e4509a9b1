package isgd

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics records one sample per API call.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "isgd_requests_total",
				Help: "Total number of is.gd API calls by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "isgd_request_duration_seconds",
				Help:    "Latency of is.gd API calls.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	// Several clients may share one registry.
	m.requests = register(reg, m.requests)
	m.duration = register(reg, m.duration)
	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

func (m *metrics) observe(op Operation, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.count(op, err)
	m.duration.WithLabelValues(op.String()).Observe(elapsed.Seconds())
}

// count records the outcome of a call that may never have reached the network.
func (m *metrics) count(op Operation, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "unknown"
		if kind, ok := KindOf(err); ok {
			outcome = kind.label()
		}
	}
	m.requests.WithLabelValues(op.String(), outcome).Inc()
}

package http

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cache    *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "arlula",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of API requests.",
			},
			[]string{"method", "route", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "arlula",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Duration of API requests in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
			},
			[]string{"method", "route"},
		),
		cache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "arlula",
				Subsystem: "client",
				Name:      "cache_results_total",
				Help:      "Response cache lookups by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

func (m *metrics) observe(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}

	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}

	m.requests.WithLabelValues(method, route, label).Inc()
	m.duration.WithLabelValues(method, route).Observe(seconds)
}

func (m *metrics) cacheResult(outcome string) {
	if m == nil {
		return
	}

	m.cache.WithLabelValues(outcome).Inc()
}

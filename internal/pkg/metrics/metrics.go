package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "coinboard"

var (
	// ProviderRequests counts every attempt sent to the market-data provider.
	ProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "Attempts sent to the market-data provider by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	// ProviderRetries counts waits taken before another attempt.
	ProviderRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "provider",
		Name:      "retries_total",
		Help:      "Retries against the market-data provider by endpoint and reason.",
	}, []string{"endpoint", "reason"})

	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Latency of single provider attempts.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "REST requests served by route and status code.",
	}, []string{"method", "route", "status"})

	WatchlistSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "watchlist",
		Name:      "size",
		Help:      "Number of asset ids in the watchlist.",
	})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registry. Safe to call twice.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ProviderRequests,
			ProviderRetries,
			ProviderRequestDuration,
			APIRequests,
			WatchlistSize,
		)
	})
}

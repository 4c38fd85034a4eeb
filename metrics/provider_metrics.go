package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type providerCollector struct {
	Requests *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

var (
	globalProviderCollector *providerCollector
	providerOnce            sync.Once
)

func getProviderCollector() *providerCollector {
	providerOnce.Do(func() {
		globalProviderCollector = &providerCollector{
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skycast_provider_requests_total",
					Help: "The total number of upstream provider requests",
				},
				[]string{"provider"},
			),
			Failures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skycast_provider_failures_total",
					Help: "The total number of failed upstream provider requests",
				},
				[]string{"provider", "error_type"},
			),
			Latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "skycast_provider_duration_seconds",
					Help:    "Upstream provider request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider"},
			),
		}
	})
	return globalProviderCollector
}

// ProviderMetrics records request counts, failures, and latency for one
// upstream provider.
type ProviderMetrics struct {
	provider  string
	collector *providerCollector
}

func NewProviderMetrics(provider string) *ProviderMetrics {
	return &ProviderMetrics{
		provider:  provider,
		collector: getProviderCollector(),
	}
}

func (m *ProviderMetrics) RecordRequest(duration float64) {
	m.collector.Requests.WithLabelValues(m.provider).Inc()
	m.collector.Latency.WithLabelValues(m.provider).Observe(duration)
}

func (m *ProviderMetrics) RecordFailure(errorType string) {
	m.collector.Failures.WithLabelValues(m.provider, errorType).Inc()
}

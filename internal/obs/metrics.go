// Package obs wires the Prometheus counters exposed on /metrics.
package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Searches       prometheus.Counter
	ProviderErrors prometheus.Counter
	CacheHits      *prometheus.CounterVec
	SearchDuration prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "package_searches_total",
			Help: "Total number of package searches run.",
		}),
		ProviderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "provider_errors_total",
			Help: "Total provider failures recorded across searches.",
		}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_cache_hits_total",
			Help: "Provider cache hits by provider class.",
		}, []string{"class"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "package_search_duration_seconds",
			Help:    "Wall time of one package search.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.Searches, m.ProviderErrors, m.CacheHits, m.SearchDuration)
	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

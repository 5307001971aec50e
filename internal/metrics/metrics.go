package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playdex",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "playdex",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10, 20},
	}, []string{"method", "path"})

	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playdex",
		Name:      "provider_requests_total",
		Help:      "Total requests to the stats provider by endpoint and result status.",
	}, []string{"endpoint", "status"})

	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "playdex",
		Name:      "provider_request_duration_seconds",
		Help:      "Stats provider request duration in seconds.",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"endpoint"})

	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "playdex",
		Name:      "cache_hits_total",
		Help:      "Total number of play cache hits.",
	})

	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "playdex",
		Name:      "cache_misses_total",
		Help:      "Total number of play cache misses.",
	})

	SearchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playdex",
		Name:      "searches_total",
		Help:      "Total searches by outcome (ok, degraded, error).",
	}, []string{"outcome"})

	SearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "playdex",
		Name:      "search_duration_seconds",
		Help:      "End-to-end search duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10, 30, 60},
	})

	ExtractionResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playdex",
		Name:      "extraction_resolutions_total",
		Help:      "Entity extraction outcomes by kind (player, team, ambiguous, freetext).",
	}, []string{"kind"})

	ActiveThreads = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "playdex",
		Name:      "active_threads",
		Help:      "Number of live search threads.",
	})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ProviderRequestsTotal,
		ProviderRequestDuration,
		CacheHitsTotal,
		CacheMissesTotal,
		SearchesTotal,
		SearchDuration,
		ExtractionResolutions,
		ActiveThreads,
	)
}

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	SearchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "callguard_search_requests_total",
		Help: "Total search requests by kind and outcome",
	}, []string{"kind", "status"})

	SearchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "callguard_search_latency_seconds",
		Help:    "Latency of search resolution",
		Buckets: prometheus.DefBuckets,
	})

	SpamReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "callguard_spam_reports_total",
		Help: "Total spam reports filed by report type",
	}, []string{"report_type"})

	// Cache metrics
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "callguard_cache_hits_total",
		Help: "Cache hits by cache name",
	}, []string{"cache"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "callguard_cache_misses_total",
		Help: "Cache misses by cache name",
	}, []string{"cache"})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "callguard_cache_invalidations_total",
		Help: "Explicit cache invalidations by cache name",
	}, []string{"cache"})

	// Infrastructure metrics
	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "callguard_database_latency_seconds",
		Help:    "Latency of database queries",
		Buckets: prometheus.DefBuckets,
	})
)

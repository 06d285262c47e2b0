package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Cache / restore layer
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Cache hits by resource",
		},
		[]string{"resource"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Cache misses by resource",
		},
		[]string{"resource"},
	)
	CacheEvictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Expired cache entries evicted on read",
		},
	)
	RestoreCoalesced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "restore_coalesced_total",
			Help: "Restore calls served by an already in-flight restore",
		},
	)
	RestoreStaleFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "restore_stale_fallbacks_total",
			Help: "Resource loads served from an expired cache entry after a fetch failure",
		},
	)

	// Live balance
	BalanceRecomputes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balance_recomputes_total",
			Help: "Live balance recomputations by outcome",
		},
		[]string{"outcome"}, // applied|stale|error
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestLatency,
		CacheHits,
		CacheMisses,
		CacheEvictions,
		RestoreCoalesced,
		RestoreStaleFallbacks,
		BalanceRecomputes,
		WorkerQueueDepth,
	)
}

// Package metrics provides Prometheus metrics for the skin price tracker.
// Scrape these at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Scrape pipeline metrics
	ScrapeAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skintracker_scrape_attempts_total",
			Help: "Catalog scrape attempts by source and outcome",
		},
		[]string{"source", "outcome"}, // outcome: "ok", "error", "rejected"
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skintracker_refresh_duration_seconds",
			Help:    "Time taken to complete a catalog refresh",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// Cache metrics
	CacheReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skintracker_cache_reads_total",
			Help: "Cache reads by cache kind and result",
		},
		[]string{"cache", "result"}, // cache: "skins", "rates"; result: "fresh", "stale", "miss", "corrupt"
	)

	// Catalog metrics
	CatalogSkinCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skintracker_catalog_skin_count",
			Help: "Number of skins in the current catalog snapshot",
		},
	)

	CatalogTotalVP = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skintracker_catalog_total_vp",
			Help: "Total VP price of the current catalog snapshot",
		},
	)

	// Exchange rate metrics
	RateFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skintracker_rate_fetches_total",
			Help: "Exchange rate fetches by outcome",
		},
		[]string{"outcome"}, // "ok", "error"
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skintracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skintracker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

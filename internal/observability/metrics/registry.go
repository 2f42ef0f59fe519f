package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Bookmark store metrics
var (
	// SavedArticlesTotal is the number of bookmarked articles, refreshed periodically.
	SavedArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "saved_articles_total",
			Help: "Number of saved articles in the bookmark store",
		},
	)

	// StoreOperationDuration measures article store calls by operation and outcome.
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Article store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "outcome"},
	)
)

// Background job metrics
var (
	// StatsRefreshTotal counts stats job runs by result.
	StatsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_refresh_total",
			Help: "Total number of saved-article stats refreshes",
		},
		[]string{"result"},
	)

	// StatsLastSuccess is the unix time of the last successful refresh.
	StatsLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stats_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful stats refresh",
		},
	)
)

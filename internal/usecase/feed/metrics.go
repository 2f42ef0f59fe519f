package feed

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var upstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "feed_upstream_request_duration_seconds",
		Help:    "News provider request duration by outcome",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"provider", "outcome"},
)

func observeUpstream(provider, outcome string, d time.Duration) {
	upstreamDuration.WithLabelValues(provider, outcome).Observe(d.Seconds())
}

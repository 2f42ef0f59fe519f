package bookmark

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// result: inserted|duplicate
	savesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmark_saves_total",
			Help: "Save attempts by result",
		},
		[]string{"result"},
	)

	deletesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookmark_deletes_total",
			Help: "Bookmarks deleted",
		},
	)
)

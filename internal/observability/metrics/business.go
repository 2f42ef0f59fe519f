package metrics

import (
	"errors"
	"time"

	"newsdesk/internal/repository"
)

// UpdateSavedArticlesTotal sets the saved-articles gauge.
func UpdateSavedArticlesTotal(count int64) {
	SavedArticlesTotal.Set(float64(count))
}

// RecordStoreOperation observes one store call. The outcome label is
// "success", "unavailable" for connectivity failures, or "error".
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation, storeOutcome(err)).Observe(duration.Seconds())
}

func storeOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, repository.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// RecordStatsRefresh records a stats job run.
func RecordStatsRefresh(success bool, at time.Time) {
	if !success {
		StatsRefreshTotal.WithLabelValues("failure").Inc()
		return
	}
	StatsRefreshTotal.WithLabelValues("success").Inc()
	StatsLastSuccess.Set(float64(at.Unix()))
}

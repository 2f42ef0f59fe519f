// Package metrics holds the service-wide Prometheus collectors that are not
// owned by a single handler or use case: store operation latency and the
// saved-articles gauge refreshed by the stats job.
//
// HTTP RED metrics live next to their middleware in internal/handler/http.
//
// Example usage:
//
//	start := time.Now()
//	n, err := store.Count(ctx)
//	metrics.RecordStoreOperation("Count", time.Since(start), err)
//	if err == nil {
//	    metrics.UpdateSavedArticlesTotal(n)
//	}
package metrics

// Package notifier delivers bookmark events to external systems.
// It defines the Notifier interface which allows different delivery mechanisms
// (Discord webhook, Kafka topic) to be used interchangeably through dependency injection.
package notifier

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// Notifier sends a single bookmark event to one destination.
// Implementations handle rate limiting, retries, and error logging internally.
type Notifier interface {
	// Notify delivers the event. ev.Article must not be nil.
	// Returns non-nil if delivery failed after all retry attempts.
	Notify(ctx context.Context, ev entity.BookmarkEvent) error
}

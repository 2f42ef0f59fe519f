package notifier

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// NoOpNotifier is used for disabled channels so callers need no nil checks.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Notify does nothing and returns nil immediately.
func (n *NoOpNotifier) Notify(_ context.Context, _ entity.BookmarkEvent) error {
	return nil
}

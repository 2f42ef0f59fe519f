// Package notify fans bookmark events out to the configured delivery channels
// (Discord webhook, Kafka topic) without blocking the request that caused them.
package notify

import (
	"context"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/notifier"
)

// Channel is a single delivery target for bookmark events.
//
// Implementations handle their own rate limiting and retries and must be
// safe for concurrent use. Send must respect ctx cancellation.
type Channel interface {
	// Name is the lowercase identifier used in logs, metrics and /health.
	Name() string

	// IsEnabled reports whether the channel should receive events.
	IsEnabled() bool

	// Send delivers ev. It returns ErrChannelDisabled on a disabled channel
	// and ErrInvalidEvent when ev carries no article.
	Send(ctx context.Context, ev entity.BookmarkEvent) error
}

// NotifierChannel adapts an infra notifier to the Channel interface.
type NotifierChannel struct {
	name     string
	enabled  bool
	notifier notifier.Notifier
}

// NewChannel wraps n. When enabled is false n is replaced by a no-op notifier
// so Send never reaches the network.
func NewChannel(name string, enabled bool, n notifier.Notifier) *NotifierChannel {
	if !enabled || n == nil {
		n = notifier.NewNoOpNotifier()
	}
	return &NotifierChannel{name: name, enabled: enabled, notifier: n}
}

// NewDiscordChannel builds the Discord webhook channel.
func NewDiscordChannel(cfg notifier.DiscordConfig) *NotifierChannel {
	enabled := cfg.Enabled && cfg.WebhookURL != ""
	if !enabled {
		return NewChannel("discord", false, nil)
	}
	return NewChannel("discord", true, notifier.NewDiscordNotifier(cfg))
}

// NewKafkaChannel builds the Kafka event channel. The returned notifier must
// be closed on shutdown; it is nil when the channel is disabled.
func NewKafkaChannel(cfg notifier.KafkaConfig) (*NotifierChannel, *notifier.KafkaNotifier) {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return NewChannel("kafka", false, nil), nil
	}
	kn := notifier.NewKafkaNotifier(cfg)
	return NewChannel("kafka", true, kn), kn
}

// Name implements Channel.
func (c *NotifierChannel) Name() string { return c.name }

// IsEnabled implements Channel.
func (c *NotifierChannel) IsEnabled() bool { return c.enabled }

// Send implements Channel.
func (c *NotifierChannel) Send(ctx context.Context, ev entity.BookmarkEvent) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if ev.Article == nil {
		return ErrInvalidEvent
	}
	return c.notifier.Notify(ctx, ev)
}

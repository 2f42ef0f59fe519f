package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"newsdesk/internal/domain/entity"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	Enabled bool

	// WebhookURL includes the authentication token; never log it.
	WebhookURL string

	Timeout time.Duration

	// RetryDelay is the base backoff between attempts on 5xx/network errors.
	// Zero means 5s.
	RetryDelay time.Duration
}

// DiscordNotifier posts bookmark events to a Discord channel via webhook.
type DiscordNotifier struct {
	config      DiscordConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewDiscordNotifier creates a notifier limited to 0.5 req/s with a burst of 3
// (Discord webhook limit: 30 requests per minute).
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	if config.RetryDelay <= 0 {
		config.RetryDelay = 5 * time.Second
	}
	return &DiscordNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(0.5, 3),
	}
}

// DiscordWebhookPayload represents the JSON payload sent to Discord webhook.
type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed represents a Discord embed message.
type DiscordEmbed struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	URL         string             `json:"url"`
	Color       int                `json:"color"`
	Footer      DiscordEmbedFooter `json:"footer"`
	Timestamp   string             `json:"timestamp"`
}

// DiscordEmbedFooter represents the footer of a Discord embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

// DiscordErrorResponse represents the error response from Discord API.
type DiscordErrorResponse struct {
	Message    string  `json:"message"`
	Code       int     `json:"code"`
	RetryAfter float64 `json:"retry_after"` // seconds
}

const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	truncationSuffix     = "..."

	discordGreenColor = 5763719  // #57F287
	discordRedColor   = 15548997 // #ED4245
)

// buildEmbedPayload renders the event as a single embed. The title is prefixed
// with the action so saves and deletes are distinguishable in the channel.
func (d *DiscordNotifier) buildEmbedPayload(ev entity.BookmarkEvent) DiscordWebhookPayload {
	a := ev.Article

	prefix, color := "Saved: ", discordGreenColor
	if ev.Type == entity.EventArticleDeleted {
		prefix, color = "Removed: ", discordRedColor
	}

	embed := DiscordEmbed{
		Title:       truncateText(prefix+a.Title, maxTitleLength, truncationSuffix),
		Description: truncateText(a.Description, maxDescriptionLength, truncationSuffix),
		URL:         a.URL,
		Color:       color,
		Footer: DiscordEmbedFooter{
			Text: a.Source.Name,
		},
		Timestamp: ev.OccurredAt.UTC().Format(time.RFC3339),
	}

	return DiscordWebhookPayload{Embeds: []DiscordEmbed{embed}}
}

// sendWebhookRequest performs one POST and maps the status code to
// RateLimitError (429), ClientError (4xx) or ServerError (5xx).
func (d *DiscordNotifier) sendWebhookRequest(ctx context.Context, ev entity.BookmarkEvent) error {
	payload := d.buildEmbedPayload(ev)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			Message:    "Discord rate limit exceeded",
			RetryAfter: extractRetryAfter(resp, body),
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Discord API client error: %s", string(body)),
		}
	case resp.StatusCode >= 500:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Discord API server error: %s", string(body)),
		}
	}
	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// extractRetryAfter reads retry_after from the JSON body, then the Retry-After
// header, defaulting to 5s.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	var discordErr DiscordErrorResponse
	if err := json.Unmarshal(body, &discordErr); err == nil && discordErr.RetryAfter > 0 {
		return time.Duration(discordErr.RetryAfter * float64(time.Second))
	}

	if retryAfterHeader := resp.Header.Get("Retry-After"); retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	return 5 * time.Second
}

// sendWithRetry makes at most 2 attempts. 429 waits for retry_after,
// 5xx and network errors back off linearly, 4xx fails immediately.
func (d *DiscordNotifier) sendWithRetry(ctx context.Context, ev entity.BookmarkEvent) error {
	const maxAttempts = 2

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := d.sendWebhookRequest(ctx, ev)
		if err == nil {
			slog.Info("Discord notification successful",
				slog.String("event_id", ev.ID),
				slog.String("event_type", string(ev.Type)),
				slog.String("url", ev.Article.URL),
				slog.Int("attempt", attempt))
			return nil
		}
		lastErr = err

		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("Discord rate limit hit, backing off",
				slog.String("event_id", ev.ID),
				slog.Duration("retry_after", rateLimitErr.RetryAfter),
				slog.Int("attempt", attempt))

			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		if !isRetryableError(err) {
			slog.Error("Discord notification failed with non-retryable error",
				slog.String("event_id", ev.ID),
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return err
		}

		if attempt < maxAttempts {
			delay := d.config.RetryDelay * time.Duration(attempt)
			slog.Warn("Discord API request failed, retrying",
				slog.String("event_id", ev.ID),
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("discord notification failed after %d attempts: %w", maxAttempts, lastErr)
}

// Notify implements Notifier.
func (d *DiscordNotifier) Notify(ctx context.Context, ev entity.BookmarkEvent) error {
	if ev.Article == nil {
		return fmt.Errorf("discord: event %s has no article", ev.ID)
	}

	if err := d.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	return d.sendWithRetry(ctx, ev)
}

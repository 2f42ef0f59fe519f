package notify

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/resilience/circuitbreaker"
)

const (
	workerPoolTimeout   = 5 * time.Second
	notificationTimeout = 30 * time.Second
)

// Service dispatches bookmark events to every enabled channel.
type Service interface {
	// Publish hands ev to each enabled channel in the background and returns
	// immediately. Delivery failures are logged and counted, never returned.
	Publish(ctx context.Context, ev entity.BookmarkEvent)

	// GetChannelHealth reports the breaker state of each channel.
	GetChannelHealth() []ChannelHealthStatus

	// Shutdown stops accepting events and waits for queued and in-flight
	// deliveries to finish. When ctx expires first the remaining deliveries
	// are cancelled and ctx.Err() is returned.
	Shutdown(ctx context.Context) error
}

// ChannelHealthStatus is the health of a single channel.
type ChannelHealthStatus struct {
	Name               string `json:"name"`
	Enabled            bool   `json:"enabled"`
	CircuitBreakerOpen bool   `json:"circuitBreakerOpen"`
}

type service struct {
	channels       []Channel
	breakers       map[string]*circuitbreaker.CircuitBreaker
	workerPool     chan struct{}
	wg             sync.WaitGroup
	mu             sync.RWMutex
	closing        bool
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewService creates a dispatcher with at most maxConcurrent deliveries in flight.
func NewService(channels []Channel, maxConcurrent int) Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	svc := &service{
		channels:       channels,
		breakers:       make(map[string]*circuitbreaker.CircuitBreaker, len(channels)),
		workerPool:     make(chan struct{}, maxConcurrent),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}

	enabled := 0
	for _, ch := range channels {
		svc.breakers[ch.Name()] = circuitbreaker.New(circuitbreaker.NotifyChannelConfig(ch.Name()))
		if ch.IsEnabled() {
			enabled++
		}
	}
	SetChannelsEnabled(float64(enabled))

	return svc
}

// Publish implements Service.
func (s *service) Publish(ctx context.Context, ev entity.BookmarkEvent) {
	if ev.Article == nil {
		slog.WarnContext(ctx, "bookmark event without article dropped",
			slog.String("event_id", ev.ID),
			slog.String("event_type", string(ev.Type)))
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closing {
		return
	}

	for _, ch := range s.channels {
		if !ch.IsEnabled() {
			continue
		}
		s.wg.Add(1)
		go s.deliver(ch, ev)
	}
}

func (s *service) deliver(ch Channel, ev entity.BookmarkEvent) {
	defer s.wg.Done()

	IncrementActiveGoroutines()
	defer DecrementActiveGoroutines()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in notification channel",
				slog.String("event_id", ev.ID),
				slog.String("channel", ch.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	select {
	case s.workerPool <- struct{}{}:
		defer func() { <-s.workerPool }()
	case <-time.After(workerPoolTimeout):
		slog.Warn("notification dropped: worker pool full",
			slog.String("event_id", ev.ID),
			slog.String("channel", ch.Name()))
		RecordDropped(ch.Name(), "pool_full")
		return
	case <-s.shutdownCtx.Done():
		RecordDropped(ch.Name(), "shutdown")
		return
	}

	ctx, cancel := context.WithTimeout(s.shutdownCtx, notificationTimeout)
	defer cancel()

	RecordDispatch(ch.Name())
	start := time.Now()
	_, err := circuitbreaker.Run(s.breakers[ch.Name()], func() (struct{}, error) {
		return struct{}{}, ch.Send(ctx, ev)
	})
	duration := time.Since(start)

	switch {
	case errors.Is(err, circuitbreaker.ErrOpen):
		slog.Warn("channel temporarily disabled by circuit breaker",
			slog.String("event_id", ev.ID),
			slog.String("channel", ch.Name()))
		RecordDropped(ch.Name(), "circuit_open")
	case err != nil:
		RecordFailure(ch.Name(), duration)
		slog.Warn("channel notification failed",
			slog.String("event_id", ev.ID),
			slog.String("event_type", string(ev.Type)),
			slog.String("channel", ch.Name()),
			slog.String("url", ev.Article.URL),
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
	default:
		RecordSuccess(ch.Name(), duration)
		slog.Info("channel notification sent",
			slog.String("event_id", ev.ID),
			slog.String("event_type", string(ev.Type)),
			slog.String("channel", ch.Name()),
			slog.String("article_id", ev.Article.ID),
			slog.Duration("send_duration", duration))
	}
}

// GetChannelHealth implements Service.
func (s *service) GetChannelHealth() []ChannelHealthStatus {
	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: s.breakers[ch.Name()].IsOpen(),
		})
	}
	return statuses
}

// Shutdown implements Service.
func (s *service) Shutdown(ctx context.Context) error {
	slog.Info("shutting down notification service")
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.shutdownCancel()
		slog.Info("notification service shutdown complete")
		return nil
	case <-ctx.Done():
		s.shutdownCancel()
		slog.Warn("notification service shutdown timeout, pending deliveries cancelled")
		return ctx.Err()
	}
}

package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/usecase/notify"
)

/* ───────── stub channel ───────── */

type stubChannel struct {
	name    string
	enabled bool
	err     error
	delay   time.Duration
	panics  bool

	mu     sync.Mutex
	events []entity.BookmarkEvent
}

func (c *stubChannel) Name() string    { return c.name }
func (c *stubChannel) IsEnabled() bool { return c.enabled }

func (c *stubChannel) Send(ctx context.Context, ev entity.BookmarkEvent) error {
	if c.panics {
		panic("boom")
	}
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return c.err
}

func (c *stubChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func savedEvent() entity.BookmarkEvent {
	return entity.BookmarkEvent{
		ID:   "ev-1",
		Type: entity.EventArticleSaved,
		Article: &entity.Article{
			ID:     "42",
			Title:  "Go 1.25 released",
			URL:    "https://go.dev/blog/go1.25",
			Source: entity.Source{Name: "The Go Blog"},
		},
		OccurredAt: time.Now(),
	}
}

func shutdown(t *testing.T, svc notify.Service) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))
}

/* ───────── Publish ───────── */

func TestPublish_FansOutToEnabledChannels(t *testing.T) {
	discord := &stubChannel{name: "discord", enabled: true}
	kafka := &stubChannel{name: "kafka", enabled: true}
	off := &stubChannel{name: "off", enabled: false}

	svc := notify.NewService([]notify.Channel{discord, kafka, off}, 4)
	svc.Publish(context.Background(), savedEvent())
	shutdownAfterDrain(t, svc, discord, kafka)

	assert.Equal(t, 1, discord.count())
	assert.Equal(t, 1, kafka.count())
	assert.Equal(t, 0, off.count())
}

// shutdownAfterDrain waits until every channel received one event before
// shutting down, so the cancel does not race the deliveries.
func shutdownAfterDrain(t *testing.T, svc notify.Service, chans ...*stubChannel) {
	t.Helper()
	require.Eventually(t, func() bool {
		for _, c := range chans {
			if c.count() == 0 {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
	shutdown(t, svc)
}

func TestPublish_DoesNotBlockCaller(t *testing.T) {
	slow := &stubChannel{name: "slow", enabled: true, delay: 500 * time.Millisecond}
	svc := notify.NewService([]notify.Channel{slow}, 1)

	start := time.Now()
	svc.Publish(context.Background(), savedEvent())
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	shutdown(t, svc)
}

func TestPublish_NilArticleIsDropped(t *testing.T) {
	ch := &stubChannel{name: "discord", enabled: true}
	svc := notify.NewService([]notify.Channel{ch}, 1)

	ev := savedEvent()
	ev.Article = nil
	svc.Publish(context.Background(), ev)
	shutdown(t, svc)

	assert.Equal(t, 0, ch.count())
}

func TestPublish_PanicIsRecovered(t *testing.T) {
	bad := &stubChannel{name: "bad", enabled: true, panics: true}
	good := &stubChannel{name: "good", enabled: true}
	svc := notify.NewService([]notify.Channel{bad, good}, 2)

	svc.Publish(context.Background(), savedEvent())
	shutdownAfterDrain(t, svc, good)

	assert.Equal(t, 1, good.count())
}

/* ───────── circuit breaker ───────── */

func TestPublish_CircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	failing := &stubChannel{name: "failing-cb", enabled: true, err: errors.New("webhook 502")}
	svc := notify.NewService([]notify.Channel{failing}, 1)

	for i := 0; i < 5; i++ {
		svc.Publish(context.Background(), savedEvent())
		want := i + 1
		require.Eventually(t, func() bool { return failing.count() == want }, time.Second, 5*time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return svc.GetChannelHealth()[0].CircuitBreakerOpen
	}, time.Second, 5*time.Millisecond)

	// open breaker: the channel is not called again
	svc.Publish(context.Background(), savedEvent())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 5, failing.count())

	shutdown(t, svc)
}

func TestGetChannelHealth(t *testing.T) {
	svc := notify.NewService([]notify.Channel{
		&stubChannel{name: "discord-h", enabled: true},
		&stubChannel{name: "kafka-h", enabled: false},
	}, 1)
	defer shutdown(t, svc)

	got := svc.GetChannelHealth()
	require.Len(t, got, 2)
	assert.Equal(t, notify.ChannelHealthStatus{Name: "discord-h", Enabled: true}, got[0])
	assert.Equal(t, notify.ChannelHealthStatus{Name: "kafka-h", Enabled: false}, got[1])
}

/* ───────── Shutdown ───────── */

func TestShutdown_DrainsInFlight(t *testing.T) {
	slow := &stubChannel{name: "drain-sd", enabled: true, delay: 100 * time.Millisecond}
	svc := notify.NewService([]notify.Channel{slow}, 1)
	svc.Publish(context.Background(), savedEvent())
	svc.Publish(context.Background(), savedEvent())

	shutdown(t, svc)
	assert.Equal(t, 2, slow.count(), "queued and in-flight deliveries complete")
}

func TestShutdown_DeadlineCancelsPending(t *testing.T) {
	slow := &stubChannel{name: "slow-sd", enabled: true, delay: 10 * time.Second}
	svc := notify.NewService([]notify.Channel{slow}, 1)
	svc.Publish(context.Background(), savedEvent())
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := svc.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	// the cancelled delivery unwinds instead of running out its delay
	shutdown(t, svc)
	assert.Equal(t, 0, slow.count())
}

func TestShutdown_PublishAfterShutdownIsIgnored(t *testing.T) {
	ch := &stubChannel{name: "late", enabled: true}
	svc := notify.NewService([]notify.Channel{ch}, 1)
	shutdown(t, svc)

	svc.Publish(context.Background(), savedEvent())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, ch.count())
}

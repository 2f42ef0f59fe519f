package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

// StoreConfig opens after five consecutive unavailable errors and probes
// again after 30 seconds.
func StoreConfig() Config {
	return Config{
		Name:                "store",
		MaxRequests:         3,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		FailureThreshold:    1.0,
		MinRequests:         5,
		ConsecutiveFailures: 5,
	}
}

// GuardedStore decorates an ArticleStore with a breaker. Only
// repository.ErrUnavailable counts as a failure; not-found and duplicate
// outcomes are normal traffic. While open, every call fails fast with an
// error that still matches repository.ErrUnavailable.
type GuardedStore struct {
	next repository.ArticleStore
	cb   *CircuitBreaker
}

// NewGuardedStore wraps next with a breaker built from cfg.
func NewGuardedStore(next repository.ArticleStore, cfg Config) *GuardedStore {
	return &GuardedStore{
		next: next,
		cb: NewWithFilter(cfg, func(err error) bool {
			return errors.Is(err, repository.ErrUnavailable)
		}),
	}
}

// Breaker exposes the underlying breaker for health reporting.
func (g *GuardedStore) Breaker() *CircuitBreaker { return g.cb }

func guard[T any](g *GuardedStore, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := Run(g.cb, fn)
	metrics.RecordStoreOperation(op, time.Since(start), err)
	if errors.Is(err, ErrOpen) {
		return v, fmt.Errorf("%s: %w: %w", op, repository.ErrUnavailable, err)
	}
	return v, err
}

func (g *GuardedStore) FindByURL(ctx context.Context, url string) (*entity.Article, error) {
	return guard(g, "FindByURL", func() (*entity.Article, error) {
		return g.next.FindByURL(ctx, url)
	})
}

func (g *GuardedStore) InsertIfAbsent(ctx context.Context, a *entity.Article) (repository.InsertResult, error) {
	return guard(g, "InsertIfAbsent", func() (repository.InsertResult, error) {
		return g.next.InsertIfAbsent(ctx, a)
	})
}

func (g *GuardedStore) ListAll(ctx context.Context, limit int) ([]*entity.Article, error) {
	return guard(g, "ListAll", func() ([]*entity.Article, error) {
		return g.next.ListAll(ctx, limit)
	})
}

func (g *GuardedStore) DeleteByID(ctx context.Context, id string) (*entity.Article, error) {
	return guard(g, "DeleteByID", func() (*entity.Article, error) {
		return g.next.DeleteByID(ctx, id)
	})
}

func (g *GuardedStore) Count(ctx context.Context) (int64, error) {
	return guard(g, "Count", func() (int64, error) {
		return g.next.Count(ctx)
	})
}

func (g *GuardedStore) DeleteAll(ctx context.Context) (int64, error) {
	return guard(g, "DeleteAll", func() (int64, error) {
		return g.next.DeleteAll(ctx)
	})
}

// Ping bypasses the breaker so readiness reflects the real backend.
func (g *GuardedStore) Ping(ctx context.Context) error {
	return g.next.Ping(ctx)
}

var _ repository.ArticleStore = (*GuardedStore)(nil)

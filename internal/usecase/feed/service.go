package feed

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/resilience/circuitbreaker"
)

var tracer = otel.Tracer("newsdesk/feed")

// Provider fetches headlines from a news source.
type Provider interface {
	Name() string
	TopHeadlines(ctx context.Context, q Query) (*Page, error)
}

// Service serves headline pages. Identical concurrent requests share one
// upstream call; results are not kept after the call returns.
type Service struct {
	provider Provider
	breaker  *circuitbreaker.CircuitBreaker
	group    singleflight.Group
	timeout  time.Duration
}

// Options configures NewService.
type Options struct {
	// Timeout bounds each upstream call. Zero means 10s.
	Timeout time.Duration
	// Breaker defaults to circuitbreaker.NewsAPIConfig, counting only
	// transport failures, 429 and 5xx.
	Breaker *circuitbreaker.CircuitBreaker
}

// NewService wires p with a breaker and a per-call timeout.
func NewService(p Provider, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Breaker == nil {
		opts.Breaker = circuitbreaker.NewWithFilter(circuitbreaker.NewsAPIConfig(), countsAgainstProvider)
	}
	return &Service{provider: p, breaker: opts.Breaker, timeout: opts.Timeout}
}

// Breaker exposes the provider breaker for health reporting.
func (s *Service) Breaker() *circuitbreaker.CircuitBreaker { return s.breaker }

// FetchPage returns one page of headlines. Invalid queries yield an
// *entity.ValidationError; every provider failure is an *UpstreamError.
func (s *Service) FetchPage(ctx context.Context, q Query) (*Page, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	ch := s.group.DoChan(q.key(), func() (interface{}, error) {
		return s.fetch(context.WithoutCancel(ctx), q)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		page := res.Val.(*Page)
		// shared callers each get their own slice header
		out := *page
		out.Articles = make([]*entity.Article, len(page.Articles))
		for i, a := range page.Articles {
			out.Articles[i] = a.Clone()
		}
		return &out, nil
	case <-ctx.Done():
		return nil, &UpstreamError{Provider: s.provider.Name(), Message: "request canceled", Err: ctx.Err()}
	}
}

func (s *Service) fetch(ctx context.Context, q Query) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "feed.TopHeadlines")
	defer span.End()
	span.SetAttributes(
		attribute.String("feed.provider", s.provider.Name()),
		attribute.String("feed.country", q.Country),
		attribute.String("feed.category", q.Category),
		attribute.Int("feed.page", q.Page),
		attribute.Int("feed.page_size", q.PageSize),
	)

	start := time.Now()
	page, err := circuitbreaker.Run(s.breaker, func() (*Page, error) {
		return s.provider.TopHeadlines(ctx, q)
	})
	duration := time.Since(start)

	if err != nil {
		ue := s.toUpstream(err)
		span.RecordError(ue)
		span.SetStatus(codes.Error, ue.Message)
		observeUpstream(s.provider.Name(), "error", duration)
		slog.WarnContext(ctx, "upstream fetch failed",
			slog.String("provider", s.provider.Name()),
			slog.Int("status", ue.StatusCode),
			slog.String("code", ue.Code),
			slog.String("message", ue.Message),
			slog.Duration("duration", duration))
		return nil, ue
	}
	if page == nil {
		page = &Page{}
	}
	if page.Articles == nil {
		page.Articles = []*entity.Article{}
	}
	page.CurrentPage = q.Page

	observeUpstream(s.provider.Name(), "success", duration)
	span.SetAttributes(attribute.Int("feed.total_results", page.TotalResults))
	return page, nil
}

func (s *Service) toUpstream(err error) *UpstreamError {
	if ue, ok := AsUpstream(err); ok {
		if ue.Provider == "" {
			ue.Provider = s.provider.Name()
		}
		return ue
	}
	ue := &UpstreamError{Provider: s.provider.Name(), Err: err}
	switch {
	case errors.Is(err, circuitbreaker.ErrOpen):
		ue.Message = "news provider temporarily unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		ue.Message = "news provider timed out"
	default:
		ue.Message = "news provider request failed"
	}
	return ue
}

// countsAgainstProvider is false for 4xx answers other than 429 and for a
// missing API key: those are caused by the request or the deployment, not by
// the provider being unhealthy.
func countsAgainstProvider(err error) bool {
	ue, ok := AsUpstream(err)
	if ok && ue.Code == CodeAPIKeyMissing {
		return false
	}
	if !ok || ue.StatusCode == 0 {
		return true
	}
	return ue.StatusCode == 429 || ue.StatusCode >= 500
}

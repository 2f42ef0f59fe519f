package feed_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/resilience/circuitbreaker"
	"newsdesk/internal/usecase/feed"
)

/* ───────── stub provider ───────── */

type stubProvider struct {
	calls   int32
	gotQ    feed.Query
	mu      sync.Mutex
	page    *feed.Page
	err     error
	delay   time.Duration
	release chan struct{}
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) TopHeadlines(ctx context.Context, q feed.Query) (*feed.Page, error) {
	atomic.AddInt32(&p.calls, 1)
	p.mu.Lock()
	p.gotQ = q
	p.mu.Unlock()
	if p.release != nil {
		<-p.release
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.page, p.err
}

func onePage() *feed.Page {
	return &feed.Page{
		TotalResults: 30,
		Articles: []*entity.Article{
			{Title: "A", URL: "https://x.test/a", Source: entity.Source{Name: "S"}},
			{Title: "B", URL: "https://x.test/b", Source: entity.Source{Name: "S"}},
		},
	}
}

func breaker(name string) *circuitbreaker.CircuitBreaker {
	cfg := circuitbreaker.NewsAPIConfig()
	cfg.Name = name
	return circuitbreaker.New(cfg)
}

/* ───────── query normalization ───────── */

func TestQuery_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   feed.Query
		want feed.Query
	}{
		{"defaults", feed.Query{}, feed.Query{Country: "us", Page: 1, PageSize: 12}},
		{"negative page", feed.Query{Page: -3, PageSize: 0}, feed.Query{Country: "us", Page: 1, PageSize: 12}},
		{"page size capped", feed.Query{Page: 2, PageSize: 500}, feed.Query{Country: "us", Page: 2, PageSize: 100}},
		{"country lowercased", feed.Query{Country: " GB ", Category: "Sports"}, feed.Query{Category: "sports", Country: "gb", Page: 1, PageSize: 12}},
		{"keyword trimmed", feed.Query{Keyword: "  golang "}, feed.Query{Country: "us", Keyword: "golang", Page: 1, PageSize: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuery_Normalize_Invalid(t *testing.T) {
	for _, q := range []feed.Query{
		{Country: "usa"},
		{Country: "u1"},
		{Category: "crypto"},
	} {
		_, err := q.Normalize()
		var ve *entity.ValidationError
		assert.ErrorAs(t, err, &ve, "query %+v", q)
	}
}

/* ───────── FetchPage ───────── */

func TestFetchPage_Success(t *testing.T) {
	p := &stubProvider{page: onePage()}
	svc := feed.NewService(p, feed.Options{Breaker: breaker("feed-ok")})

	page, err := svc.FetchPage(context.Background(), feed.Query{Category: "technology", Page: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 30, page.TotalResults)
	assert.Len(t, page.Articles, 2)
	assert.Equal(t, "technology", p.gotQ.Category)
	assert.Equal(t, "us", p.gotQ.Country)
	assert.Equal(t, 12, p.gotQ.PageSize)
}

func TestFetchPage_InvalidQueryDoesNotCallProvider(t *testing.T) {
	p := &stubProvider{page: onePage()}
	svc := feed.NewService(p, feed.Options{Breaker: breaker("feed-invalid")})

	_, err := svc.FetchPage(context.Background(), feed.Query{Country: "xyz"})

	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "country", ve.Field)
	assert.Zero(t, atomic.LoadInt32(&p.calls))
}

func TestFetchPage_EmptyPage(t *testing.T) {
	p := &stubProvider{page: &feed.Page{}}
	svc := feed.NewService(p, feed.Options{Breaker: breaker("feed-empty")})

	page, err := svc.FetchPage(context.Background(), feed.Query{})
	require.NoError(t, err)
	assert.NotNil(t, page.Articles)
	assert.Empty(t, page.Articles)
}

func TestFetchPage_ProviderErrorIsUpstream(t *testing.T) {
	p := &stubProvider{err: &feed.UpstreamError{StatusCode: 401, Code: "apiKeyInvalid", Message: "Your API key is invalid."}}
	svc := feed.NewService(p, feed.Options{Breaker: breaker("feed-401")})

	_, err := svc.FetchPage(context.Background(), feed.Query{})

	ue, ok := feed.AsUpstream(err)
	require.True(t, ok, "want UpstreamError, got %T", err)
	assert.Equal(t, "stub", ue.Provider)
	assert.Equal(t, 401, ue.StatusCode)
	assert.Equal(t, "Your API key is invalid.", ue.Message)
}

func TestFetchPage_RawErrorIsWrapped(t *testing.T) {
	raw := errors.New("dial tcp: connection refused")
	p := &stubProvider{err: raw}
	svc := feed.NewService(p, feed.Options{Breaker: breaker("feed-raw")})

	_, err := svc.FetchPage(context.Background(), feed.Query{})

	ue, ok := feed.AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, "news provider request failed", ue.Message)
	assert.ErrorIs(t, err, raw)
}

func TestFetchPage_Timeout(t *testing.T) {
	p := &stubProvider{page: onePage(), delay: time.Second}
	svc := feed.NewService(p, feed.Options{Timeout: 20 * time.Millisecond, Breaker: breaker("feed-timeout")})

	_, err := svc.FetchPage(context.Background(), feed.Query{})

	ue, ok := feed.AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, "news provider timed out", ue.Message)
}

func TestFetchPage_BreakerOpen(t *testing.T) {
	p := &stubProvider{err: &feed.UpstreamError{StatusCode: 503, Message: "down"}}
	cfg := circuitbreaker.NewsAPIConfig()
	cfg.Name = "feed-open"
	cfg.MinRequests = 2
	cb := circuitbreaker.New(cfg)
	svc := feed.NewService(p, feed.Options{Breaker: cb})

	for i := 0; i < 2; i++ {
		_, _ = svc.FetchPage(context.Background(), feed.Query{Page: i + 1})
	}
	require.True(t, cb.IsOpen())

	_, err := svc.FetchPage(context.Background(), feed.Query{Page: 9})
	ue, ok := feed.AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, "news provider temporarily unavailable", ue.Message)
	assert.EqualValues(t, 2, atomic.LoadInt32(&p.calls))
}

func TestFetchPage_ClientErrorsDoNotTripDefaultBreaker(t *testing.T) {
	p := &stubProvider{err: &feed.UpstreamError{StatusCode: 400, Code: "parameterInvalid", Message: "bad"}}
	svc := feed.NewService(p, feed.Options{})

	for i := 0; i < 20; i++ {
		_, _ = svc.FetchPage(context.Background(), feed.Query{Page: i + 1})
	}
	assert.False(t, svc.Breaker().IsOpen())
}

func TestFetchPage_MissingKeyDoesNotTripDefaultBreaker(t *testing.T) {
	p := &stubProvider{err: &feed.UpstreamError{Code: feed.CodeAPIKeyMissing, Message: "news provider API key is not configured"}}
	svc := feed.NewService(p, feed.Options{})

	for i := 0; i < 20; i++ {
		_, _ = svc.FetchPage(context.Background(), feed.Query{Page: i + 1})
	}
	require.False(t, svc.Breaker().IsOpen())

	_, err := svc.FetchPage(context.Background(), feed.Query{Page: 50})
	ue, ok := feed.AsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, feed.CodeAPIKeyMissing, ue.Code)
	assert.Equal(t, "news provider API key is not configured", ue.Message)
}

func TestFetchPage_CollapsesIdenticalRequests(t *testing.T) {
	p := &stubProvider{page: onePage(), release: make(chan struct{})}
	svc := feed.NewService(p, feed.Options{Breaker: breaker("feed-sf")})

	const n = 5
	var wg sync.WaitGroup
	pages := make([]*feed.Page, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			page, err := svc.FetchPage(context.Background(), feed.Query{Page: 1})
			assert.NoError(t, err)
			pages[i] = page
		}(i)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&p.calls) == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(p.release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&p.calls))
	// callers do not share article pointers
	assert.NotSame(t, pages[0].Articles[0], pages[1].Articles[0])

	// nothing is cached afterwards
	_, err := svc.FetchPage(context.Background(), feed.Query{Page: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&p.calls))
}

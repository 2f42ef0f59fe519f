package client

import (
	"context"
	"errors"
	"sync"

	"newsdesk/internal/handler/http/dto"
)

// FeedState is the lifecycle of a FeedView.
type FeedState int

const (
	FeedIdle FeedState = iota
	FeedLoading
	FeedLoaded
	FeedErrored
)

func (s FeedState) String() string {
	switch s {
	case FeedIdle:
		return "idle"
	case FeedLoading:
		return "loading"
	case FeedLoaded:
		return "loaded"
	case FeedErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// ErrLoadInFlight is returned when a page request is already running.
var ErrLoadInFlight = errors.New("client: a page load is already in flight")

// ErrNoMorePages is returned by LoadMore once every result has been fetched.
var ErrNoMorePages = errors.New("client: no more pages")

// Messages shown when a page cannot be loaded.
const (
	msgFeedFailed    = "An error occurred"
	msgFeedTransport = "Failed to fetch news. Please try again later."
)

// PageFetcher fetches one page of the feed. *API satisfies it via
// AllNews.
type PageFetcher interface {
	AllNews(ctx context.Context, page, pageSize int) (*Page, error)
}

// AppendArticles returns prev followed by page. Neither input is modified.
func AppendArticles(prev, page []*dto.Article) []*dto.Article {
	out := make([]*dto.Article, 0, len(prev)+len(page))
	out = append(out, prev...)
	return append(out, page...)
}

// FeedView accumulates feed pages as the user asks for more.
// It is safe for concurrent use.
type FeedView struct {
	fetch    PageFetcher
	pageSize int

	mu       sync.Mutex
	state    FeedState
	articles []*dto.Article
	total    int
	page     int
	message  string
	err      error
}

// NewFeedView returns an idle view. pageSize <= 0 selects DefaultPageSize.
func NewFeedView(fetch PageFetcher, pageSize int) *FeedView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &FeedView{fetch: fetch, pageSize: pageSize, articles: []*dto.Article{}}
}

// LoadMore fetches the next page (page 1 on the first call) and appends it.
// A failure moves the view to FeedErrored with no retry; the view stays
// there until Reset.
func (v *FeedView) LoadMore(ctx context.Context) error {
	v.mu.Lock()
	switch {
	case v.state == FeedLoading:
		v.mu.Unlock()
		return ErrLoadInFlight
	case v.state == FeedErrored:
		err := v.err
		v.mu.Unlock()
		return err
	case v.state == FeedLoaded && len(v.articles) >= v.total:
		v.mu.Unlock()
		return ErrNoMorePages
	}
	next := v.page + 1
	v.state = FeedLoading
	v.mu.Unlock()

	p, err := v.fetch.AllNews(ctx, next, v.pageSize)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = FeedErrored
		v.err = err
		v.message = failureMessage(err)
		return err
	}
	v.articles = AppendArticles(v.articles, p.Articles)
	v.total = p.TotalResults
	v.page = next
	v.state = FeedLoaded
	return nil
}

func failureMessage(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae.Message
		}
		return msgFeedFailed
	}
	return msgFeedTransport
}

// Reset discards every loaded page and returns the view to FeedIdle.
// It is a no-op while a request is in flight.
func (v *FeedView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == FeedLoading {
		return
	}
	v.state = FeedIdle
	v.articles = []*dto.Article{}
	v.total, v.page = 0, 0
	v.message, v.err = "", nil
}

// CanLoadMore reports whether a "load more" action should be offered.
func (v *FeedView) CanLoadMore() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state == FeedLoaded && len(v.articles) < v.total
}

// State returns the current state.
func (v *FeedView) State() FeedState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Articles returns a copy of the accumulated articles.
func (v *FeedView) Articles() []*dto.Article {
	v.mu.Lock()
	defer v.mu.Unlock()
	return AppendArticles(nil, v.articles)
}

// TotalResults is the total reported by the last successful page.
func (v *FeedView) TotalResults() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.total
}

// CurrentPage is the last page successfully loaded, 0 before the first.
func (v *FeedView) CurrentPage() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// ErrorMessage is the user-facing message of the failed load, if any.
func (v *FeedView) ErrorMessage() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.message
}

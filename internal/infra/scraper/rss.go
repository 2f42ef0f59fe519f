// Package scraper provides the RSS/Atom implementation of feed.Provider.
// Feeds are grouped by category; a page is cut from the merged, date-sorted
// items of every feed in the requested category.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/resilience/circuitbreaker"
	"newsdesk/internal/resilience/retry"
	"newsdesk/internal/usecase/feed"
)

const providerName = "rss"

// RSSProvider implements feed.Provider over a category → feed URL map.
type RSSProvider struct {
	client         *http.Client
	feeds          map[string][]string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSProvider creates an RSSProvider. Category keys are lowercased.
func NewRSSProvider(client *http.Client, feeds map[string][]string) *RSSProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	normalized := make(map[string][]string, len(feeds))
	for cat, urls := range feeds {
		normalized[strings.ToLower(cat)] = append([]string(nil), urls...)
	}
	return &RSSProvider{
		client:         client,
		feeds:          normalized,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

var _ feed.Provider = (*RSSProvider)(nil)

// Name implements feed.Provider.
func (p *RSSProvider) Name() string { return providerName }

// TopHeadlines implements feed.Provider. Country is ignored: feeds are not
// country specific. Keyword, when set, keeps items whose title or description
// contains it (case-insensitive).
func (p *RSSProvider) TopHeadlines(ctx context.Context, q feed.Query) (*feed.Page, error) {
	category := q.Category
	if category == "" {
		category = feed.DefaultCategory
	}
	urls := p.feeds[category]
	if len(urls) == 0 {
		return &feed.Page{Articles: []*entity.Article{}, CurrentPage: q.Page}, nil
	}

	var (
		mu      sync.Mutex
		all     []*entity.Article
		failed  int
		lastErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, u := range urls {
		g.Go(func() error {
			items, err := p.Fetch(gctx, u)
			if err != nil {
				// one broken feed must not hide the others
				slog.WarnContext(gctx, "rss feed fetch failed",
					slog.String("url", u),
					slog.Any("error", err))
				mu.Lock()
				failed++
				lastErr = err
				mu.Unlock()
				return nil
			}
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(all) == 0 && ctx.Err() != nil {
		return nil, &feed.UpstreamError{Provider: providerName, Message: "news provider timed out", Err: ctx.Err()}
	}
	if failed == len(urls) {
		return nil, &feed.UpstreamError{Provider: providerName, Message: lastErr.Error(), Err: lastErr}
	}

	all = dedupe(filterKeyword(all, q.Keyword))
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})

	for _, a := range all {
		a.Category = category
	}
	return paginate(all, q), nil
}

// Fetch retrieves and parses one feed with retry and circuit breaker.
func (p *RSSProvider) Fetch(ctx context.Context, feedURL string) ([]*entity.Article, error) {
	var items []*entity.Article

	retryErr := retry.WithBackoff(ctx, p.retryConfig, func() error {
		res, err := circuitbreaker.Run(p.circuitBreaker, func() ([]*entity.Article, error) {
			return p.doFetch(ctx, feedURL)
		})
		if errors.Is(err, circuitbreaker.ErrOpen) {
			slog.Warn("feed fetch circuit breaker open, request rejected",
				slog.String("url", feedURL),
				slog.String("state", p.circuitBreaker.State().String()))
		}
		if err != nil {
			return err
		}
		items = res
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}
	return items, nil
}

func (p *RSSProvider) doFetch(ctx context.Context, feedURL string) ([]*entity.Article, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "NewsdeskBot/1.0"
	fp.Client = p.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &retry.HTTPError{StatusCode: httpErr.StatusCode, Message: httpErr.Status}
		}
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	sourceName := parsed.Title
	items := make([]*entity.Article, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it.Link == "" || it.Title == "" {
			continue
		}
		a := &entity.Article{
			Title:  strings.TrimSpace(it.Title),
			URL:    it.Link,
			Source: entity.Source{Name: sourceName},
		}
		if it.PublishedParsed != nil {
			a.PublishedAt = it.PublishedParsed.UTC()
		} else if it.UpdatedParsed != nil {
			a.PublishedAt = it.UpdatedParsed.UTC()
		}
		if it.Author != nil {
			a.Author = it.Author.Name
		}

		html := it.Description
		if html == "" {
			html = it.Content
		}
		a.Description, a.URLToImage = extractText(html)
		if it.Image != nil && it.Image.URL != "" {
			a.URLToImage = it.Image.URL
		}
		if it.Content != "" {
			a.Content, _ = extractText(it.Content)
		}

		items = append(items, a)
	}
	return items, nil
}

// extractText strips markup from an item body and returns the plain text
// and the first image source, if any.
func extractText(html string) (text, image string) {
	if strings.TrimSpace(html) == "" {
		return "", ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html), ""
	}
	if src, ok := doc.Find("img").First().Attr("src"); ok {
		image = src
	}
	text = strings.Join(strings.Fields(doc.Text()), " ")
	return text, image
}

func filterKeyword(in []*entity.Article, kw string) []*entity.Article {
	if kw == "" {
		return in
	}
	kw = strings.ToLower(kw)
	out := in[:0]
	for _, a := range in {
		if strings.Contains(strings.ToLower(a.Title), kw) || strings.Contains(strings.ToLower(a.Description), kw) {
			out = append(out, a)
		}
	}
	return out
}

// dedupe drops items whose URL appeared earlier (the same story syndicated
// into several feeds).
func dedupe(in []*entity.Article) []*entity.Article {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, a := range in {
		if _, ok := seen[a.URL]; ok {
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}
	return out
}

func paginate(all []*entity.Article, q feed.Query) *feed.Page {
	page := &feed.Page{TotalResults: len(all), CurrentPage: q.Page, Articles: []*entity.Article{}}
	start := (q.Page - 1) * q.PageSize
	if start >= len(all) || start < 0 {
		return page
	}
	end := start + q.PageSize
	if end > len(all) {
		end = len(all)
	}
	page.Articles = all[start:end]
	return page
}

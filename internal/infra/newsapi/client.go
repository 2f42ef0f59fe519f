// Package newsapi is the feed.Provider backed by the newsapi.org
// top-headlines endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/resilience/retry"
	"newsdesk/internal/usecase/feed"
)

const (
	DefaultBaseURL = "https://newsapi.org"
	providerName   = "newsapi"
	maxBodyBytes   = 4 << 20
)

// Config configures the NewsAPI client.
type Config struct {
	// APIKey is sent in the X-Api-Key header, never in the query string.
	APIKey  string
	BaseURL string
	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient *http.Client
	// Retry defaults to retry.UpstreamConfig.
	Retry *retry.Config
}

// Client calls GET {BaseURL}/v2/top-headlines.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	retry   retry.Config
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	rc := retry.UpstreamConfig()
	if cfg.Retry != nil {
		rc = *cfg.Retry
	}
	return &Client{apiKey: cfg.APIKey, baseURL: base, http: hc, retry: rc}
}

var _ feed.Provider = (*Client)(nil)

// Name implements feed.Provider.
func (c *Client) Name() string { return providerName }

// response mirrors the NewsAPI payload for both success and error bodies.
type response struct {
	Status       string       `json:"status"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []articleDTO `json:"articles"`
}

type articleDTO struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Author      *string `json:"author"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Content     *string `json:"content"`
}

// TopHeadlines implements feed.Provider.
func (c *Client) TopHeadlines(ctx context.Context, q feed.Query) (*feed.Page, error) {
	if c.apiKey == "" {
		return nil, &feed.UpstreamError{
			Provider: providerName,
			Code:     feed.CodeAPIKeyMissing,
			Message:  "news provider API key is not configured",
		}
	}

	endpoint := c.baseURL + "/v2/top-headlines?" + buildParams(q).Encode()

	var body response
	err := retry.WithBackoff(ctx, c.retry, func() error {
		var err error
		body, err = c.do(ctx, endpoint)
		return err
	})
	if err != nil {
		return nil, toUpstream(err)
	}

	return &feed.Page{
		Articles:     normalize(body.Articles),
		TotalResults: body.TotalResults,
		CurrentPage:  q.Page,
	}, nil
}

func buildParams(q feed.Query) url.Values {
	v := url.Values{}
	if q.Country != "" {
		v.Set("country", q.Country)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Keyword != "" {
		v.Set("q", q.Keyword)
	}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	return v
}

var errDecode = errors.New("decode newsapi response")

// statusError carries a decoded NewsAPI error body together with the HTTP status.
type statusError struct {
	retry.HTTPError
	Code string
}

func (e *statusError) Unwrap() error { return &e.HTTPError }

func (c *Client) do(ctx context.Context, endpoint string) (response, error) {
	var body response

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return body, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "newsdesk/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return body, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return body, fmt.Errorf("read body: %w", err)
	}
	decodeErr := json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || body.Status == "error" {
		msg := body.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		status := resp.StatusCode
		if status < 300 {
			// status:"error" inside a 200
			status = http.StatusBadGateway
		}
		slog.WarnContext(ctx, "newsapi returned error",
			slog.Int("status", resp.StatusCode),
			slog.String("code", body.Code))
		return body, &statusError{HTTPError: retry.HTTPError{StatusCode: status, Message: msg}, Code: body.Code}
	}
	if decodeErr != nil {
		return body, fmt.Errorf("%w: %w", errDecode, decodeErr)
	}
	return body, nil
}

func toUpstream(err error) error {
	ue := &feed.UpstreamError{Provider: providerName, Err: err}

	var se *statusError
	switch {
	case errors.As(err, &se):
		ue.StatusCode = se.StatusCode
		ue.Code = se.Code
		ue.Message = se.Message
	case errors.Is(err, context.DeadlineExceeded):
		ue.Message = "news provider timed out"
	case errors.Is(err, errDecode):
		ue.Message = "news provider returned an unreadable response"
	default:
		ue.Message = "news provider request failed"
	}
	return ue
}

// normalize maps NewsAPI articles to transient entities. Fields NewsAPI
// leaves null stay empty; an unparseable publishedAt stays zero.
func normalize(in []articleDTO) []*entity.Article {
	out := make([]*entity.Article, 0, len(in))
	for _, a := range in {
		art := &entity.Article{
			Title:       a.Title,
			Description: deref(a.Description),
			URL:         a.URL,
			URLToImage:  deref(a.URLToImage),
			Source:      entity.Source{ID: deref(a.Source.ID), Name: a.Source.Name},
			Author:      deref(a.Author),
			Content:     deref(a.Content),
		}
		if a.PublishedAt != "" {
			if t, err := dateparse.ParseAny(a.PublishedAt); err == nil {
				art.PublishedAt = t.UTC()
			}
		}
		out = append(out, art)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

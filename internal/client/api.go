// Package client is the consumer side of the newsdesk HTTP API: a thin
// typed client plus the view state machines a UI drives (the paged feed and
// the saved-articles list).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsdesk/internal/handler/http/dto"
)

// DefaultPageSize is the page size the feed view requests.
const DefaultPageSize = 12

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// APIError is a non-success envelope or an undecodable response.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (status %d): %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// IsDuplicate reports whether err is the server's "Article already saved"
// rejection.
func IsDuplicate(err error) bool {
	var ae *APIError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.StatusCode == http.StatusBadRequest && ae.Message == "Article already saved"
}

// Page is one page of the headline feed.
type Page struct {
	Articles     []*dto.Article `json:"articles"`
	TotalResults int            `json:"totalResults"`
	CurrentPage  int            `json:"currentPage"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// API calls the newsdesk HTTP endpoints.
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI returns an API rooted at baseURL. A nil httpClient gets a client
// with a 15s timeout.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// AllNews fetches one page of GET /api/all-news.
func (a *API) AllNews(ctx context.Context, page, pageSize int) (*Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var p Page
	if err := a.do(ctx, http.MethodGet, "/api/all-news?"+q.Encode(), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// TopHeadlines fetches one page of GET /api/top-headlines.
func (a *API) TopHeadlines(ctx context.Context, category string, page, pageSize int) (*Page, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var p Page
	if err := a.do(ctx, http.MethodGet, "/api/top-headlines?"+q.Encode(), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SavedArticles fetches GET /api/saved-articles.
func (a *API) SavedArticles(ctx context.Context) ([]*dto.Article, error) {
	var out []*dto.Article
	if err := a.do(ctx, http.MethodGet, "/api/saved-articles", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*dto.Article{}
	}
	return out, nil
}

// SaveArticle posts an article as the feed returned it.
func (a *API) SaveArticle(ctx context.Context, art *dto.Article) (*dto.Article, error) {
	if art == nil {
		return nil, errors.New("save article: nil article")
	}
	body, err := json.Marshal(dto.SaveRequest{
		Title:       art.Title,
		Description: art.Description,
		URL:         art.URL,
		URLToImage:  art.URLToImage,
		PublishedAt: art.PublishedAt,
		Source:      art.Source,
		Author:      art.Author,
		Content:     art.Content,
		Category:    art.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal save request: %w", err)
	}

	var saved dto.Article
	if err := a.do(ctx, http.MethodPost, "/api/save-article", body, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteSaved calls DELETE /api/saved-articles/{id}.
func (a *API) DeleteSaved(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/saved-articles/"+url.PathEscape(id), nil, nil)
}

func (a *API) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "invalid response body", Detail: err.Error()}
	}
	if !env.Success || resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = "An error occurred"
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg, Detail: env.Error}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "invalid response data", Detail: err.Error()}
	}
	return nil
}

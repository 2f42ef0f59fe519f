// Package dto defines the wire shape of articles shared by the feed and
// bookmark endpoints.
package dto

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/usecase/bookmark"
)

// Source names the publisher of an article.
type Source struct {
	ID   string `json:"id,omitempty" example:"the-verge"`
	Name string `json:"name" example:"The Verge"`
}

// Article is the JSON form of an article. Persisted articles carry both
// "_id" and "id"; absent optional fields are omitted.
type Article struct {
	MongoID     string  `json:"_id,omitempty" example:"6553f1a2b4c8d9e0f1a2b3c4"`
	ID          string  `json:"id,omitempty" example:"6553f1a2b4c8d9e0f1a2b3c4"`
	Title       string  `json:"title" example:"Go 1.25 released"`
	Description string  `json:"description,omitempty" example:"The Go team announced..."`
	URL         string  `json:"url" example:"https://example.com/go-1-25"`
	URLToImage  string  `json:"urlToImage,omitempty" example:"https://example.com/go.png"`
	PublishedAt string  `json:"publishedAt,omitempty" example:"2025-08-12T16:00:00.000Z"`
	Source      *Source `json:"source,omitempty"`
	Author      string  `json:"author,omitempty" example:"Jane Doe"`
	Content     string  `json:"content,omitempty"`
	Category    string  `json:"category,omitempty" example:"technology"`
	SavedAt     string  `json:"savedAt,omitempty" example:"2025-11-16T09:00:00.000Z"`
}

// timeLayout is RFC 3339 with fixed millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// FromEntity converts a domain article. A nil article yields nil.
func FromEntity(a *entity.Article) *Article {
	if a == nil {
		return nil
	}
	out := &Article{
		MongoID:     a.ID,
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		URLToImage:  a.URLToImage,
		PublishedAt: formatTime(a.PublishedAt),
		Author:      a.Author,
		Content:     a.Content,
		Category:    a.Category,
		SavedAt:     formatTime(a.SavedAt),
	}
	if a.Source.ID != "" || a.Source.Name != "" {
		out.Source = &Source{ID: a.Source.ID, Name: a.Source.Name}
	}
	return out
}

// FromEntities converts a list, always returning a non-nil slice so the
// response encodes [] rather than null.
func FromEntities(in []*entity.Article) []*Article {
	out := make([]*Article, 0, len(in))
	for _, a := range in {
		out = append(out, FromEntity(a))
	}
	return out
}

// SaveRequest is the body of POST /api/save-article. It accepts the article
// exactly as the feed endpoints returned it.
type SaveRequest struct {
	Title       string  `json:"title" example:"Go 1.25 released"`
	Description string  `json:"description" example:"The Go team announced..."`
	URL         string  `json:"url" example:"https://example.com/go-1-25"`
	URLToImage  string  `json:"urlToImage" example:"https://example.com/go.png"`
	PublishedAt string  `json:"publishedAt" example:"2025-08-12T16:00:00.000Z"`
	Source      *Source `json:"source"`
	Author      string  `json:"author" example:"Jane Doe"`
	Content     string  `json:"content"`
	Category    string  `json:"category" example:"technology"`
}

// ToSaveInput converts the request. publishedAt is parsed leniently; a
// missing value stays zero for the service to reject, while an unparseable
// one is reported as a validation error on that field.
func (r SaveRequest) ToSaveInput() (bookmark.SaveInput, error) {
	in := bookmark.SaveInput{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		URL:         strings.TrimSpace(r.URL),
		URLToImage:  r.URLToImage,
		Author:      r.Author,
		Content:     r.Content,
		Category:    r.Category,
	}
	if r.Source != nil {
		in.Source = entity.Source{ID: r.Source.ID, Name: strings.TrimSpace(r.Source.Name)}
	}
	if s := strings.TrimSpace(r.PublishedAt); s != "" {
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return in, &entity.ValidationError{Field: "publishedAt", Message: "publishedAt is not a valid date"}
		}
		in.PublishedAt = t.UTC()
	}
	return in, nil
}

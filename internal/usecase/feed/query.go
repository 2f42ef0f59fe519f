package feed

import (
	"fmt"
	"strings"

	"newsdesk/internal/domain/entity"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100

	DefaultCountry  = "us"
	DefaultCategory = "general"
)

// Categories lists the headline categories the providers understand.
var Categories = []string{
	"business", "entertainment", "general", "health", "science", "sports", "technology",
}

// Query selects one page of headlines.
type Query struct {
	Category string
	Country  string
	Keyword  string
	Page     int
	PageSize int
}

// Page is one page of transient articles.
type Page struct {
	Articles     []*entity.Article
	TotalResults int
	CurrentPage  int
}

// Normalize fills defaults and validates the query. Page and PageSize below 1
// fall back to the defaults; PageSize is capped at MaxPageSize. An empty
// Category stays empty and means every category.
func (q Query) Normalize() (Query, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	q.Country = strings.ToLower(strings.TrimSpace(q.Country))
	if q.Country == "" {
		q.Country = DefaultCountry
	}
	if !isISOCountry(q.Country) {
		return q, &entity.ValidationError{
			Field:   "country",
			Message: fmt.Sprintf("country %q must be a two-letter ISO 3166-1 code", q.Country),
		}
	}

	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	if q.Category != "" && !IsCategory(q.Category) {
		return q, &entity.ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("category must be one of %s", strings.Join(Categories, ", ")),
		}
	}

	q.Keyword = strings.TrimSpace(q.Keyword)
	return q, nil
}

// IsCategory reports whether c is a known category.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func isISOCountry(c string) bool {
	if len(c) != 2 {
		return false
	}
	for _, r := range c {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func (q Query) key() string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", q.Country, q.Category, q.Keyword, q.Page, q.PageSize)
}

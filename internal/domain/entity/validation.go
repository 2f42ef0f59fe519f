package entity

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
	maxURLLength = 2048

	maxTitleLength = 1000
)

// ValidateURL validates the format of an article URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a host.
// The URL is only stored and echoed back, never fetched, so no network checks are made.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return &ValidationError{Field: "url", Message: "url is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "url is invalid"}
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "url must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "url must have a valid host"}
	}

	return nil
}

// ValidateForSave checks the fields required before an article can be bookmarked:
// title, url, publishedAt and source.name. The first failing field is reported.
func (a *Article) ValidateForSave() error {
	if a == nil {
		return &ValidationError{Field: "article", Message: "article is required"}
	}
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(a.Title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		}
	}
	if err := ValidateURL(a.URL); err != nil {
		return err
	}
	if a.PublishedAt.IsZero() {
		return &ValidationError{Field: "publishedAt", Message: "publishedAt is required"}
	}
	if strings.TrimSpace(a.Source.Name) == "" {
		return &ValidationError{Field: "source.name", Message: "source.name is required"}
	}
	return nil
}

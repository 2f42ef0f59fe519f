// Package entity defines the core domain entities and validation logic for the application.
// It contains the Article that flows from the upstream news feed into the bookmark store,
// along with its validation rules and domain-specific errors.
package entity

import "time"

// Article represents a news article, either transient (just fetched from the upstream
// feed, ID empty) or persisted as a bookmark (ID and SavedAt assigned by the store).
type Article struct {
	ID          string
	Title       string
	Description string
	URL         string
	URLToImage  string
	PublishedAt time.Time
	Source      Source
	Author      string
	Content     string
	Category    string
	SavedAt     time.Time
}

// IsPersisted reports whether the article has been assigned a store identifier.
func (a *Article) IsPersisted() bool {
	return a != nil && a.ID != ""
}

// Clone returns a shallow copy so callers can hand articles across goroutines
// without sharing the underlying struct.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

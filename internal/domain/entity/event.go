package entity

import "time"

// EventType names a change to the bookmark collection.
type EventType string

const (
	EventArticleSaved   EventType = "article.saved"
	EventArticleDeleted EventType = "article.deleted"
)

// BookmarkEvent describes a bookmark that was saved or deleted.
// Article is a snapshot taken when the event occurred.
type BookmarkEvent struct {
	ID         string
	Type       EventType
	Article    *Article
	OccurredAt time.Time
}

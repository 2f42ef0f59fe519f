// Package repository declares the persistence ports used by the use case layer.
package repository

import (
	"context"
	"errors"

	"newsdesk/internal/domain/entity"
)

// ErrUnavailable marks failures caused by the backing store being unreachable
// (connection refused, pool exhausted, server selection timeout).
// Adapters wrap driver errors with it so the use case layer can classify them.
var ErrUnavailable = errors.New("article store unavailable")

// InsertOutcome tags the result of InsertIfAbsent.
type InsertOutcome int

const (
	// Inserted means a new record was created.
	Inserted InsertOutcome = iota + 1
	// AlreadyExists means a record with the same URL was already stored; nothing was written.
	AlreadyExists
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case AlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// InsertResult is the tagged result of InsertIfAbsent.
// Article is set only when Outcome is Inserted.
type InsertResult struct {
	Outcome InsertOutcome
	Article *entity.Article
}

// ArticleStore persists bookmarked articles keyed by a unique URL.
type ArticleStore interface {
	// FindByURL returns the stored article with the given URL, or nil if none.
	FindByURL(ctx context.Context, url string) (*entity.Article, error)
	// InsertIfAbsent stores the article unless one with the same URL exists.
	// The check and the write are a single atomic storage operation; the
	// store-level unique constraint on url is the authoritative guard.
	InsertIfAbsent(ctx context.Context, article *entity.Article) (InsertResult, error)
	// ListAll returns at most limit articles ordered by SavedAt descending.
	// A limit of zero or less returns every article.
	ListAll(ctx context.Context, limit int) ([]*entity.Article, error)
	// DeleteByID removes the article and returns it, or returns nil if no such
	// article exists. Identifiers the backend cannot parse are treated as absent.
	DeleteByID(ctx context.Context, id string) (*entity.Article, error)
	// Count returns the number of stored articles.
	Count(ctx context.Context) (int64, error)
	// DeleteAll removes every stored article and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

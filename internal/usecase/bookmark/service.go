package bookmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// ListLimit caps how many bookmarks List returns.
const ListLimit = 100

// SaveInput is an article as submitted by the client.
type SaveInput struct {
	Title       string
	Description string
	URL         string
	URLToImage  string
	PublishedAt time.Time
	Source      entity.Source
	Author      string
	Content     string
	Category    string
}

// EventPublisher receives bookmark change events. Publish must not block.
type EventPublisher interface {
	Publish(ctx context.Context, ev entity.BookmarkEvent)
}

// Service provides the bookmark use cases.
type Service struct {
	Repo repository.ArticleStore

	// Events is optional.
	Events EventPublisher

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Save validates in and persists it with SavedAt set to the current time.
// A URL that is already stored yields ErrDuplicateArticle and nothing is written.
func (s *Service) Save(ctx context.Context, in SaveInput) (*entity.Article, error) {
	article := &entity.Article{
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		URLToImage:  in.URLToImage,
		PublishedAt: in.PublishedAt,
		Source:      in.Source,
		Author:      in.Author,
		Content:     in.Content,
		Category:    in.Category,
	}
	if err := article.ValidateForSave(); err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindByURL(ctx, article.URL)
	if err != nil {
		return nil, storeErr("find article by url", err)
	}
	if existing != nil {
		savesTotal.WithLabelValues("duplicate").Inc()
		return nil, ErrDuplicateArticle
	}

	article.SavedAt = s.now().UTC()
	res, err := s.Repo.InsertIfAbsent(ctx, article)
	if err != nil {
		return nil, storeErr("insert article", err)
	}
	if res.Outcome == repository.AlreadyExists {
		// lost the race against a concurrent save of the same url
		savesTotal.WithLabelValues("duplicate").Inc()
		return nil, ErrDuplicateArticle
	}

	savesTotal.WithLabelValues("inserted").Inc()
	slog.InfoContext(ctx, "article saved",
		slog.String("article_id", res.Article.ID),
		slog.String("url", res.Article.URL))
	s.publish(ctx, entity.EventArticleSaved, res.Article)

	return res.Article, nil
}

// List returns at most ListLimit bookmarks, newest first.
func (s *Service) List(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Repo.ListAll(ctx, ListLimit)
	if err != nil {
		return nil, storeErr("list articles", err)
	}
	if articles == nil {
		articles = []*entity.Article{}
	}
	return articles, nil
}

// Delete removes the bookmark with the given id and returns it.
func (s *Service) Delete(ctx context.Context, id string) (*entity.Article, error) {
	removed, err := s.Repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, storeErr("delete article", err)
	}
	if removed == nil {
		return nil, ErrArticleNotFound
	}

	deletesTotal.Inc()
	slog.InfoContext(ctx, "article deleted",
		slog.String("article_id", removed.ID),
		slog.String("url", removed.URL))
	s.publish(ctx, entity.EventArticleDeleted, removed)

	return removed, nil
}

// SeedSamples stores the given sample articles, skipping URLs that already
// exist. With reset the collection is emptied first. It backs the
// development-only seeding endpoints.
func (s *Service) SeedSamples(ctx context.Context, samples []*entity.Article, reset bool) ([]*entity.Article, error) {
	if reset {
		if _, err := s.DeleteAll(ctx); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	saved := make([]*entity.Article, 0, len(samples))
	for _, sample := range samples {
		a := sample.Clone()
		if a.PublishedAt.IsZero() {
			a.PublishedAt = now
		}
		a.SavedAt = now
		res, err := s.Repo.InsertIfAbsent(ctx, a)
		if err != nil {
			return nil, storeErr("seed article", err)
		}
		if res.Outcome == repository.Inserted {
			saved = append(saved, res.Article)
		}
	}
	return saved, nil
}

// DeleteAll empties the bookmark collection and returns how many were removed.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.Repo.DeleteAll(ctx)
	if err != nil {
		return 0, storeErr("delete all articles", err)
	}
	slog.WarnContext(ctx, "all bookmarks deleted", slog.Int64("count", n))
	return n, nil
}

// Count returns the number of stored bookmarks.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, storeErr("count articles", err)
	}
	return n, nil
}

func (s *Service) publish(ctx context.Context, typ entity.EventType, a *entity.Article) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(ctx, entity.BookmarkEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		Article:    a.Clone(),
		OccurredAt: s.now().UTC(),
	})
}

// storeErr tags connectivity failures with ErrServiceUnavailable so the
// handler can answer 503 instead of 500.
func storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrServiceUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package client

import (
	"context"
	"sync"

	"newsdesk/internal/handler/http/dto"
)

// Severity classifies a Notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient message for the user, e.g. a snackbar.
type Notification struct {
	Severity Severity
	Message  string
}

const (
	msgArticleDeleted = "Article deleted successfully"
	msgDeleteFailed   = "Failed to delete article"
	msgArticleSaved   = "Article saved successfully!"
	msgAlreadySaved   = "Article already saved!"
	msgSaveFailed     = "Failed to save article"
	msgLoadFailed     = "Failed to load saved articles"
)

// BookmarkAPI is the subset of *API the bookmark view needs.
type BookmarkAPI interface {
	SavedArticles(ctx context.Context) ([]*dto.Article, error)
	SaveArticle(ctx context.Context, a *dto.Article) (*dto.Article, error)
	DeleteSaved(ctx context.Context, id string) error
}

// BookmarkView holds the saved-articles list shown to the user.
// It is safe for concurrent use.
type BookmarkView struct {
	api BookmarkAPI

	mu       sync.Mutex
	loaded   bool
	articles []*dto.Article
}

// NewBookmarkView returns an empty, unloaded view.
func NewBookmarkView(api BookmarkAPI) *BookmarkView {
	return &BookmarkView{api: api, articles: []*dto.Article{}}
}

// Load fetches the saved list. Once a load has succeeded further calls do
// nothing; use Refresh to fetch again.
func (v *BookmarkView) Load(ctx context.Context) (*Notification, error) {
	v.mu.Lock()
	loaded := v.loaded
	v.mu.Unlock()
	if loaded {
		return nil, nil
	}
	return v.Refresh(ctx)
}

// Refresh replaces the list with the server's.
func (v *BookmarkView) Refresh(ctx context.Context) (*Notification, error) {
	list, err := v.api.SavedArticles(ctx)
	if err != nil {
		return &Notification{Severity: SeverityError, Message: msgLoadFailed}, err
	}
	v.mu.Lock()
	v.articles = list
	v.loaded = true
	v.mu.Unlock()
	return nil, nil
}

// Delete removes id on the server and then from the local list. On failure
// the list is left unchanged.
func (v *BookmarkView) Delete(ctx context.Context, id string) (Notification, error) {
	if err := v.api.DeleteSaved(ctx, id); err != nil {
		return Notification{Severity: SeverityError, Message: msgDeleteFailed}, err
	}

	v.mu.Lock()
	kept := make([]*dto.Article, 0, len(v.articles))
	for _, a := range v.articles {
		if articleID(a) != id {
			kept = append(kept, a)
		}
	}
	v.articles = kept
	v.mu.Unlock()

	return Notification{Severity: SeveritySuccess, Message: msgArticleDeleted}, nil
}

// Save bookmarks a feed article. If the list is loaded the saved record is
// placed at its head, matching the server's newest-first order.
func (v *BookmarkView) Save(ctx context.Context, a *dto.Article) (Notification, error) {
	saved, err := v.api.SaveArticle(ctx, a)
	if err != nil {
		if IsDuplicate(err) {
			return Notification{Severity: SeverityError, Message: msgAlreadySaved}, err
		}
		return Notification{Severity: SeverityError, Message: msgSaveFailed}, err
	}

	v.mu.Lock()
	if v.loaded && saved != nil {
		v.articles = AppendArticles([]*dto.Article{saved}, v.articles)
	}
	v.mu.Unlock()

	return Notification{Severity: SeveritySuccess, Message: msgArticleSaved}, nil
}

// Articles returns a copy of the list.
func (v *BookmarkView) Articles() []*dto.Article {
	v.mu.Lock()
	defer v.mu.Unlock()
	return AppendArticles(nil, v.articles)
}

// Loaded reports whether a load has succeeded.
func (v *BookmarkView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

func articleID(a *dto.Article) string {
	if a.MongoID != "" {
		return a.MongoID
	}
	return a.ID
}

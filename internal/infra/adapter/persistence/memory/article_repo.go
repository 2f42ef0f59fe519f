// Package memory provides an in-process ArticleStore used for local development
// and tests. Data is lost when the process exits.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type record struct {
	seq     int64
	article *entity.Article
}

// ArticleRepo stores articles in maps guarded by a single RWMutex.
type ArticleRepo struct {
	mu    sync.RWMutex
	byID  map[string]*record
	byURL map[string]*record
	seq   int64
}

// NewArticleRepo returns an empty in-memory store.
func NewArticleRepo() *ArticleRepo {
	return &ArticleRepo{
		byID:  make(map[string]*record),
		byURL: make(map[string]*record),
	}
}

var _ repository.ArticleStore = (*ArticleRepo)(nil)

func (repo *ArticleRepo) FindByURL(_ context.Context, url string) (*entity.Article, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	rec, ok := repo.byURL[url]
	if !ok {
		return nil, nil
	}
	return rec.article.Clone(), nil
}

func (repo *ArticleRepo) InsertIfAbsent(_ context.Context, article *entity.Article) (repository.InsertResult, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byURL[article.URL]; exists {
		return repository.InsertResult{Outcome: repository.AlreadyExists}, nil
	}

	repo.seq++
	stored := article.Clone()
	stored.ID = strconv.FormatInt(repo.seq, 10)

	rec := &record{seq: repo.seq, article: stored}
	repo.byID[stored.ID] = rec
	repo.byURL[stored.URL] = rec

	return repository.InsertResult{Outcome: repository.Inserted, Article: stored.Clone()}, nil
}

func (repo *ArticleRepo) ListAll(_ context.Context, limit int) ([]*entity.Article, error) {
	repo.mu.RLock()
	recs := make([]*record, 0, len(repo.byID))
	for _, rec := range repo.byID {
		recs = append(recs, rec)
	}
	repo.mu.RUnlock()

	// savedAt 降順、同時刻なら新しい seq を先に
	sort.Slice(recs, func(i, j int) bool {
		ai, aj := recs[i].article.SavedAt, recs[j].article.SavedAt
		if !ai.Equal(aj) {
			return ai.After(aj)
		}
		return recs[i].seq > recs[j].seq
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}

	out := make([]*entity.Article, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.article.Clone())
	}
	return out, nil
}

func (repo *ArticleRepo) DeleteByID(_ context.Context, id string) (*entity.Article, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	rec, ok := repo.byID[id]
	if !ok {
		return nil, nil
	}
	delete(repo.byID, id)
	delete(repo.byURL, rec.article.URL)
	return rec.article.Clone(), nil
}

func (repo *ArticleRepo) Count(_ context.Context) (int64, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return int64(len(repo.byID)), nil
}

func (repo *ArticleRepo) DeleteAll(_ context.Context) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	n := int64(len(repo.byID))
	repo.byID = make(map[string]*record)
	repo.byURL = make(map[string]*record)
	return n, nil
}

func (repo *ArticleRepo) Ping(_ context.Context) error { return nil }

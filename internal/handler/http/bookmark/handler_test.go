package bookmark_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/bookmark"
	"newsdesk/internal/infra/adapter/persistence/memory"
	"newsdesk/internal/repository"
	bmUC "newsdesk/internal/usecase/bookmark"
)

/* ───────── helpers ───────── */

type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Articles json.RawMessage `json:"articles"`
	Message  string          `json:"message"`
	Error    string          `json:"error"`
}

type article struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	SavedAt string `json:"savedAt"`
}

func newMux(t *testing.T, svc *bmUC.Service, dev bool) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	bookmark.Register(mux, svc, dev)
	return mux
}

func newService(clock func() time.Time) (*bmUC.Service, *memory.ArticleRepo) {
	repo := memory.NewArticleRepo()
	return &bmUC.Service{Repo: repo, Now: clock}, repo
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "body: %s", rr.Body.String())
	return rr, env
}

func saveBody(url string) string {
	return fmt.Sprintf(`{
		"title": "Go 1.25 released",
		"description": "Release notes",
		"url": %q,
		"urlToImage": "https://example.com/go.png",
		"publishedAt": "2025-08-12T16:00:00Z",
		"source": {"id": "go-blog", "name": "Go Blog"},
		"author": "Go Team"
	}`, url)
}

func steppingClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

// downStore fails every call as if the database were unreachable.
type downStore struct{ repository.ArticleStore }

func (downStore) FindByURL(context.Context, string) (*entity.Article, error) {
	return nil, fmt.Errorf("find: %w: dial tcp postgres://app:hunter2@db:5432: connection refused", repository.ErrUnavailable)
}
func (downStore) ListAll(context.Context, int) ([]*entity.Article, error) {
	return nil, fmt.Errorf("list: %w", repository.ErrUnavailable)
}

/* ───────── save ───────── */

func TestSaveHandler(t *testing.T) {
	t.Run("TC-1: saves and returns 201", func(t *testing.T) {
		svc, repo := newService(steppingClock(time.Date(2025, 11, 16, 9, 0, 0, 0, time.UTC)))
		mux := newMux(t, svc, false)

		rr, env := do(t, mux, http.MethodPost, "/api/save-article", saveBody("https://example.com/go"))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Article saved successfully", env.Message)

		var got article
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, got.ID, got.MongoID)
		assert.Equal(t, "https://example.com/go", got.URL)
		assert.Equal(t, "2025-11-16T09:01:00.000Z", got.SavedAt)

		n, _ := repo.Count(context.Background())
		assert.Equal(t, int64(1), n)
	})

	t.Run("TC-2: duplicate URL is rejected with 400", func(t *testing.T) {
		svc, repo := newService(nil)
		mux := newMux(t, svc, false)

		rr, _ := do(t, mux, http.MethodPost, "/api/save-article", saveBody("https://example.com/dup"))
		require.Equal(t, http.StatusCreated, rr.Code)

		rr, env := do(t, mux, http.MethodPost, "/api/save-article", saveBody("https://example.com/dup"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Article already saved", env.Message)

		n, _ := repo.Count(context.Background())
		assert.Equal(t, int64(1), n, "duplicate must not create a second record")
	})

	t.Run("TC-3: validation error is 400 with the field message", func(t *testing.T) {
		svc, _ := newService(nil)
		mux := newMux(t, svc, false)

		rr, env := do(t, mux, http.MethodPost, "/api/save-article",
			`{"url":"https://example.com/x","publishedAt":"2025-08-12T16:00:00Z","source":{"name":"S"}}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Error saving article", env.Message)
		assert.Equal(t, "title is required", env.Error)
	})

	t.Run("TC-4: malformed JSON is 400", func(t *testing.T) {
		svc, _ := newService(nil)
		rr, env := do(t, newMux(t, svc, false), http.MethodPost, "/api/save-article", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, env.Success)
	})

	t.Run("TC-5: unparseable publishedAt is 400", func(t *testing.T) {
		svc, _ := newService(nil)
		body := strings.Replace(saveBody("https://example.com/d"), "2025-08-12T16:00:00Z", "not a date", 1)

		rr, env := do(t, newMux(t, svc, false), http.MethodPost, "/api/save-article", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "publishedAt is not a valid date", env.Error)
	})

	t.Run("TC-6: oversized body is 413", func(t *testing.T) {
		svc, _ := newService(nil)
		h := bookmark.SaveHandler{Svc: svc}

		req := httptest.NewRequest(http.MethodPost, "/api/save-article", strings.NewReader(saveBody("https://example.com/big")))
		rr := httptest.NewRecorder()
		req.Body = http.MaxBytesReader(rr, req.Body, 16)
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("TC-7: store outage is 503 without leaking credentials", func(t *testing.T) {
		svc := &bmUC.Service{Repo: downStore{}}
		rr, env := do(t, newMux(t, svc, false), http.MethodPost, "/api/save-article", saveBody("https://example.com/y"))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "Error saving article", env.Message)
		assert.NotContains(t, env.Error, "hunter2")
	})
}

/* ───────── list ───────── */

func TestListHandler(t *testing.T) {
	t.Run("TC-1: newest first", func(t *testing.T) {
		svc, _ := newService(steppingClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
		mux := newMux(t, svc, false)
		for _, u := range []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"} {
			rr, _ := do(t, mux, http.MethodPost, "/api/save-article", saveBody(u))
			require.Equal(t, http.StatusCreated, rr.Code)
		}

		rr, env := do(t, mux, http.MethodGet, "/api/saved-articles", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var got []article
		require.NoError(t, json.Unmarshal(env.Data, &got))
		require.Len(t, got, 3)
		assert.Equal(t, "https://example.com/3", got[0].URL)
		assert.Equal(t, "https://example.com/1", got[2].URL)
	})

	t.Run("TC-2: empty list encodes as []", func(t *testing.T) {
		svc, _ := newService(nil)
		rr, env := do(t, newMux(t, svc, false), http.MethodGet, "/api/saved-articles", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, string(env.Data))
	})

	t.Run("TC-3: store outage is 503", func(t *testing.T) {
		svc := &bmUC.Service{Repo: downStore{}}
		rr, env := do(t, newMux(t, svc, false), http.MethodGet, "/api/saved-articles", "")

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "Error fetching saved articles", env.Message)
	})
}

/* ───────── delete ───────── */

func TestDeleteHandler(t *testing.T) {
	svc, _ := newService(nil)
	mux := newMux(t, svc, false)

	_, env := do(t, mux, http.MethodPost, "/api/save-article", saveBody("https://example.com/del"))
	var saved article
	require.NoError(t, json.Unmarshal(env.Data, &saved))

	t.Run("TC-1: removes the article and returns it", func(t *testing.T) {
		rr, env := do(t, mux, http.MethodDelete, "/api/saved-articles/"+saved.ID, "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Article deleted successfully", env.Message)
		var removed article
		require.NoError(t, json.Unmarshal(env.Data, &removed))
		assert.Equal(t, saved.ID, removed.ID)

		_, list := do(t, mux, http.MethodGet, "/api/saved-articles", "")
		assert.JSONEq(t, `[]`, string(list.Data))
	})

	t.Run("TC-2: unknown id is 404", func(t *testing.T) {
		rr, env := do(t, mux, http.MethodDelete, "/api/saved-articles/"+saved.ID, "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Article not found", env.Message)
	})

	t.Run("TC-3: malformed id is 404", func(t *testing.T) {
		rr, _ := do(t, mux, http.MethodDelete, "/api/saved-articles/not-an-id", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

/* ───────── development endpoints ───────── */

func TestDevEndpoints(t *testing.T) {
	t.Run("TC-1: not mounted unless enabled", func(t *testing.T) {
		svc, _ := newService(nil)
		mux := newMux(t, svc, false)

		req := httptest.NewRequest(http.MethodPost, "/api/add-test-articles", nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("TC-2: fixtures are added once", func(t *testing.T) {
		svc, repo := newService(nil)
		mux := newMux(t, svc, true)

		rr, env := do(t, mux, http.MethodPost, "/api/add-test-articles", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Test articles added successfully", env.Message)

		var added []article
		require.NoError(t, json.Unmarshal(env.Data, &added))
		assert.Len(t, added, len(bmUC.FixtureArticles()))

		_, _ = do(t, mux, http.MethodPost, "/api/add-test-articles", "")
		n, _ := repo.Count(context.Background())
		assert.Equal(t, int64(len(bmUC.FixtureArticles())), n)
	})

	t.Run("TC-3: samples replace existing bookmarks", func(t *testing.T) {
		svc, repo := newService(nil)
		mux := newMux(t, svc, true)
		_, _ = do(t, mux, http.MethodPost, "/api/save-article", saveBody("https://example.com/keep"))

		rr, env := do(t, mux, http.MethodGet, "/add-test-articles", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Sample articles added successfully", env.Message)

		var added []article
		require.NoError(t, json.Unmarshal(env.Articles, &added))
		assert.Len(t, added, len(bmUC.SampleArticles()))

		n, _ := repo.Count(context.Background())
		assert.Equal(t, int64(len(bmUC.SampleArticles())), n)
	})

	t.Run("TC-4: delete all reports the count", func(t *testing.T) {
		svc, repo := newService(nil)
		mux := newMux(t, svc, true)
		_, _ = do(t, mux, http.MethodPost, "/api/add-test-articles", "")

		rr, env := do(t, mux, http.MethodDelete, "/api/delete-all-articles", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, fmt.Sprintf("Deleted %d articles", len(bmUC.FixtureArticles())), env.Message)

		n, _ := repo.Count(context.Background())
		assert.Zero(t, n)
	})
}

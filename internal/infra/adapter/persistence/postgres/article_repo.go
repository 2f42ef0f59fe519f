package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

const articleColumns = `id, title, description, url, url_to_image, published_at,
source_id, source_name, author, content, category, saved_at`

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleStore {
	return &ArticleRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(s rowScanner) (*entity.Article, error) {
	var (
		a  entity.Article
		id int64
	)
	if err := s.Scan(&id, &a.Title, &a.Description, &a.URL, &a.URLToImage, &a.PublishedAt,
		&a.Source.ID, &a.Source.Name, &a.Author, &a.Content, &a.Category, &a.SavedAt); err != nil {
		return nil, err
	}
	a.ID = strconv.FormatInt(id, 10)
	return &a, nil
}

func (repo *ArticleRepo) FindByURL(ctx context.Context, url string) (*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM saved_articles
WHERE url = $1
LIMIT 1`
	a, err := scanArticle(repo.db.QueryRowContext(ctx, query, url))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify("FindByURL", err)
	}
	return a, nil
}

// InsertIfAbsent relies on the UNIQUE(url) constraint: ON CONFLICT DO NOTHING
// returns no row when the URL is already stored.
func (repo *ArticleRepo) InsertIfAbsent(ctx context.Context, article *entity.Article) (repository.InsertResult, error) {
	const query = `
INSERT INTO saved_articles
       (title, description, url, url_to_image, published_at,
        source_id, source_name, author, content, category, saved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (url) DO NOTHING
RETURNING id`
	var id int64
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Description, article.URL, article.URLToImage, article.PublishedAt,
		article.Source.ID, article.Source.Name, article.Author, article.Content, article.Category,
		article.SavedAt,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return repository.InsertResult{Outcome: repository.AlreadyExists}, nil
	}
	if err != nil {
		return repository.InsertResult{}, classify("InsertIfAbsent", err)
	}

	stored := article.Clone()
	stored.ID = strconv.FormatInt(id, 10)
	return repository.InsertResult{Outcome: repository.Inserted, Article: stored}, nil
}

func (repo *ArticleRepo) ListAll(ctx context.Context, limit int) ([]*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM saved_articles
ORDER BY saved_at DESC, id DESC
LIMIT $1`
	// LIMIT NULL returns every row
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := repo.db.QueryContext(ctx, query, limitArg)
	if err != nil {
		return nil, classify("ListAll", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, max(limit, 0))
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("ListAll: Scan: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("ListAll", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) DeleteByID(ctx context.Context, id string) (*entity.Article, error) {
	// 数値でない ID は存在しないものとして扱う
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || numericID <= 0 {
		return nil, nil
	}

	const query = `DELETE FROM saved_articles
WHERE id = $1
RETURNING ` + articleColumns
	a, err := scanArticle(repo.db.QueryRowContext(ctx, query, numericID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify("DeleteByID", err)
	}
	return a, nil
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM saved_articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, classify("Count", err)
	}
	return count, nil
}

func (repo *ArticleRepo) DeleteAll(ctx context.Context) (int64, error) {
	const query = `DELETE FROM saved_articles`
	res, err := repo.db.ExecContext(ctx, query)
	if err != nil {
		return 0, classify("DeleteAll", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteAll: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *ArticleRepo) Ping(ctx context.Context) error {
	if err := repo.db.PingContext(ctx); err != nil {
		return classify("Ping", err)
	}
	return nil
}

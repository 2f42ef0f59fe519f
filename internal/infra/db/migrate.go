package db

import (
	"context"
	"database/sql"
	"fmt"
)

// MigrateUp creates the saved_articles table and its indexes if missing.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS saved_articles (
    id           BIGSERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    url          TEXT NOT NULL UNIQUE,
    url_to_image TEXT NOT NULL DEFAULT '',
    published_at TIMESTAMPTZ NOT NULL,
    source_id    TEXT NOT NULL DEFAULT '',
    source_name  TEXT NOT NULL,
    author       TEXT NOT NULL DEFAULT '',
    content      TEXT NOT NULL DEFAULT '',
    category     TEXT NOT NULL DEFAULT '',
    saved_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("create saved_articles: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
CREATE INDEX IF NOT EXISTS idx_saved_articles_saved_at
    ON saved_articles (saved_at DESC, id DESC)`); err != nil {
		return fmt.Errorf("create idx_saved_articles_saved_at: %w", err)
	}

	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/burrowhq/burrow/internal/model"
	"github.com/burrowhq/burrow/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// migrations is an ordered list of SQL migrations.
// Each migration runs exactly once, tracked by schema_version table.
var migrations = []string{
	// Migration 1: Initial schema
	`
CREATE TABLE IF NOT EXISTS seen_stories (
	story_id INTEGER PRIMARY KEY,
	seen_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_seen_stories_seen_at ON seen_stories(seen_at DESC);

CREATE TABLE IF NOT EXISTS bookmarks (
	story_id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	url TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bookmarks_created_at ON bookmarks(created_at DESC);
`,
	// Future migrations go here:
	// Migration 2: `ALTER TABLE ...`,
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return err
	}

	var currentVersion int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	if err := row.Scan(&currentVersion); err != nil {
		return err
	}

	for i := currentVersion; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}

	return nil
}

func (s *Store) MarkSeen(ctx context.Context, storyID int64, at int64) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO seen_stories (story_id, seen_at) VALUES (?, ?)
ON CONFLICT(story_id) DO UPDATE SET seen_at = excluded.seen_at
`, storyID, at)
	return err
}

func (s *Store) IsSeen(ctx context.Context, storyID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM seen_stories WHERE story_id = ?`, storyID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ListSeen(ctx context.Context, limit int) ([]model.SeenStory, error) {
	limit = clamp(limit, 1, 500)
	rows, err := s.db.QueryContext(ctx, `
SELECT story_id, seen_at FROM seen_stories ORDER BY seen_at DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SeenStory
	for rows.Next() {
		var seen model.SeenStory
		if err := rows.Scan(&seen.StoryID, &seen.SeenAt); err != nil {
			return nil, err
		}
		out = append(out, seen)
	}
	return out, rows.Err()
}

func (s *Store) AddBookmark(ctx context.Context, b *model.Bookmark) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO bookmarks (story_id, title, url, created_at) VALUES (?, ?, ?, ?)
`, b.StoryID, b.Title, nullIfEmpty(b.URL), b.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return store.ErrDuplicateBookmark
	}
	return err
}

func (s *Store) RemoveBookmark(ctx context.Context, storyID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE story_id = ?`, storyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListBookmarks(ctx context.Context, limit int) ([]model.Bookmark, error) {
	limit = clamp(limit, 1, 500)
	rows, err := s.db.QueryContext(ctx, `
SELECT story_id, title, url, created_at FROM bookmarks ORDER BY created_at DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Bookmark
	for rows.Next() {
		var b model.Bookmark
		var url sql.NullString
		if err := rows.Scan(&b.StoryID, &b.Title, &url, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.URL = url.String
		out = append(out, b)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional sqlite log of resolution outcomes for
// later inspection. The resolver core itself stays stateless; recording
// happens at the serving layer and only when a path is configured.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded resolution attempt.
type Entry struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	CodeHint    string    `json:"code_hint"`
	ArticleHint string    `json:"article_hint"`
	DateHint    string    `json:"date_hint,omitempty"`
	Outcome     string    `json:"outcome"`
	LegiartiID  string    `json:"legiarti_id,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// Store wraps the sqlite database holding the resolution log.
type Store struct {
	db *sql.DB
}

// Open creates or opens the log database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS resolutions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			code_hint    TEXT NOT NULL,
			article_hint TEXT NOT NULL,
			date_hint    TEXT NOT NULL DEFAULT '',
			outcome      TEXT NOT NULL,
			legiarti_id  TEXT NOT NULL DEFAULT '',
			message      TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_resolutions_created
			ON resolutions(created_at DESC);
	`)
	return err
}

// Record appends one resolution attempt to the log.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resolutions (code_hint, article_hint, date_hint, outcome, legiarti_id, message)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.CodeHint, e.ArticleHint, e.DateHint, e.Outcome, e.LegiartiID, e.Message,
	)
	if err != nil {
		return fmt.Errorf("recording resolution: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, code_hint, article_hint, date_hint, outcome, legiarti_id, message
		FROM resolutions ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.CodeHint, &e.ArticleHint, &e.DateHint, &e.Outcome, &e.LegiartiID, &e.Message); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists the user's reading list: papers bookmarked
// from a result list. It stores papers the user chose to keep and is never
// consulted to answer a search.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-search/pkg/types"
)

// ErrNotFound is returned when no saved paper has the requested id.
var ErrNotFound = errors.New("paper not in library")

// Entry is a saved paper and when it was saved.
type Entry struct {
	Paper   types.Paper `json:"paper"`
	SavedAt time.Time   `json:"saved_at"`
}

// Store manages the reading list SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at cfg.Path, creating parent
// directories and the schema as needed.
func Open(cfg types.LibraryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("library path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			arxiv_id TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			category TEXT NOT NULL,
			published TEXT NOT NULL,
			pdf_link TEXT NOT NULL,
			saved_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_saved_at ON papers(saved_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save bookmarks p, replacing any earlier copy of the same paper.
func (s *Store) Save(ctx context.Context, p types.Paper) error {
	key := p.ArxivID()
	if key == "" {
		return fmt.Errorf("paper has no identifier")
	}
	authors, err := json.Marshal(p.Authors)
	if err != nil {
		return fmt.Errorf("encoding authors: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO papers
		(arxiv_id, id, title, authors, category, published, pdf_link, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		key, p.ID, p.Title, string(authors), p.Category, p.Published, p.PDFLink,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Get returns the saved paper with the given short arXiv id.
func (s *Store) Get(ctx context.Context, arxivID string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, authors, category, published, pdf_link, saved_at
		FROM papers WHERE arxiv_id = ?
	`, arxivID)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%s: %w", arxivID, ErrNotFound)
	}
	return e, err
}

// List returns saved papers, most recently saved first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, authors, category, published, pdf_link, saved_at
		FROM papers ORDER BY saved_at DESC, arxiv_id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes the saved paper with the given short arXiv id.
func (s *Store) Remove(ctx context.Context, arxivID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM papers WHERE arxiv_id = ?`, arxivID)
	if err != nil {
		return fmt.Errorf("removing %s: %w", arxivID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing %s: %w", arxivID, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", arxivID, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var e Entry
	var authors, savedAt string
	err := sc.Scan(&e.Paper.ID, &e.Paper.Title, &authors, &e.Paper.Category,
		&e.Paper.Published, &e.Paper.PDFLink, &savedAt)
	if err != nil {
		return Entry{}, err
	}

	e.Paper.Authors = []string{}
	if err := json.Unmarshal([]byte(authors), &e.Paper.Authors); err != nil {
		return Entry{}, fmt.Errorf("decoding authors of %s: %w", e.Paper.ID, err)
	}
	if e.Paper.Authors == nil {
		e.Paper.Authors = []string{}
	}
	e.SavedAt, _ = time.Parse(time.RFC3339Nano, savedAt)
	return e, nil
}

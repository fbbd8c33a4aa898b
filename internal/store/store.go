// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists processed submissions in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

// ErrNotFound is returned when no submission has the requested id.
var ErrNotFound = errors.New("submission not found")

const defaultListLimit = 50

// Store manages the submission history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
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
		`CREATE TABLE IF NOT EXISTS submissions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			filename TEXT NOT NULL,
			media_type TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			degree TEXT NOT NULL,
			complete INTEGER NOT NULL,
			text_length INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts sub. A missing ID or CreatedAt is filled in and written
// back to sub.
func (s *Store) Save(ctx context.Context, sub *types.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	r := sub.Record
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, filename, media_type, first_name, last_name, email, phone, degree, complete, text_length, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Filename, string(sub.MediaType),
		r.FirstName, r.LastName, r.Email, r.Phone, r.Degree,
		r.IsComplete(), sub.TextLength,
		sub.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting submission %s: %w", sub.ID, err)
	}
	return nil
}

// ListOptions filters List results.
type ListOptions struct {
	// Limit caps the number of results. Zero uses the default of 50; a
	// negative value returns every submission.
	Limit int

	// IncompleteOnly keeps submissions with at least one missing field.
	IncompleteOnly bool
}

const selectColumns = `SELECT id, filename, media_type, first_name, last_name, email, phone, degree, text_length, created_at FROM submissions`

// List returns submissions, most recent first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Submission, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	query := selectColumns
	if opts.IncompleteOnly {
		query += ` WHERE complete = 0`
	}
	query += ` ORDER BY rowid DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var subs []types.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}
	return subs, nil
}

// Get returns the submission with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.Submission, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Submission{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return sub, err
}

// Count returns the total number of stored submissions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM submissions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting submissions: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(sc scanner) (types.Submission, error) {
	var (
		sub       types.Submission
		mediaType string
		createdAt string
	)
	r := &sub.Record
	err := sc.Scan(&sub.ID, &sub.Filename, &mediaType,
		&r.FirstName, &r.LastName, &r.Email, &r.Phone, &r.Degree,
		&sub.TextLength, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sub, err
	}
	if err != nil {
		return sub, fmt.Errorf("scanning submission: %w", err)
	}

	sub.MediaType = types.MediaType(mediaType)
	sub.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return sub, fmt.Errorf("parsing created_at of %s: %w", sub.ID, err)
	}
	return sub, nil
}

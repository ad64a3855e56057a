// Package tally keeps local pass/fail counts of graded quiz attempts in DuckDB.
package tally

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"restlab/internal/quiz"
)

// Tally records graded attempts.
type Tally struct {
	db  *sql.DB
	now func() time.Time
}

// Count aggregates attempts for one quiz.
type Count struct {
	Key       string
	Title     string
	Attempts  int
	Passed    int
	BestScore int
	Total     int
	LastAt    time.Time
}

// Failed returns the number of attempts that did not pass.
func (c Count) Failed() int {
	return c.Attempts - c.Passed
}

// Option customizes a Tally.
type Option func(*Tally)

// WithClock overrides the timestamp source for recorded attempts.
func WithClock(now func() time.Time) Option {
	return func(t *Tally) {
		if now != nil {
			t.now = now
		}
	}
}

// Open opens the DuckDB file at path, creating it and its schema when needed.
// An empty path opens an in-memory database.
func Open(ctx context.Context, path string, opts ...Option) (*Tally, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create tally dir: %w", err)
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open tally: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping tally: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply tally schema: %w", err)
	}
	return New(db, opts...), nil
}

// New wraps an open database whose schema is already applied.
func New(db *sql.DB, opts ...Option) *Tally {
	t := &Tally{db: db, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record stores one graded attempt. It satisfies quiz.Recorder.
func (t *Tally) Record(ctx context.Context, attempt quiz.Attempt) error {
	if t == nil || t.db == nil {
		return errors.New("tally: not open")
	}
	if attempt.Key == "" {
		return errors.New("tally: attempt key is required")
	}
	if _, err := t.db.ExecContext(
		ctx,
		`INSERT INTO attempts (attempt_id, quiz_key, title, score, total, passed, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		attempt.Key,
		attempt.Title,
		attempt.Score,
		attempt.Total,
		attempt.Passed,
		t.now().UTC(),
	); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// Counts returns per-quiz aggregates ordered by key.
func (t *Tally) Counts(ctx context.Context) ([]Count, error) {
	if t == nil || t.db == nil {
		return nil, errors.New("tally: not open")
	}
	rows, err := t.db.QueryContext(
		ctx,
		`SELECT quiz_key,
		        arg_max(title, submitted_at),
		        count(*),
		        count(*) FILTER (WHERE passed),
		        max(score),
		        arg_max(total, submitted_at),
		        max(submitted_at)
		   FROM attempts
		  GROUP BY quiz_key
		  ORDER BY quiz_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()
	var counts []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Key, &c.Title, &c.Attempts, &c.Passed, &c.BestScore, &c.Total, &c.LastAt); err != nil {
			return nil, fmt.Errorf("scan counts: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read counts: %w", err)
	}
	return counts, nil
}

// Close releases the database.
func (t *Tally) Close() error {
	if t == nil || t.db == nil {
		return nil
	}
	return t.db.Close()
}

package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

// Driver names a SQL backend flavor.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS quiz_progress (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS quiz_progress (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at BIGINT NOT NULL
);
`

// SQL stores values in a quiz_progress table.
type SQL struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQL opens a database for driver and ensures the schema exists.
func OpenSQL(ctx context.Context, driver Driver, dsn string) (*SQL, error) {
	var drvName, schema string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite"
		schema = schemaSQLite
		if dsn == "" {
			dsn = "file:restlab.db?mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx"
		schema = schemaPostgres
		if dsn == "" {
			dsn = "postgres://localhost:5432/restlab?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("progress: unsupported driver %q", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// One connection keeps ":memory:" databases shared across calls.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply %s schema: %w", driver, err)
	}
	return &SQL{db: db, now: time.Now}, nil
}

// Get returns the value stored for key.
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM quiz_progress WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select progress: %w", err)
	}
	return value, true, nil
}

// Set upserts the value for key.
func (s *SQL) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_progress (key, value, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, s.now().Unix())
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// Delete removes the row for key.
func (s *SQL) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM quiz_progress WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQL) Close() error {
	return s.db.Close()
}

package tallytesting

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"restlab/internal/tally"
	"restlab/internal/testutil"
)

const defaultTimeout = 2 * time.Second

// Open opens a DuckDB connection and verifies it responds within a short timeout.
func Open(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		t.Fatalf("ping duckdb: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

// NewTally returns an in-memory tally with the schema applied.
func NewTally(t testing.TB, opts ...tally.Option) (*tally.Tally, *sql.DB) {
	t.Helper()
	db := Open(t, "")
	ctx := testutil.Context(t, defaultTimeout)
	if err := tally.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return tally.New(db, opts...), db
}

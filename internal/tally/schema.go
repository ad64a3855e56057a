package tally

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
)

// schemaDDL holds the attempts table definition.
//
//go:embed schema.sql
var schemaDDL string

// EnsureSchema applies the schema DDL to db.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("tally: db is nil")
	}
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}

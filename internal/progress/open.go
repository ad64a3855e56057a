package progress

import (
	"context"
	"fmt"
)

// Backend kinds accepted by Open.
const (
	KindFile     = "file"
	KindMemory   = "memory"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
	KindRedis    = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Kind     string
	Dir      string
	DSN      string
	RedisURL string
	Prefix   string
}

// Open builds the backend described by opts.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Kind {
	case KindFile, "":
		return NewFile(opts.Dir)
	case KindMemory:
		return NewMemory(), nil
	case KindSQLite:
		return OpenSQL(ctx, DriverSQLite, opts.DSN)
	case KindPostgres:
		return OpenSQL(ctx, DriverPostgres, opts.DSN)
	case KindRedis:
		return OpenRedis(ctx, opts.RedisURL, opts.Prefix)
	default:
		return nil, fmt.Errorf("progress: unknown backend %q", opts.Kind)
	}
}

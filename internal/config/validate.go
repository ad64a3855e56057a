package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for correctness and referenced files.
func Validate(cfg *Config) error {
	c := &issueCollector{}

	if cfg.Version == 0 {
		c.add("version", "is required")
	} else if cfg.Version != 1 {
		c.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	switch cfg.Storage.Backend {
	case "file", "memory", "sqlite":
	case "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			c.add("storage.dsn", "is required for the postgres backend")
		}
	case "redis":
		if strings.TrimSpace(cfg.Storage.RedisURL) == "" {
			c.add("storage.redis_url", "is required for the redis backend")
		}
	default:
		c.add("storage.backend", fmt.Sprintf("unsupported backend %q", cfg.Storage.Backend))
	}

	switch cfg.Server.Latency {
	case LatencyOriginal, LatencyNone:
	default:
		c.add("server.latency", fmt.Sprintf("unsupported latency %q", cfg.Server.Latency))
	}
	if rps := cfg.Server.RateLimit.RPS; rps != nil && *rps < 0 {
		c.add("server.rate_limit.rps", "must be >= 0")
	}
	if cfg.Server.RateLimit.Burst < 0 {
		c.add("server.rate_limit.burst", "must be >= 0")
	}

	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		c.add("log.level", fmt.Sprintf("unsupported level %q", cfg.Log.Level))
	}
	if cfg.Log.MaxSizeMB < 0 {
		c.add("log.max_size_mb", "must be >= 0")
	}
	if cfg.Log.MaxBackups < 0 {
		c.add("log.max_backups", "must be >= 0")
	}
	if cfg.Log.MaxAgeDays < 0 {
		c.add("log.max_age_days", "must be >= 0")
	}

	for i, path := range cfg.Quizzes.Extra {
		field := fmt.Sprintf("quizzes.extra[%d]", i)
		if path == "" {
			c.add(field, "is required")
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			c.add(field, fmt.Sprintf("file not found: %s", path))
		} else if info.IsDir() {
			c.add(field, fmt.Sprintf("%s is a directory", path))
		}
	}

	return c.result()
}

package config

import (
	"path/filepath"
	"strings"
)

// Default values.
const (
	DefaultBackend     = "file"
	DefaultProgressDir = ".restlab/progress"
	DefaultSQLitePath  = ".restlab/progress.db"
	DefaultTallyPath   = ".restlab/tally.duckdb"
	DefaultRedisPrefix = "restlab:"
	DefaultAddr        = "127.0.0.1:8080"
	DefaultLogLevel    = "info"
	DefaultLogFile     = ".restlab/restlab.log"
	DefaultRPS         = 5.0

	LatencyOriginal = "original"
	LatencyNone     = "none"
)

// Default returns a normalized config for a project without a config file.
func Default(root string) Config {
	cfg := Config{Version: 1}
	Normalize(&cfg, root)
	return cfg
}

// Normalize fills defaults and resolves relative paths against root.
func Normalize(cfg *Config, root string) {
	cfg.Root = root

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultBackend
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = DefaultProgressDir
	}
	cfg.Storage.Dir = resolve(root, cfg.Storage.Dir)
	if cfg.Storage.Backend == "sqlite" && strings.TrimSpace(cfg.Storage.DSN) == "" {
		cfg.Storage.DSN = resolve(root, DefaultSQLitePath)
	}
	if cfg.Storage.Prefix == "" {
		cfg.Storage.Prefix = DefaultRedisPrefix
	}

	if cfg.Tally.Path == "" {
		cfg.Tally.Path = DefaultTallyPath
	}
	cfg.Tally.Path = resolve(root, cfg.Tally.Path)

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	cfg.Server.Latency = strings.ToLower(strings.TrimSpace(cfg.Server.Latency))
	if cfg.Server.Latency == "" {
		cfg.Server.Latency = LatencyOriginal
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 10
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.File == "" {
		cfg.Log.File = DefaultLogFile
	}
	cfg.Log.File = resolve(root, cfg.Log.File)
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 28
	}

	for i, path := range cfg.Quizzes.Extra {
		cfg.Quizzes.Extra[i] = resolve(root, strings.TrimSpace(path))
	}
}

func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}

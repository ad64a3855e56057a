package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
storage:
  backend: file
  dir: .restlab/progress
tally:
  enabled: true
  path: .restlab/tally.duckdb
server:
  addr: "127.0.0.1:8080"
  latency: original
  rate_limit:
    rps: 5
    burst: 10
  cors_origins: ["*"]
log:
  level: info
  file: .restlab/restlab.log
quizzes:
  extra: []
`

// Scaffold writes a default config file at path, refusing to overwrite.
func Scaffold(path string) error {
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return fmt.Errorf("config file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaultsAndResolvesPaths(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\nstorage:\n  backend: sqlite\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Root != root {
		t.Fatalf("expected root %q, got %q", root, cfg.Root)
	}
	if cfg.Storage.DSN != filepath.Join(root, DefaultSQLitePath) {
		t.Fatalf("unexpected sqlite dsn %q", cfg.Storage.DSN)
	}
	if cfg.Tally.Path != filepath.Join(root, DefaultTallyPath) || !cfg.TallyEnabled() {
		t.Fatalf("unexpected tally config %+v", cfg.Tally)
	}
	if cfg.Server.Addr != DefaultAddr || cfg.Server.Latency != LatencyOriginal {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.RateLimitRPS() != DefaultRPS || cfg.Server.RateLimit.Burst != 10 {
		t.Fatalf("unexpected rate limit %+v", cfg.Server.RateLimit)
	}
	if cfg.Log.Level != "info" || !cfg.LogCompress() {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\nstorage:\n  engine: file\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadRejectsMultipleDocuments(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\n---\nversion: 1\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multiple document error, got %v", err)
	}
}

func TestValidateCollectsIssues(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `version: 2
storage:
  backend: etcd
server:
  latency: slow
  rate_limit:
    rps: -1
log:
  level: chatty
quizzes:
  extra: [missing.yml]
`)
	_, err := Load(path)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, field := range []string{"version", "storage.backend", "server.latency", "server.rate_limit.rps", "log.level", "quizzes.extra[0]"} {
		if !fields[field] {
			t.Fatalf("expected issue for %s, got %v", field, validationErr.Issues)
		}
	}
}

func TestValidateBackendRequirements(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.Storage.Backend = "postgres"
	if err := Validate(&cfg); err == nil || !strings.Contains(err.Error(), "storage.dsn") {
		t.Fatalf("expected dsn error, got %v", err)
	}
	cfg.Storage.Backend = "redis"
	if err := Validate(&cfg); err == nil || !strings.Contains(err.Error(), "storage.redis_url") {
		t.Fatalf("expected redis_url error, got %v", err)
	}
}

func TestExplicitFalseFlagsSurvive(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\ntally:\n  enabled: false\nlog:\n  compress: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TallyEnabled() || cfg.LogCompress() {
		t.Fatalf("expected explicit false flags to be kept")
	}
}

func TestRateLimitZeroDisables(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\nserver:\n  rate_limit:\n    rps: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.RateLimitRPS(); got != 0 {
		t.Fatalf("expected explicit rps 0 to be kept, got %v", got)
	}
}

func TestRateLimitRejectsNegative(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\nserver:\n  rate_limit:\n    rps: -1\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "server.rate_limit.rps") {
		t.Fatalf("expected rps error, got %v", err)
	}
}

func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("expected %q, got %q", path, found)
	}
	if RootFromConfigPath(found) != root {
		t.Fatalf("unexpected root %q", RootFromConfigPath(found))
	}
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, path, err := Resolve("", root)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "" {
		t.Fatalf("expected no config path, got %q", path)
	}
	if cfg.Storage.Backend != DefaultBackend || cfg.Storage.Dir != filepath.Join(root, DefaultProgressDir) {
		t.Fatalf("unexpected default storage %+v", cfg.Storage)
	}
	if err := Validate(&cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestScaffoldWritesLoadableConfig(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected scaffold to refuse overwrite")
	}
}

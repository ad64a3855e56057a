package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"restlab/internal/site"
)

// TestServeCommandPassesConfig ensures serve forwards the resolved config to the server layer.
func TestServeCommandPassesConfig(t *testing.T) {
	_, configPath := writeProject(t, `version: 1
tally:
  enabled: false
server:
  addr: "127.0.0.1:9000"
  latency: none
  rate_limit:
    rps: 2
    burst: 4
  cors_origins: ["http://localhost:5173"]
quizzes:
  extra: ["quiz.yml"]
`)

	var gotConfig site.Config
	origServe := serveSite
	serveSite = func(_ context.Context, cfg site.Config) error {
		gotConfig = cfg
		return nil
	}
	t.Cleanup(func() { serveSite = origServe })

	var stdout, stderr bytes.Buffer
	exitCode := Run([]string{"serve", "--config", configPath, "--addr", "127.0.0.1:5050"}, &stdout, &stderr)
	if exitCode != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", exitCode, stderr.String())
	}
	if gotConfig.Addr != "127.0.0.1:5050" {
		t.Fatalf("unexpected addr: %s", gotConfig.Addr)
	}
	if gotConfig.RateLimit != (site.RateLimit{RPS: 2, Burst: 4}) {
		t.Fatalf("unexpected rate limit: %+v", gotConfig.RateLimit)
	}
	if len(gotConfig.CORSOrigins) != 1 || gotConfig.CORSOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %v", gotConfig.CORSOrigins)
	}
	if _, err := gotConfig.Catalog.Lookup("quiz-cli"); err != nil {
		t.Fatalf("expected extra quiz in catalog: %v", err)
	}
	if gotConfig.Products == nil || gotConfig.Logger == nil {
		t.Fatalf("expected products store and logger")
	}
	if !strings.Contains(stdout.String(), "http://127.0.0.1:5050") {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}

	// latency: none makes product calls return immediately.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := gotConfig.Products.List(ctx); err != nil {
		t.Fatalf("expected instant list, got %v", err)
	}
}

// TestServeCommandRateLimitZeroDisables keeps an explicit rps of 0 so the
// site skips its limiter.
func TestServeCommandRateLimitZeroDisables(t *testing.T) {
	_, configPath := writeProject(t, baseConfig+"server:\n  rate_limit:\n    rps: 0\n")
	var gotConfig site.Config
	origServe := serveSite
	serveSite = func(_ context.Context, cfg site.Config) error {
		gotConfig = cfg
		return nil
	}
	t.Cleanup(func() { serveSite = origServe })

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"serve", "--config", configPath}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	if gotConfig.RateLimit.RPS != 0 {
		t.Fatalf("expected rate limiting off, got %+v", gotConfig.RateLimit)
	}
}

func TestServeCommandReportsServerError(t *testing.T) {
	_, configPath := writeProject(t, baseConfig)
	origServe := serveSite
	serveSite = func(context.Context, site.Config) error { return errors.New("address in use") }
	t.Cleanup(func() { serveSite = origServe })

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"serve", "--config", configPath}, &stdout, &stderr); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), "address in use") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

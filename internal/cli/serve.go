package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"restlab/internal/config"
	"restlab/internal/products"
	"restlab/internal/site"
)

// serveSite is a test seam for running the site server.
var serveSite = site.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file")
		addr := fs.String("addr", "", "Address to listen on (default from config)")
		if code := parseFlags(cmd, fs, args, stdout, stderr); code >= 0 {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			return ExitUsage
		}

		sess, err := openSession(*configPath, stderr, true)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		defer sess.Close()
		cat, err := sess.loadCatalog()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load quizzes: %v\n", err)
			return ExitError
		}

		server := sess.cfg.Server
		if strings.TrimSpace(*addr) != "" {
			server.Addr = strings.TrimSpace(*addr)
		}
		latency := products.DefaultLatency
		if server.Latency == config.LatencyNone {
			latency = products.Latency{}
		}
		cfg := site.Config{
			Addr:        server.Addr,
			Catalog:     cat,
			Products:    products.NewStore(products.WithLatency(latency)),
			Logger:      sess.logger,
			RateLimit:   site.RateLimit{RPS: sess.cfg.RateLimitRPS(), Burst: server.RateLimit.Burst},
			CORSOrigins: server.CORSOrigins,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(stdout, "Serving restlab at http://%s\n", cfg.Addr)
		if err := serveSite(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

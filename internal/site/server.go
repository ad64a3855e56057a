// Package site serves the course pages and the REST demo API.
package site

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"restlab/internal/catalog"
	"restlab/internal/products"
)

// Config captures the settings for serving the site.
type Config struct {
	Addr        string
	Catalog     *catalog.Catalog
	Products    *products.Store
	Logger      *zap.Logger
	RateLimit   RateLimit
	CORSOrigins []string
}

// RateLimit is a token bucket applied to the API; RPS <= 0 disables it.
type RateLimit struct {
	RPS   float64
	Burst int
}

// Serve starts the HTTP server and shuts it down when ctx is cancelled.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("site: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("site: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	logger.Info("site listening", zap.String("addr", cfg.Addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		logger.Info("site stopped")
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}

package site

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"restlab/internal/catalog"
)

// NewHandler builds the router for pages, API, health and metrics.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("site: catalog is required")
	}
	if cfg.Products == nil {
		return nil, errors.New("site: product store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := newMetrics()

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(metrics.middleware, requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.handler())

	r.Get("/", templ.Handler(indexPage(cfg.Catalog.Topics())).ServeHTTP)
	r.Get("/topics/{id}", topicHandler(cfg.Catalog))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	api := &productAPI{store: cfg.Products, logger: logger}
	r.Route("/api", func(ar chi.Router) {
		ar.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Retry-After"},
			MaxAge:         300,
		}))
		ar.Use(rateLimiter(cfg.RateLimit))
		ar.Route("/products", api.routes)
	})
	return r, nil
}

func topicHandler(c *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic, err := c.Lookup(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			_ = notFoundPage(chi.URLParam(r, "id")).Render(r.Context(), w)
			return
		}
		templ.Handler(topicPage(topic)).ServeHTTP(w, r)
	}
}

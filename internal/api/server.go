// Package api assembles the HTTP server: shared middleware, metrics and the
// web application routes.
package api

import (
	"log/slog"
	"net/http"

	web "github.com/adamanr/dreamteam/internal/api/http"
	"github.com/adamanr/dreamteam/internal/config"
	logging "github.com/adamanr/dreamteam/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the web routes behind request id, logging and metrics
// middleware and exposes /metrics.
func NewRouter(app *web.Server, metrics *Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(metrics.Middleware)

	r.Handle("/metrics", metrics.Handler())

	app.Mount(r)

	return r
}

func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		Addr:              cfg.Server.Host,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}
}

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package page serves the redirect page and its small JSON API.
package page

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jongio/escapehatch/config"
	"github.com/jongio/escapehatch/logutil"
	"github.com/jongio/escapehatch/probe"
	"github.com/jongio/escapehatch/target"
)

// HTTP server timeouts.
const (
	ReadHeaderTimeout = 5 * time.Second
	ReadTimeout       = 10 * time.Second
	WriteTimeout      = 10 * time.Second
	IdleTimeout       = 60 * time.Second
	ShutdownTimeout   = 5 * time.Second
)

//go:embed templates/index.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

var indexTmpl = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(templateFiles, "templates/index.html"))

// Server is the HTTP front end.
type Server struct {
	cfg     *config.Config
	targets *target.Builder
	prober  *probe.Prober
	limiter *limiterStore
	router  chi.Router
	log     *logutil.ComponentLogger
	newID   func() string
}

// New builds a Server for cfg. prober may be nil when probing is disabled.
func New(cfg *config.Config, prober *probe.Prober) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	targets, err := target.NewBuilder(cfg.Destination.BaseURL, cfg.Destination.Param)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		targets: targets,
		prober:  prober,
		limiter: newLimiterStore(cfg.Events.RateLimit, cfg.Events.Burst),
		log:     logutil.NewLogger("page"),
		newID:   uuid.NewString,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/classify", s.handleClassify)
		r.Post("/events", s.handleEvents)
	})

	static, err := fs.Sub(staticFiles, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	if s.cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. The destination prober, if any, runs for the same lifetime.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	if s.prober != nil {
		go s.prober.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	s.log.Info("listening", "addr", ln.Addr().String(), "destination", s.targets.BaseURL())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Package server provides the HTTP API for lamp.
//
// The server exposes the layout pipeline over HTTP and persists every
// run, so clients can fetch layouts and rendered artifacts later without
// recomputing them.
//
// # Endpoints
//
//	GET  /healthz             - liveness probe with build version
//	POST /api/layout          - run the pipeline on an inline netlist
//	GET  /api/runs            - list recent runs, newest first
//	GET  /api/runs/{id}       - fetch one run, layout JSON embedded
//	GET  /api/runs/{id}/svg   - fetch the rendered SVG artifact
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	srv := server.New(runner, store.NewMemoryStore(), logger, server.Config{Addr: ":8080"})
//	if err := srv.Serve(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Serve blocks until ctx is cancelled, then drains in-flight requests
// before returning.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
	"github.com/Naivedya-sahu/lamp-v2/pkg/store"
)

// Default server parameters.
const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultShutdownTimeout bounds how long Serve waits for in-flight
	// requests after ctx is cancelled.
	DefaultShutdownTimeout = 10 * time.Second

	// readHeaderTimeout guards against slowloris clients.
	readHeaderTimeout = 10 * time.Second
)

// Config holds the server parameters. The zero value is usable after
// ValidateAndSetDefaults.
type Config struct {
	Addr            string        `json:"addr,omitempty" toml:"addr"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout,omitempty" toml:"shutdown_timeout"`
}

// ValidateAndSetDefaults fills zero fields with defaults.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return nil
}

// Server serves the lamp HTTP API. Create one with New.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	cfg    Config
}

// New creates a server over the given runner and store.
// If logger is nil, the default logger is used.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	_ = cfg.ValidateAndSetDefaults()
	return &Server{
		runner: runner,
		store:  st,
		logger: logger,
		cfg:    cfg,
	}
}

// Router builds the chi router with all routes and middleware attached.
// It is exported so tests can drive the API through httptest without
// binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/runs/{id}/svg", s.handleGetRunSVG)
	})

	return r
}

// Serve listens on the configured address and blocks until ctx is
// cancelled or the listener fails. On cancellation it drains in-flight
// requests for up to ShutdownTimeout, then returns ctx.Err() so callers
// can distinguish a requested stop from a listener failure.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	}
}

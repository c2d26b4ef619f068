// Package server serves documentation search over HTTP.
//
// Routes:
//
//	GET /search?q=<input>[&version=<v>]  200 {"hits": [...]}
//	GET /healthz                         200 {"status": "ok"}
//	GET /metrics                         Prometheus exposition
//	/mcp                                 streamable MCP transport, when configured
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonwraymond/docsearch/metrics"
	"github.com/jonwraymond/docsearch/search"
)

// ErrNoSearcher is returned by New without a searcher.
var ErrNoSearcher = errors.New("server: searcher is required")

// Options configures the HTTP surface.
type Options struct {
	Searcher search.Searcher

	// MCP, when set, is mounted at /mcp.
	MCP http.Handler

	// Fingerprint is reported by /healthz when non-empty.
	Fingerprint string

	Logger *zap.Logger
}

// Server owns the router and its dependencies.
type Server struct {
	searcher    search.Searcher
	fingerprint string
	log         *zap.Logger
	router      chi.Router
}

// New builds the router.
func New(opts Options) (*Server, error) {
	if opts.Searcher == nil {
		return nil, ErrNoSearcher
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Server{
		searcher:    opts.Searcher,
		fingerprint: opts.Fingerprint,
		log:         opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.log))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.log))
	r.Use(metrics.Middleware())

	r.Get("/search", s.handleSearch)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}

	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Timeouts bounds the listener.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within t.Shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string, t Timeouts) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  t.Read,
		WriteTimeout: t.Write,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Received shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), t.Shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.log.Info("Server stopped gracefully")
	return nil
}

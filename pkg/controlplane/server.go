// Package controlplane is the optional HTTP surface a long-running
// generation job can expose: health, a read-only progress snapshot, and
// Prometheus metrics. It never touches the core's indices directly — it
// only ever reads Progress values handed to it over a channel, preserving
// the generator's single-owner access to its own index.
package controlplane

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tavianator/pixelforest/pkg/generate"
	"github.com/tavianator/pixelforest/pkg/observability"
)

// Config holds the control plane server's configuration.
type Config struct {
	Host            string
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// Address returns the server's listen address (host:port).
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// progressSnapshot is the latest generate.Progress, stored for lock-free
// reads from concurrent HTTP handlers.
type progressSnapshot struct {
	placed  atomic.Int64
	total   atomic.Int64
	elapsed atomic.Int64 // nanoseconds
}

func (p *progressSnapshot) update(progress generate.Progress) {
	p.placed.Store(int64(progress.Placed))
	p.total.Store(int64(progress.Total))
	p.elapsed.Store(int64(progress.Elapsed))
}

func (p *progressSnapshot) load() generate.Progress {
	return generate.Progress{
		Placed:  int(p.placed.Load()),
		Total:   int(p.total.Load()),
		Elapsed: time.Duration(p.elapsed.Load()),
	}
}

// Server is the control plane's HTTP server.
type Server struct {
	config     Config
	metrics    *observability.Metrics
	logger     *observability.Logger
	httpServer *http.Server
	mux        *http.ServeMux
	progress   progressSnapshot
	start      time.Time
}

// NewServer creates a control plane server. metrics may be nil, in which
// case a fresh Metrics is created and /metrics serves its collectors, which
// nothing else updates.
func NewServer(config Config, metrics *observability.Metrics) *Server {
	if metrics == nil {
		metrics = observability.NewMetrics()
	}

	s := &Server{
		config:  config,
		metrics: metrics,
		logger:  observability.GetGlobalLogger().WithField("component", "controlplane"),
		mux:     http.NewServeMux(),
		start:   time.Now(),
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         config.Address(),
		Handler:      s.withMiddleware(s.mux),
		ReadTimeout:  config.RequestTimeout,
		WriteTimeout: config.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/progress", s.handleProgress)
	s.mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"uptime": time.Since(s.start).String(),
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.progress.load())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.Errorf("controlplane: error encoding response: %v", err)
	}
}

// withMiddleware wraps the mux with logging, auth, and rate limiting, from
// outermost to innermost: every request is logged, auth runs next, and rate
// limiting runs inside auth so it can key on the authenticated claims
// (RateLimitConfig.PerUser). Requests rejected by auth are logged but never
// reach the rate limiter.
func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	rateLimiter := NewRateLimiter(s.config.RateLimit)
	handler = RateLimitMiddleware(rateLimiter)(handler)
	handler = AuthMiddleware(s.config.Auth)(handler)
	handler = s.loggingMiddleware(handler)
	return handler
}

// loggingMiddleware records every request through the teacher's AccessLogger.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	access := observability.NewAccessLogger(s.logger)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		access.LogAccess(r.Method, r.URL.Path, fmt.Sprintf("%d", wrapped.statusCode), time.Since(start), nil)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code for
// loggingMiddleware.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// WatchProgress drains progress until the channel closes or ctx is done,
// keeping the latest value available to the /v1/progress handler. Intended
// to run in its own goroutine, fed by the same channel passed to
// generate.Run.
func (s *Server) WatchProgress(ctx context.Context, progress <-chan generate.Progress) {
	for {
		select {
		case p, ok := <-progress:
			if !ok {
				return
			}
			s.progress.update(p)
		case <-ctx.Done():
			return
		}
	}
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Infof("Starting control plane server on %s", s.config.Address())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("control plane: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down control plane server...")
	return s.httpServer.Shutdown(ctx)
}

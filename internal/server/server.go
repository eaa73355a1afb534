// Package server exposes the word-cloud pipeline over HTTP.
//
// # Endpoints
//
//	POST   /v1/layout               text → layout JSON
//	POST   /v1/render?format=svg    text → svg, json or plan
//	POST   /v1/sessions             create a rendered-state session
//	GET    /v1/sessions/{id}        session and its current layout
//	POST   /v1/sessions/{id}/text   diff new text against the session → plan
//	DELETE /v1/sessions/{id}        drop a session
//	GET    /healthz                 liveness
//
// Text endpoints accept a JSON body:
//
//	{"text": "the cat sat", "options": {"top_n": 5, "layout": {"width": 800}}}
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/session"
)

// Default timeouts.
const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API. It is safe for concurrent use.
type Server struct {
	runner     *pipeline.Runner
	store      session.Store
	base       pipeline.Options
	sessionTTL time.Duration
	rateLimit  float64
	burst      int
	logger     *log.Logger

	// sessMu serializes read-modify-write cycles on sessions so concurrent
	// texts for one session apply in arrival order.
	sessMu sync.Mutex

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithOptions sets the pipeline options requests start from.
func WithOptions(opts pipeline.Options) Option { return func(s *Server) { s.base = opts } }

// WithSessionTTL sets the idle lifetime of new sessions.
func WithSessionTTL(ttl time.Duration) Option { return func(s *Server) { s.sessionTTL = ttl } }

// WithRateLimit limits each client to rps requests per second with the given
// burst. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) { s.rateLimit, s.burst = rps, burst }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// New creates a server backed by runner and store.
func New(runner *pipeline.Runner, store session.Store, opts ...Option) *Server {
	s := &Server{
		runner:     runner,
		store:      store,
		sessionTTL: session.DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultRequestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(newRateLimiter(s.rateLimit, s.burst).middleware)
		}
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleDeleteSession)
			r.Post("/{id}/text", s.handleSessionText)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound("no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are swept once a minute.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepSessions(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Server) sweepSessions(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			}
		}
	}
}

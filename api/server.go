// Package api exposes the assistant over HTTP.
//
// Routes:
//
//	POST /api/v1/agents/chat      one chat turn
//	GET  /api/v1/agents/status    agent status and conference stats
//	GET  /api/v1/agents/health    liveness
//	GET  /api/v1/agents/info      venue and support details
//	GET  /api/v1/agents/sessions  recent session records
//	POST /api/v1/agents/sessions  upsert a session record
//	GET  /                        embedded chat client
//
// File structure:
//   - server.go: server setup and lifecycle
//   - middleware.go: recovery, logging, CORS
//   - ratelimit.go: per-IP rate limiting
//   - chat.go, session.go, health.go: handlers
//   - response.go: JSON envelope helpers
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/apiconf/ndu/internal/agent"
	"github.com/apiconf/ndu/internal/config"
	"github.com/apiconf/ndu/internal/directory"
	"github.com/apiconf/ndu/internal/history"
	"github.com/apiconf/ndu/internal/log"
	"github.com/apiconf/ndu/internal/session"
	"github.com/apiconf/ndu/web"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "0.0.0.0:8000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout guards against slow-header clients.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response. Chat
	// turns can run several tool calls, so this is generous.
	WriteTimeout = 120 * time.Second

	// IdleTimeout bounds keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the assistant API.
type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	logger log.Logger

	chat    *ChatHandler
	session *SessionHandler
	health  *HealthHandler

	limiter *rateLimiter
}

// NewServer creates the server with all routes registered.
func NewServer(cfg *config.Config, a *agent.Agent, cache *history.Cache,
	contexts *session.Store, dir *directory.Store, logger log.Logger) *Server {

	mux := http.NewServeMux()

	s := &Server{
		mux:     mux,
		cfg:     cfg,
		logger:  logger,
		chat:    NewChatHandler(a, logger),
		session: NewSessionHandler(cache, logger),
		health:  NewHealthHandler(cfg, contexts, dir, logger),
		limiter: newRateLimiter(cfg.RateLimit, cfg.RateBurst),
	}

	s.chat.RegisterRoutes(mux)
	s.session.RegisterRoutes(mux)
	s.health.RegisterRoutes(mux)
	mux.Handle("GET /", web.Handler())

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Order: recovery → logging → CORS → rate limit.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		loggingMiddleware(s.logger),
		corsMiddleware(s.cfg.CORSOrigins),
		rateLimitMiddleware(s.limiter, s.cfg.TrustProxy, s.logger),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

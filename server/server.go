// SPDX-License-Identifier: MIT

// Package server exposes the annealer over HTTP.
//
// Endpoints:
//
//	POST /        JSON Request → text/csv stream, one record per line
//	GET  /ws      websocket: Request frame in, run/record/done frames out
//	GET  /healthz liveness probe
//
// A request is validated and the machine is built before the first byte is
// written, so every rejection is a plain 4xx JSON error. Once streaming has
// started, a client disconnect cancels the run at the next record.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/boltzmann/config"
	"github.com/katalvlaran/boltzmann/resources"
)

const (
	runIDHeader = "X-Run-ID"
	tracerName  = "github.com/katalvlaran/boltzmann/server"
)

// Server is the annealer HTTP service.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	wsLogger *slog.Logger
	guard    *resources.Guard
	tracer   trace.Tracer
	handler  http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	cancelRuns context.CancelFunc
}

// Option configures a Server.
type Option func(*Server)

// WithGuard replaces the memory guard (nil disables it).
func WithGuard(g *resources.Guard) Option {
	return func(s *Server) { s.guard = g }
}

// WithTracer replaces the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// New builds a server from cfg. A nil cfg means config.Default(); a nil
// logger means slog.Default().
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "server")),
		wsLogger: logger.With(slog.String("component", "ws")),
		guard:    resources.NewGuard(cfg.Limits.MemoryFraction),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.handler = s.routes()

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /{$}", s.handleAnneal)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return Chain(mux,
		RecoveryMiddleware(s.logger),
		LoggingMiddleware(s.logger),
		CORSMiddleware(s.cfg.Server.CORSOrigins),
	)
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Serve accepts connections on l until Shutdown. It returns nil after a
// graceful shutdown.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	base, cancel := context.WithCancel(context.Background())
	s.cancelRuns = cancel
	s.httpServer = &http.Server{
		Handler:     s.handler,
		ReadTimeout: s.cfg.Server.ReadTimeout,
		IdleTimeout: s.cfg.Server.IdleTimeout,
		ErrorLog:    slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		BaseContext: func(net.Listener) context.Context { return base },
	}
	hs := s.httpServer
	s.mu.Unlock()

	s.logger.Info("listening", slog.String("addr", l.Addr().String()))
	if err := hs.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}

	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Server.Addr, err)
	}

	return s.Serve(l)
}

// Shutdown stops accepting connections, cancels in-flight runs (they end at
// their next record) and waits for handlers to return until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	hs, cancel := s.httpServer, s.cancelRuns
	s.mu.Unlock()
	if hs == nil {
		return nil
	}
	s.logger.Info("shutting down")
	cancel()

	return hs.Shutdown(ctx)
}

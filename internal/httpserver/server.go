package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/skillcoder/hamonitor/internal/infra/shutdown"
)

// Server serves the process health endpoints and the read-only targets API.
type Server struct {
	logger         *slog.Logger
	appState       appstater
	targets        targetsReader
	port           string
	allowedOrigins []string
	server         *http.Server
	ready          chan struct{}
	inShutdown     atomic.Bool
}

// New creates a new HTTP server instance. allowedOrigins applies to the targets API only.
func New(
	logger *slog.Logger,
	appState appstater,
	targets targetsReader,
	port string,
	allowedOrigins []string,
) *Server {
	if port == "" {
		port = defaultPort
	}

	return &Server{
		logger:         logger,
		appState:       appState,
		targets:        targets,
		port:           port,
		allowedOrigins: allowedOrigins,
		ready:          make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Server)(nil)

// Name returns the name of the server component
func (s *Server) Name() string {
	return "http-server"
}

// Ping returns nil when the server is listening.
func (s *Server) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
		return nil
	default:
		return ErrNotReady
	}
}

// Handler builds the router with every route registered.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/-/healthz", s.handleHealthz)
	router.Get("/-/readyz", s.handleReadyz)
	router.Get("/-/status", s.handleStatus)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Logger)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         corsMaxAge,
		}))

		r.Get("/-/snapshot", s.handleSnapshot)
		r.Get("/-/down", s.handleDown)
		r.Get("/-/targets", s.handleTargets)
		r.Get("/-/targets/{host}", s.handleTarget)
	})

	return router
}

// Start listens on the configured port and serves in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "http server is shutting down, skipping start")

		return nil
	}

	addr := ":" + s.port
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	lc := &net.ListenConfig{
		KeepAliveConfig: net.KeepAliveConfig{
			Enable: true,
		},
	}

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen http tcp: %w", err)
	}

	s.logger.InfoContext(ctx, "http server listening", "addr", listener.Addr().String())

	go func() {
		close(s.ready)

		err := s.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server error", "reason", err)
		}
	}()

	return nil
}

// Ready returns a channel that is closed when the HTTP server is ready to serve requests
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return shutdownHTTP(ctx, s.logger, &s.inShutdown, s.server, "http server")
}

// shutdownHTTP stops srv once. srv may be nil when the server was never started.
func shutdownHTTP(
	ctx context.Context,
	logger *slog.Logger,
	inShutdown *atomic.Bool,
	srv *http.Server,
	name string,
) error {
	if !inShutdown.CompareAndSwap(false, true) {
		logger.ErrorContext(ctx, name+" is already shutting down, skipping shutdown")

		return nil
	}

	logger.InfoContext(ctx, "shutting down "+name)

	if srv == nil {
		return nil
	}

	err := srv.Shutdown(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "error shutting down "+name, "reason", err)

		return fmt.Errorf("%s shutdown: %w", name, err)
	}

	logger.InfoContext(ctx, name+" closed properly")

	return nil
}

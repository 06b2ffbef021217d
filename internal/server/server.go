package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ai-stock-scanner/internal/interfaces"
	"ai-stock-scanner/internal/logger"
	"ai-stock-scanner/internal/metrics"
	"ai-stock-scanner/internal/store"
)

// Server exposes the scanner over HTTP. Every route is served both at the
// root and under /api.
type Server struct {
	router  *mux.Router
	server  *http.Server
	scanner interfaces.Scanner
	metrics *metrics.Registry
	tag     string
	version string
	started time.Time
	now     func() time.Time
}

type Option func(*Server)

// WithClock overrides the clock used for timestamps and uptime.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(cfg *store.Config, scanner interfaces.Scanner, m *metrics.Registry, opts ...Option) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		scanner: scanner,
		metrics: m,
		tag:     cfg.Server.Tag,
		version: cfg.Server.Version,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.started = s.now()

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)
	s.router.Use(s.corsMiddleware)

	s.mount(s.router)
	s.mount(s.router.PathPrefix("/api").Subrouter())

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	s.router.NotFoundHandler = http.HandlerFunc(s.notFound)
}

func (s *Server) mount(r *mux.Router) {
	api := r.NewRoute().Subrouter()
	api.Use(s.jsonContentTypeMiddleware)

	api.HandleFunc("/scan", s.handleScan).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/stock/{symbol}", s.handleStock).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Addr() string {
	return s.server.Addr
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start(ctx context.Context) error {
	logger.Info(ctx, "Starting HTTP server", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info(ctx, "Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

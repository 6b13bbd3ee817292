package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-product-compare/catalog"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
)

// Comparer resolves a comparison request.
type Comparer interface {
	Resolve(ctx context.Context, ids []int64, fields catalog.FieldSet) ([]catalog.Item, error)
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Observer receives per-request measurements and serves the metrics endpoint.
type Observer interface {
	ObserveHTTP(route string, code int, elapsed time.Duration)
	Handler() http.Handler
}

// Config holds the HTTP server settings.
type Config struct {
	Addr            string
	BasePath        string
	ShutdownTimeout time.Duration
}

// Server exposes a Comparer over HTTP together with health and metrics endpoints.
type Server struct {
	cfg      Config
	comparer Comparer
	logger   *slog.Logger
	observer Observer
	checks   map[string]HealthChecker
	decoder  *schema.Decoder
	now      func() time.Time
	router   *mux.Router
	server   *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the base logger request loggers are derived from. Nil keeps slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver records request metrics and mounts the observer's handler on /metrics.
func WithObserver(o Observer) Option {
	return func(s *Server) {
		s.observer = o
	}
}

// WithHealthCheck adds a named dependency to the /health report.
func WithHealthCheck(name string, checker HealthChecker) Option {
	return func(s *Server) {
		if checker != nil {
			s.checks[name] = checker
		}
	}
}

// New builds a Server and its routes. Nothing listens until ListenAndServe is called.
func New(cfg Config, comparer Comparer, opts ...Option) *Server {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	s := &Server{
		cfg:      cfg,
		comparer: comparer,
		logger:   slog.Default(),
		checks:   make(map[string]HealthChecker),
		decoder:  decoder,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.requestContext, s.observe)

	api := router.PathPrefix(s.cfg.BasePath).Subrouter()
	api.HandleFunc("/products/compare", s.handleCompare).Methods(http.MethodGet)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.observer != nil {
		router.Handle("/metrics", s.observer.Handler()).Methods(http.MethodGet)
	}
	return router
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server starting", "addr", s.cfg.Addr, "base_path", s.cfg.BasePath)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}

package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/hyperterse/reportdeck/core/config"
	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
	"github.com/hyperterse/reportdeck/core/infrastructure/transport/http/middleware"
)

// Options configures a Server.
type Options struct {
	Port string

	// RateLimiter enables per-IP limiting when set.
	RateLimiter middleware.RateLimiter
	RateLimit   int
	RateWindow  time.Duration
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	registry *prometheus.Registry
	server   *http.Server
	port     string
}

// NewServer creates a new HTTP server with the middleware stack installed.
// Routes are added with RegisterRoutes.
func NewServer(opts Options) *Server {
	port := opts.Port
	if port == "" {
		port = config.DefaultPort
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMetrics(registry).Handler)
	r.Use(middleware.Tracing)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.RateLimiter != nil {
		limit := opts.RateLimit
		if limit <= 0 {
			limit = 120
		}
		window := opts.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		r.Use(middleware.RateLimitByIP(opts.RateLimiter, limit, window))
	}

	return &Server{
		router:   r,
		registry: registry,
		port:     port,
	}
}

// Router returns the chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Registry returns the Prometheus registry served on /metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Port returns the listening port.
func (s *Server) Port() string {
	return s.port
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log := logging.New("http")
	log.Infof("Starting HTTP server on port %s", s.port)

	s.server = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Successf("Dashboard listening on http://127.0.0.1:%s", s.port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.Stop()
	})

	return g.Wait()
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	log := logging.New("http")
	log.Infof("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Errorf("Error shutting down HTTP server: %v", err)
		if closeErr := s.server.Close(); closeErr != nil {
			log.Errorf("Error force closing HTTP server: %v", closeErr)
		}
		return err
	}

	log.Infof("HTTP server stopped")
	return nil
}

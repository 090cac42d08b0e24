// AngelaMos | 2026
// server.go

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carterperez-dev/summercamp-api/internal/config"
)

type ShutdownNotifier interface {
	SetShutdown(shutdown bool)
}

type Config struct {
	ServerConfig  config.ServerConfig
	HealthHandler ShutdownNotifier
	Logger        *slog.Logger
	ServiceName   string
}

type Server struct {
	router  *chi.Mux
	http    *http.Server
	health  ShutdownNotifier
	logger  *slog.Logger
	address string
}

func New(cfg Config) *Server {
	router := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.ServiceName
	if name == "" {
		name = "summercamp-api"
	}

	address := cfg.ServerConfig.Address()

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              address,
			Handler:           otelhttp.NewHandler(router, name),
			ReadTimeout:       cfg.ServerConfig.ReadTimeout,
			ReadHeaderTimeout: cfg.ServerConfig.ReadTimeout,
			WriteTimeout:      cfg.ServerConfig.WriteTimeout,
			IdleTimeout:       cfg.ServerConfig.IdleTimeout,
		},
		health:  cfg.HealthHandler,
		logger:  logger,
		address: address,
	}
}

func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "address", s.address)

	if err := s.http.ListenAndServe(); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

// Shutdown flips readiness off, waits drainDelay for load balancers to
// notice, then stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context, drainDelay time.Duration) error {
	if s.health != nil {
		s.health.SetShutdown(true)
	}

	if drainDelay > 0 {
		s.logger.Info("draining connections", "delay", drainDelay.String())
		select {
		case <-time.After(drainDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/carterperez-dev/summercamp-api/internal/admin"
	"github.com/carterperez-dev/summercamp-api/internal/auth"
	"github.com/carterperez-dev/summercamp-api/internal/class"
	"github.com/carterperez-dev/summercamp-api/internal/config"
	"github.com/carterperez-dev/summercamp-api/internal/core"
	"github.com/carterperez-dev/summercamp-api/internal/enroll"
	"github.com/carterperez-dev/summercamp-api/internal/health"
	"github.com/carterperez-dev/summercamp-api/internal/instructor"
	"github.com/carterperez-dev/summercamp-api/internal/metrics"
	"github.com/carterperez-dev/summercamp-api/internal/middleware"
	"github.com/carterperez-dev/summercamp-api/internal/payment"
	"github.com/carterperez-dev/summercamp-api/internal/server"
	"github.com/carterperez-dev/summercamp-api/internal/user"
)

const (
	drainDelay = 5 * time.Second

	paymentRequestsPerMinute = 10
	paymentBurst             = 5
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	if cfg.Database.Migrate {
		if err := core.RunMigrations(cfg.Database.URL); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "HS256",
		"expire", cfg.JWT.AccessTokenExpire.String(),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	publisher := payment.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.PaymentTopic)
	if publisher != nil {
		logger.Info("payment events enabled",
			"brokers", cfg.Kafka.Brokers,
			"topic", cfg.Kafka.PaymentTopic,
		)
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authHandler := auth.NewHandler(jwtManager)

	classSvc := class.NewService(class.NewRepository(db.DB))
	classHandler := class.NewHandler(classSvc)

	instructorHandler := instructor.NewHandler(instructor.NewRepository(db.DB))

	enrollRepo := enroll.NewRepository(db.DB)
	enrollSvc := enroll.NewService(enrollRepo)
	enrollHandler := enroll.NewHandler(enrollSvc)

	paymentSvc := payment.NewService(payment.ServiceConfig{
		Repository:  payment.NewRepository(db.DB),
		Enrollments: enrollRepo,
		Gateway:     payment.NewStripeGateway(cfg.Stripe.SecretKey),
		Publisher:   publisher,
		Recorder:    collector,
		Currency:    cfg.Stripe.Currency,
	})
	paymentHandler := payment.NewHandler(paymentSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:     db.Stats,
		DBPing:      db.Ping,
		RedisPing:   redis.Ping,
		Users:       userSvc.CountUsers,
		Classes:     classSvc.Count,
		Enrollments: enrollSvc.Count,
		Payments:    paymentSvc.Count,
		Revenue:     paymentSvc.Revenue,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
		ServiceName:   cfg.Otel.ServiceName,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.Logger(logger))
	router.Use(collector.Middleware)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen:   true,
			BypassFunc: isProbe(cfg.Metrics.Path),
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	if cfg.Metrics.Enabled {
		router.Method(http.MethodGet, cfg.Metrics.Path, metrics.Handler(registry))
	}

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(jwtManager)
	optionalAuth := middleware.OptionalAuth(jwtManager)
	adminOnly := middleware.RequireAdmin(userSvc)

	paymentLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(paymentRequestsPerMinute, paymentBurst),
		KeyFunc:  middleware.KeyByEmailAndEndpoint,
		FailOpen: true,
	}).Handler

	authHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router, authenticator, optionalAuth, adminOnly)
	classHandler.RegisterRoutes(router, authenticator, adminOnly)
	instructorHandler.RegisterRoutes(router)
	enrollHandler.RegisterRoutes(router, authenticator)
	paymentHandler.RegisterRoutes(router, authenticator, paymentLimiter)
	adminHandler.RegisterRoutes(router, authenticator, adminOnly)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := publisher.Close(); err != nil {
		logger.Error("payment publisher close error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// isProbe exempts health checks and the metrics scrape from the global
// rate limit.
func isProbe(metricsPath string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		switch r.URL.Path {
		case "/healthz", "/livez", "/readyz", metricsPath:
			return true
		}
		return false
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

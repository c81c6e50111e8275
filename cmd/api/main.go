// Package main is the entrypoint for the aisboost API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/cache"
	"github.com/aisboost/aisboost/internal/config"
	"github.com/aisboost/aisboost/internal/handler"
	"github.com/aisboost/aisboost/internal/metrics"
	"github.com/aisboost/aisboost/internal/middleware"
	"github.com/aisboost/aisboost/internal/repository"
	"github.com/aisboost/aisboost/internal/server"
	"github.com/aisboost/aisboost/internal/service"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires storage, services and handlers, then serves until a shutdown
// signal arrives.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.MigrateOnStart {
		if err := repository.MigrateUp(cfg.DatabaseURL); err != nil {
			return errors.New("failed to apply migrations: " + sanitizeError(err, cfg.DatabaseURL))
		}
		logger.Info("database migrations applied")
	}

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return errors.New("database unavailable")
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		repo.Close()
		logger.Error("failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		return errors.New("redis unavailable")
	}
	logger.Info("connected to Redis")

	sealer, err := auth.NewSealer(cfg.TemplateSecret)
	if err != nil {
		repo.Close()
		_ = cacheClient.Close()
		return fmt.Errorf("failed to initialize template sealer: %w", err)
	}

	recorder, metricsHandler := newMetrics(cfg)

	// A nil cache disables read-through.
	var sessionCache service.SessionCache
	if cfg.SessionCacheEnabled() {
		sessionCache = cacheClient
	}

	sessions := service.NewSessionService(service.SessionServiceConfig{
		Store:    repo,
		Cache:    sessionCache,
		CacheTTL: cfg.SessionCacheTTL,
		Metrics:  recorder,
		Logger:   logger,
	})
	applications := service.NewApplicationService(repo, recorder)
	templates := service.NewTemplateService(repo, service.NewOwnershipResolver(repo), sealer, recorder)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	router := handler.NewRouter(handler.RouterConfig{
		Logger: logger,
		Auth: middleware.AuthConfig{
			Logger:        logger,
			Authenticator: sessions,
			CookieName:    cfg.SessionCookieName,
			Metrics:       recorder,
		},
		Security:     middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()},
		CORS:         cors,
		MaxBodyBytes: cfg.MaxRequestBodySize,
		Health:       handler.NewHealthHandler(repo, cacheClient, logger),
		Users:        handler.NewUserHandler(),
		Applications: handler.NewApplicationHandler(applications, logger),
		Templates:    handler.NewTemplateHandler(templates, logger),
		Metrics:      metricsHandler,
	})

	srv := server.New(router, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		slog.Int("port", cfg.AppPort),
		slog.String("env", cfg.AppEnv),
		slog.Bool("session_cache", cfg.SessionCacheEnabled()),
		slog.String("metrics_backend", cfg.MetricsBackend),
	)

	return srv.Run()
}

// newMetrics returns the recorder for cfg and the /metrics handler, which is
// nil when metrics are disabled.
func newMetrics(cfg *config.Config) (metrics.Recorder, http.Handler) {
	if !cfg.MetricsEnabled {
		return metrics.NewNoop(), nil
	}

	if cfg.MetricsBackend == config.MetricsBackendMemory {
		rec := metrics.NewInMemory()
		return rec, http.HandlerFunc(handler.NewMetricsHandler(rec).Metrics)
	}

	rec := metrics.NewPrometheus()
	return rec, rec.Handler()
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL strips the password from a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	q := parsed.Query()
	if q.Has("password") {
		q.Set("password", "redacted")
		parsed.RawQuery = q.Encode()
	}

	return parsed.String()
}

// sanitizeError removes connection secrets from an error message.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aisboost/aisboost/internal/middleware"
)

// RouterConfig carries everything the router mounts.
type RouterConfig struct {
	Logger       *slog.Logger
	Auth         middleware.AuthConfig
	Security     middleware.SecurityConfig
	CORS         middleware.CORSConfig
	MaxBodyBytes int64

	Health       *HealthHandler
	Users        *UserHandler
	Applications *ApplicationHandler
	Templates    *TemplateHandler

	// Metrics serves /metrics when non-nil.
	Metrics http.Handler
}

// defaultMaxBodyBytes applies when RouterConfig.MaxBodyBytes is unset.
const defaultMaxBodyBytes = 1 << 20

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	h := New()
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(cfg.Security))
	r.Use(middleware.CORS(cfg.CORS))

	// Unauthenticated endpoints
	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	r.Get("/ping", h.Ping)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.MaxBodySize(cfg.MaxBodyBytes))
		r.Use(middleware.Auth(cfg.Auth))

		r.Get("/users/@me", cfg.Users.Me)
		r.Get("/users/me", cfg.Users.Me)

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", cfg.Applications.List)
			r.Post("/", cfg.Applications.Create)
			r.Get("/{id}", cfg.Applications.Get)
			r.Patch("/{id}", cfg.Applications.Update)
			r.Delete("/{id}", cfg.Applications.Delete)
		})

		r.Route("/templates/{applicationId}", func(r chi.Router) {
			r.Get("/", cfg.Templates.List)
			r.Post("/", cfg.Templates.Create)
			r.Get("/{id}", cfg.Templates.Get)
			r.Patch("/{id}", cfg.Templates.Update)
			r.Delete("/{id}", cfg.Templates.Delete)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

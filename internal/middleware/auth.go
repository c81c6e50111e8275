package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/metrics"
	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/service"
)

// unauthorizedBody is the only response any authentication failure produces.
const unauthorizedBody = `{"error":{"code":"UNAUTHORIZED","message":"Authentication required"}}`

// Authenticator resolves a session id into its user.
// *service.SessionService implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*model.User, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger        *slog.Logger
	Authenticator Authenticator
	CookieName    string
	Metrics       metrics.Recorder
}

// Auth returns a middleware that authenticates requests by session cookie
// and attaches the user to the request context. Every rejection is answered
// with the same 401; the reason is only logged and counted. A failing
// session store answers 500.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = auth.DefaultCookieName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			user, reason, err := authenticate(r, cfg)

			cfg.Metrics.ObserveAuthDuration(time.Since(start))
			cfg.Metrics.IncAuthOutcome(reason)

			if user == nil {
				attrs := []slog.Attr{
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				}
				if reason == metrics.AuthStoreFailure {
					attrs = append(attrs, slog.String("error", err.Error()))
					cfg.Logger.LogAttrs(r.Context(), slog.LevelError, "session lookup failed", attrs...)
					writeInternalError(w)
					return
				}
				cfg.Logger.LogAttrs(r.Context(), slog.LevelWarn, "authentication failed", attrs...)

				writeAuthError(w)
				return
			}

			SetLogUserID(r.Context(), user.ID)
			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate returns the user, or nil with the failure reason.
func authenticate(r *http.Request, cfg AuthConfig) (*model.User, string, error) {
	sessionID, err := auth.SessionIDFromRequest(r, cfg.CookieName)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSessionFormat) {
			return nil, metrics.AuthMalformed, err
		}
		return nil, metrics.AuthMissing, err
	}

	user, err := cfg.Authenticator.Authenticate(r.Context(), sessionID)
	if err != nil {
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			return nil, authErr.Reason, err
		}
		return nil, metrics.AuthStoreFailure, err
	}

	return user, metrics.AuthOK, nil
}

// writeInternalError writes the generic 500 response.
func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(internalErrorBody))
}

// writeAuthError writes the 401 response.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}

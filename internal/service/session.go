package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/metrics"
	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/repository"
)

// cleanupTimeout bounds the best-effort removal of an expired session.
const cleanupTimeout = 2 * time.Second

// SessionServiceConfig holds dependencies for SessionService.
type SessionServiceConfig struct {
	Store    SessionStore
	Cache    SessionCache // optional
	CacheTTL time.Duration
	Metrics  metrics.Recorder
	Logger   *slog.Logger
	Now      func() time.Time
}

// SessionService resolves session ids into users.
type SessionService struct {
	store    SessionStore
	cache    SessionCache
	cacheTTL time.Duration
	metrics  metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionService creates a new SessionService.
func NewSessionService(cfg SessionServiceConfig) *SessionService {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.CacheTTL <= 0 {
		cfg.Cache = nil
	}
	return &SessionService{
		store:    cfg.Store,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		now:      cfg.Now,
	}
}

// Authenticate returns the user owning sessionID. Every rejection is an
// *AuthError wrapping ErrUnauthenticated. A store failure is returned as a
// plain error. An expired session is deleted before the rejection is
// returned.
func (s *SessionService) Authenticate(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, authFailure(metrics.AuthMissing, nil)
	}
	if len(sessionID) > auth.MaxSessionIDLen {
		return nil, authFailure(metrics.AuthMalformed, nil)
	}

	session, err := s.lookup(ctx, sessionID)
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return nil, authFailure(metrics.AuthUnknown, nil)
	case errors.Is(err, repository.ErrMalformedSession):
		return nil, authFailure(metrics.AuthMalformed, err)
	case err != nil:
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if session.IsExpired(s.now()) {
		s.removeExpired(ctx, session)
		return nil, authFailure(metrics.AuthExpired, nil)
	}

	user := session.User
	return &user, nil
}

// lookup reads through the cache when one is configured. Cache errors
// degrade to a store lookup.
func (s *SessionService) lookup(ctx context.Context, sessionID string) (*model.SessionWithUser, error) {
	if s.cache != nil {
		cached, err := s.cache.GetSession(ctx, sessionID)
		if err != nil {
			s.logger.Warn("session cache read failed", slog.String("error", err.Error()))
		} else if cached != nil {
			s.metrics.IncSessionCacheHit()
			return cached, nil
		}
		s.metrics.IncSessionCacheMiss()
	}

	session, err := s.store.GetSessionWithUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && !session.IsExpired(s.now()) {
		if err := s.cache.SetSession(ctx, session, s.cacheTTL); err != nil {
			s.logger.Warn("session cache write failed", slog.String("error", err.Error()))
		}
	}

	return session, nil
}

// removeExpired deletes an expired session from the store and the cache.
// Failures are logged and otherwise ignored; the caller rejects regardless.
func (s *SessionService) removeExpired(ctx context.Context, session *model.SessionWithUser) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.store.DeleteSession(ctx, session.SessionID); err != nil {
		s.logger.Warn("failed to delete expired session",
			slog.String("user_id", session.User.ID),
			slog.String("error", err.Error()),
		)
	} else {
		s.metrics.IncExpiredSessionCleaned()
	}

	if s.cache != nil {
		if err := s.cache.DeleteSession(ctx, session.SessionID); err != nil {
			s.logger.Warn("failed to evict expired session", slog.String("error", err.Error()))
		}
	}
}

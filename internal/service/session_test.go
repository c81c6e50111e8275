package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisboost/aisboost/internal/metrics"
	"github.com/aisboost/aisboost/internal/repository"
	"github.com/aisboost/aisboost/internal/service"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newSessionService(store *fakeSessionStore, cache *fakeSessionCache, rec metrics.Recorder) *service.SessionService {
	cfg := service.SessionServiceConfig{
		Store:   store,
		Metrics: rec,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:     func() time.Time { return fixedNow },
	}
	if cache != nil {
		cfg.Cache = cache
		cfg.CacheTTL = 30 * time.Second
	}
	return service.NewSessionService(cfg)
}

func authReason(t *testing.T, err error) string {
	t.Helper()
	require.ErrorIs(t, err, service.ErrUnauthenticated)
	var authErr *service.AuthError
	require.True(t, errors.As(err, &authErr))
	return authErr.Reason
}

func TestAuthenticate_ValidSession(t *testing.T) {
	store := newFakeSessionStore()
	store.put("abc", "u1", fixedNow.Add(time.Hour))
	rec := metrics.NewInMemory()

	user, err := newSessionService(store, nil, rec).Authenticate(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "u1@example.com", user.Email)
	assert.Empty(t, store.deletes)
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		setup      func(*fakeSessionStore)
		wantReason string
		wantGets   int
	}{
		{
			name:       "empty token",
			token:      "",
			wantReason: metrics.AuthMissing,
		},
		{
			name:       "oversized token skips storage",
			token:      strings.Repeat("a", 513),
			wantReason: metrics.AuthMalformed,
		},
		{
			name:       "unknown session",
			token:      "nope",
			wantReason: metrics.AuthUnknown,
			wantGets:   1,
		},
		{
			name:  "undecodable stored row",
			token: "abc",
			setup: func(s *fakeSessionStore) {
				s.err = fmt.Errorf("%w: cannot scan", repository.ErrMalformedSession)
			},
			wantReason: metrics.AuthMalformed,
			wantGets:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeSessionStore()
			if tt.setup != nil {
				tt.setup(store)
			}

			user, err := newSessionService(store, nil, nil).Authenticate(context.Background(), tt.token)
			assert.Nil(t, user)
			assert.Equal(t, tt.wantReason, authReason(t, err))
			assert.Equal(t, tt.wantGets, store.gets)
		})
	}
}

func TestAuthenticate_MaxLengthTokenReachesStorage(t *testing.T) {
	store := newFakeSessionStore()
	token := strings.Repeat("a", 512)
	store.put(token, "u1", fixedNow.Add(time.Hour))

	user, err := newSessionService(store, nil, nil).Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestAuthenticate_ExpiredSessionIsDeleted(t *testing.T) {
	store := newFakeSessionStore()
	store.put("old", "u1", fixedNow.Add(-time.Minute))
	rec := metrics.NewInMemory()

	_, err := newSessionService(store, nil, rec).Authenticate(context.Background(), "old")
	assert.Equal(t, metrics.AuthExpired, authReason(t, err))
	assert.Equal(t, []string{"old"}, store.deletes)
	assert.NotContains(t, store.sessions, "old")
	assert.Equal(t, uint64(1), rec.Snapshot().ExpiredSessionsCleaned)

	// A second attempt finds nothing.
	_, err = newSessionService(store, nil, rec).Authenticate(context.Background(), "old")
	assert.Equal(t, metrics.AuthUnknown, authReason(t, err))
}

func TestAuthenticate_ExpiresExactlyNow(t *testing.T) {
	store := newFakeSessionStore()
	store.put("edge", "u1", fixedNow)

	_, err := newSessionService(store, nil, nil).Authenticate(context.Background(), "edge")
	assert.Equal(t, metrics.AuthExpired, authReason(t, err))
	assert.Equal(t, []string{"edge"}, store.deletes)
}

func TestAuthenticate_DeleteFailureStillRejects(t *testing.T) {
	store := newFakeSessionStore()
	store.put("old", "u1", fixedNow.Add(-time.Second))
	store.deleteErr = errStoreDown
	rec := metrics.NewInMemory()

	_, err := newSessionService(store, nil, rec).Authenticate(context.Background(), "old")
	assert.Equal(t, metrics.AuthExpired, authReason(t, err))
	assert.Equal(t, uint64(0), rec.Snapshot().ExpiredSessionsCleaned)
}

func TestAuthenticate_ConcurrentExpiredCleanup(t *testing.T) {
	store := newFakeSessionStore()
	store.put("old", "u1", fixedNow.Add(-time.Second))
	svc := newSessionService(store, nil, nil)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Authenticate(context.Background(), "old")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, service.ErrUnauthenticated)
	}
	assert.NotContains(t, store.sessions, "old")
}

func TestAuthenticate_CacheReadThrough(t *testing.T) {
	store := newFakeSessionStore()
	store.put("abc", "u1", fixedNow.Add(time.Hour))
	cache := newFakeSessionCache()
	rec := metrics.NewInMemory()
	svc := newSessionService(store, cache, rec)

	_, err := svc.Authenticate(context.Background(), "abc")
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, 1, store.gets)
	assert.Equal(t, 1, cache.sets)
	snap := rec.Snapshot()
	assert.Equal(t, uint64(1), snap.SessionCacheHits)
	assert.Equal(t, uint64(1), snap.SessionCacheMisses)
}

func TestAuthenticate_ExpiredCacheEntryIsEvicted(t *testing.T) {
	store := newFakeSessionStore()
	store.put("abc", "u1", fixedNow.Add(-time.Second))
	cache := newFakeSessionCache()
	cache.entries["abc"] = store.sessions["abc"]

	_, err := newSessionService(store, cache, nil).Authenticate(context.Background(), "abc")
	assert.Equal(t, metrics.AuthExpired, authReason(t, err))
	assert.Equal(t, []string{"abc"}, cache.evicted)
	assert.Equal(t, []string{"abc"}, store.deletes)
	assert.Equal(t, 0, store.gets)
}

func TestAuthenticate_CacheErrorFallsBackToStore(t *testing.T) {
	store := newFakeSessionStore()
	store.put("abc", "u1", fixedNow.Add(time.Hour))
	cache := newFakeSessionCache()
	cache.getErr = errors.New("redis down")

	user, err := newSessionService(store, cache, nil).Authenticate(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, 1, store.gets)
}

func TestAuthError_WrapsUnauthenticated(t *testing.T) {
	err := &service.AuthError{Reason: metrics.AuthMalformed, Cause: repository.ErrMalformedSession}
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
	assert.Contains(t, err.Error(), metrics.AuthMalformed)
}

func TestAuthenticate_StoreFailureIsNotUnauthenticated(t *testing.T) {
	store := newFakeSessionStore()
	store.err = errStoreDown

	user, err := newSessionService(store, nil, nil).Authenticate(context.Background(), "abc")
	assert.Nil(t, user)
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, service.ErrUnauthenticated)

	var authErr *service.AuthError
	assert.False(t, errors.As(err, &authErr))
	assert.Equal(t, 1, store.gets)
}

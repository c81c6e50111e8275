package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/metrics"
	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/repository"
	"github.com/aisboost/aisboost/internal/service"
)

const testCookie = "aisboost.auth"

// memorySessions is an in-memory service.SessionStore.
type memorySessions struct {
	sessions map[string]*model.SessionWithUser
	err      error
	lookups  int
}

func (m *memorySessions) GetSessionWithUser(_ context.Context, id string) (*model.SessionWithUser, error) {
	m.lookups++
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memorySessions) DeleteSession(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func newTestGate(t *testing.T, store *memorySessions, rec metrics.Recorder, logs *bytes.Buffer) func(http.Handler) http.Handler {
	t.Helper()
	if logs == nil {
		logs = &bytes.Buffer{}
	}
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	sessions := service.NewSessionService(service.SessionServiceConfig{
		Store:   store,
		Metrics: rec,
		Logger:  logger,
	})
	return Auth(AuthConfig{
		Logger:        logger,
		Authenticator: sessions,
		CookieName:    testCookie,
		Metrics:       rec,
	})
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]*model.SessionWithUser{
		"valid": {
			SessionID: "valid",
			ExpiresAt: time.Now().Add(time.Hour),
			User:      model.User{ID: "u1", Email: "u1@example.com"},
		},
		"expired": {
			SessionID: "expired",
			ExpiresAt: time.Now().Add(-time.Minute),
			User:      model.User{ID: "u2", Email: "u2@example.com"},
		},
	}}
}

func TestAuth_AttachesUser(t *testing.T) {
	store := newMemorySessions()
	rec := metrics.NewInMemory()

	var got *model.User
	handler := newTestGate(t, store, rec, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/@me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "valid"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("user = %+v, want u1", got)
	}
	if n := rec.Snapshot().AuthOutcomes[metrics.AuthOK]; n != 1 {
		t.Errorf("ok outcomes = %d, want 1", n)
	}
}

func TestAuth_UniformRejection(t *testing.T) {
	tests := []struct {
		name       string
		cookie     *http.Cookie
		storeErr   error
		wantReason string
		wantLookup bool
	}{
		{"no cookie", nil, nil, metrics.AuthMissing, false},
		{"empty cookie", &http.Cookie{Name: testCookie, Value: ""}, nil, metrics.AuthMissing, false},
		{"other cookie name", &http.Cookie{Name: "session", Value: "valid"}, nil, metrics.AuthMissing, false},
		{"oversized cookie", &http.Cookie{Name: testCookie, Value: strings.Repeat("a", 513)}, nil, metrics.AuthMalformed, false},
		{"unknown session", &http.Cookie{Name: testCookie, Value: "nope"}, nil, metrics.AuthUnknown, true},
		{"expired session", &http.Cookie{Name: testCookie, Value: "expired"}, nil, metrics.AuthExpired, true},
		{"undecodable stored row", &http.Cookie{Name: testCookie, Value: "valid"}, fmt.Errorf("%w: bad timestamp", repository.ErrMalformedSession), metrics.AuthMalformed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemorySessions()
			store.err = tt.storeErr
			rec := metrics.NewInMemory()
			var logs bytes.Buffer

			called := false
			handler := newTestGate(t, store, rec, &logs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/applications", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if called {
				t.Error("downstream handler ran for a rejected request")
			}
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
			body, _ := io.ReadAll(w.Body)
			if string(body) != unauthorizedBody {
				t.Errorf("body = %q, want %q", body, unauthorizedBody)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if (store.lookups > 0) != tt.wantLookup {
				t.Errorf("lookups = %d, wantLookup %v", store.lookups, tt.wantLookup)
			}
			if n := rec.Snapshot().AuthOutcomes[tt.wantReason]; n != 1 {
				t.Errorf("outcome %q = %d, want 1", tt.wantReason, n)
			}
			if !strings.Contains(logs.String(), `"reason":"`+tt.wantReason+`"`) {
				t.Errorf("log missing reason %q: %s", tt.wantReason, logs.String())
			}
		})
	}
}

func TestAuth_StoreFailureIsInternalError(t *testing.T) {
	store := newMemorySessions()
	store.err = errors.New("db down")
	rec := metrics.NewInMemory()
	var logs bytes.Buffer

	called := false
	handler := newTestGate(t, store, rec, &logs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/applications", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "valid"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if called {
		t.Error("downstream handler ran after a store failure")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if body := w.Body.String(); body != internalErrorBody {
		t.Errorf("body = %q, want %q", body, internalErrorBody)
	}
	if n := rec.Snapshot().AuthOutcomes[metrics.AuthStoreFailure]; n != 1 {
		t.Errorf("store_error outcomes = %d, want 1", n)
	}
	if !strings.Contains(logs.String(), `"level":"ERROR"`) || !strings.Contains(logs.String(), "db down") {
		t.Errorf("expected error log with cause: %s", logs.String())
	}
}

func TestAuth_ExpiredSessionRemoved(t *testing.T) {
	store := newMemorySessions()
	handler := newTestGate(t, store, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/@me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "expired"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if _, ok := store.sessions["expired"]; ok {
		t.Error("expired session still stored")
	}
	if _, ok := store.sessions["valid"]; !ok {
		t.Error("unrelated session removed")
	}
}

func TestAuth_LogsNeverContainToken(t *testing.T) {
	const token = "c2VjcmV0LXNlc3Npb24tdG9rZW4tdmFsdWU"
	var logs bytes.Buffer
	handler := newTestGate(t, newMemorySessions(), nil, &logs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/@me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if strings.Contains(logs.String(), token) {
		t.Error("session token leaked into logs")
	}
}

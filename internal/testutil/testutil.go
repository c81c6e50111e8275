// Package testutil holds fixtures shared by unit and integration tests.
package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aisboost/aisboost/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// now is truncated to Postgres timestamp precision so values survive a
// round trip unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewTestUser creates a user with a fresh ULID.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	return &model.User{
		ID:        ulid.Make().String(),
		Email:     email,
		CreatedAt: now(),
	}
}

// NewTestSession creates a session for userID that expires after ttl.
// A negative ttl yields an already expired session.
func NewTestSession(t testing.TB, userID string, ttl time.Duration) *model.Session {
	t.Helper()
	return &model.Session{
		ID:        UniqueID("sess"),
		UserID:    userID,
		ExpiresAt: now().Add(ttl),
	}
}

// NewTestApplication creates an application with the smallest valid settings.
func NewTestApplication(t testing.TB, userID, name string) *model.Application {
	t.Helper()
	ts := now()
	return &model.Application{
		ID:          ulid.Make().String(),
		UserID:      userID,
		Name:        name,
		Duration:    3,
		Checkpoints: 2,
		Prefix:      "x",
		Length:      10,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// NewTestTemplate creates a template of kind under applicationID.
func NewTestTemplate(t testing.TB, applicationID string, kind model.TemplateType) *model.Template {
	t.Helper()
	ts := now()
	return &model.Template{
		ID:            ulid.Make().String(),
		ApplicationID: applicationID,
		Type:          kind,
		APIKey:        "key",
		APIURL:        "https://api.example.com",
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return prefix + "-" + ulid.Make().String()
}

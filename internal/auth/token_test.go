package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSessionIDFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cookie  *http.Cookie
		want    string
		wantErr error
	}{
		{
			name:   "valid cookie",
			cookie: &http.Cookie{Name: "aisboost.auth", Value: "abc"},
			want:   "abc",
		},
		{
			name:    "no cookie",
			wantErr: ErrMissingSession,
		},
		{
			name:    "other cookie only",
			cookie:  &http.Cookie{Name: "theme", Value: "dark"},
			wantErr: ErrMissingSession,
		},
		{
			name:    "empty value",
			cookie:  &http.Cookie{Name: "aisboost.auth", Value: ""},
			wantErr: ErrMissingSession,
		},
		{
			name:    "oversized value",
			cookie:  &http.Cookie{Name: "aisboost.auth", Value: strings.Repeat("a", MaxSessionIDLen+1)},
			wantErr: ErrInvalidSessionFormat,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/v1/users/@me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			got, err := SessionIDFromRequest(req, "aisboost.auth")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SessionIDFromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateSessionID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateSessionID()
		if err != nil {
			t.Fatalf("GenerateSessionID() error: %v", err)
		}
		if len(id) != 43 {
			t.Errorf("len(id) = %d, want 43", len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate session id %q", id)
		}
		seen[id] = true
	}
}

func TestQuickHash(t *testing.T) {
	t.Parallel()

	a := QuickHash("session-a")
	if a != QuickHash("session-a") {
		t.Error("QuickHash should be deterministic")
	}
	if len(a) != 32 {
		t.Errorf("len = %d, want 32", len(a))
	}
	if a == QuickHash("session-b") {
		t.Error("different inputs should hash differently")
	}
}

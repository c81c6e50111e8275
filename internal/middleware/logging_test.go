package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestLogging_SessionCookieNotLogged ensures session ids never reach the log.
func TestLogging_SessionCookieNotLogged(t *testing.T) {
	t.Parallel()

	const secret = "Zm9vYmFyLXNlc3Npb24taWQtdmFsdWUtMTIzNDU2Nzg5"

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/@me", nil)
	req.AddCookie(&http.Cookie{Name: "aisboost.auth", Value: secret})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if strings.Contains(buf.String(), secret) {
		t.Error("log output contains the session cookie value")
	}
}

func TestLogging_Fields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetLogUserID(r.Context(), "user-42")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/v1/applications/x", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}

	want := map[string]any{
		"msg":         "http request",
		"level":       "WARN",
		"request_id":  "req-1",
		"method":      "GET",
		"path":        "/v1/applications/x",
		"status_code": float64(404),
		"bytes":       float64(4),
		"user_id":     "user-42",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestLogging_LevelByStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusUnauthorized, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if !strings.Contains(buf.String(), `"level":"`+tt.level+`"`) {
			t.Errorf("status %d: log %q missing level %s", tt.status, buf.String(), tt.level)
		}
	}
}

func TestSetLogUserID_OutsideLogger(t *testing.T) {
	t.Parallel()
	// Must not panic without a Logger in the chain.
	SetLogUserID(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "u1")
}

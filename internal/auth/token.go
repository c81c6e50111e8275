package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
)

const (
	// DefaultCookieName is the cookie carrying the session id.
	DefaultCookieName = "aisboost.auth"
	// MaxSessionIDLen bounds cookie values before they reach storage.
	MaxSessionIDLen = 512
	// sessionIDBytes is the entropy of generated session ids.
	sessionIDBytes = 32
)

var (
	// ErrMissingSession indicates the request carries no session cookie.
	ErrMissingSession = errors.New("missing session cookie")
	// ErrInvalidSessionFormat indicates the cookie value cannot be a session id.
	ErrInvalidSessionFormat = errors.New("invalid session id format")
)

// SessionIDFromRequest extracts the session id from the named cookie.
// The value is opaque; only emptiness and length are checked.
func SessionIDFromRequest(r *http.Request, cookieName string) (string, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrMissingSession
	}

	if len(cookie.Value) > MaxSessionIDLen {
		return "", ErrInvalidSessionFormat
	}

	return cookie.Value, nil
}

// GenerateSessionID returns a new unguessable session id.
// Used by development tooling and tests; the login flow lives elsewhere.
func GenerateSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// QuickHash returns a SHA256 hash of the input for cache keys.
// This is NOT for credential storage, only for cache key derivation.
func QuickHash(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:16]) // Use first 16 bytes (32 hex chars)
}

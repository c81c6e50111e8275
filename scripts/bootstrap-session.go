// Command bootstrap-session creates a development user and session so the
// API can be exercised without a login flow.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/config"
	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/repository"
)

type output struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	SessionID  string    `json:"session_id"`
	CookieName string    `json:"cookie_name"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "dev@aisboost.local", "User email; the user is created when missing")
		ttl         = flag.Duration("ttl", 24*time.Hour, "Session lifetime")
		cookieName  = flag.String("cookie-name", config.DefaultSessionCookieName, "Cookie name printed in the curl hint")
		format      = flag.String("format", "plain", "Output format: plain, cookie or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *ttl <= 0 {
		fmt.Fprintln(os.Stderr, "ttl must be positive")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	user, err := repo.GetOrCreateUser(ctx, &model.User{ID: ulid.Make().String(), Email: *email})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ensure user:", err)
		os.Exit(1)
	}

	sessionID, err := auth.GenerateSessionID()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(*ttl),
	}
	if err := repo.CreateSession(ctx, session); err != nil {
		fmt.Fprintln(os.Stderr, "create session:", err)
		os.Exit(1)
	}

	out := output{
		UserID:     user.ID,
		Email:      user.Email,
		SessionID:  session.ID,
		CookieName: *cookieName,
		ExpiresAt:  session.ExpiresAt,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.SessionID)
	case "cookie":
		fmt.Printf("curl -b '%s=%s' http://localhost:3000/v1/users/@me\n", out.CookieName, out.SessionID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain, cookie or json")
		os.Exit(1)
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aisboost/aisboost/internal/model"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrSessionNotFound is returned when no session row matches the id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrMalformedSession is returned when a session row cannot be decoded.
	ErrMalformedSession = errors.New("malformed session row")
)

// CreateSession inserts a session row. Sessions are normally created by the
// login flow; this exists for tooling and tests.
func (r *Repository) CreateSession(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.pool.Exec(ctx, query, session.ID, session.UserID, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetSessionWithUser looks up a session joined with its owning user.
func (r *Repository) GetSessionWithUser(ctx context.Context, sessionID string) (*model.SessionWithUser, error) {
	query := `
		SELECT s.id, s.expires_at, u.id, u.email, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`

	var s model.SessionWithUser
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&s.SessionID,
		&s.ExpiresAt,
		&s.User.ID,
		&s.User.Email,
		&s.User.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		var scanErr pgx.ScanArgError
		if errors.As(err, &scanErr) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

// DeleteSession removes a session. Deleting a missing session is a no-op,
// so concurrent cleanups of the same expired session both succeed.
func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

package model

import "time"

// Session is a bearer capability. Its ID is the cookie value.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// SessionWithUser is a session joined with its owning user.
type SessionWithUser struct {
	SessionID string
	ExpiresAt time.Time
	User      User
}

// IsExpired reports whether the session is no longer usable at now.
// A session expiring exactly at now is already expired.
func (s *SessionWithUser) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// CachedSession is the Redis representation of a resolved session.
type CachedSession struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	UserCreatedAt int64  `json:"user_created_at"`
	ExpiresAt     int64  `json:"expires_at"`
}

// ToCachedSession converts a resolved session for caching.
func (s *SessionWithUser) ToCachedSession() *CachedSession {
	return &CachedSession{
		UserID:        s.User.ID,
		Email:         s.User.Email,
		UserCreatedAt: s.User.CreatedAt.UnixNano(),
		ExpiresAt:     s.ExpiresAt.UnixNano(),
	}
}

// ToSessionWithUser rebuilds a resolved session from its cached form.
func (c *CachedSession) ToSessionWithUser(sessionID string) *SessionWithUser {
	return &SessionWithUser{
		SessionID: sessionID,
		ExpiresAt: time.Unix(0, c.ExpiresAt).UTC(),
		User: User{
			ID:        c.UserID,
			Email:     c.Email,
			CreatedAt: time.Unix(0, c.UserCreatedAt).UTC(),
		},
	}
}

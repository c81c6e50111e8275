package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aisboost/aisboost/internal/auth"
	"github.com/aisboost/aisboost/internal/model"
)

// sessionCachePrefix is the Redis key prefix for resolved sessions.
const sessionCachePrefix = "session:"

// sessionKey never embeds the raw token in Redis.
func sessionKey(sessionID string) string {
	return sessionCachePrefix + auth.QuickHash(sessionID)
}

// entryTTL caps ttl so a cache entry never outlives the session itself.
// A non-positive result means the entry should not be written.
func entryTTL(ttl time.Duration, expiresAt, now time.Time) time.Duration {
	remaining := expiresAt.Sub(now)
	if remaining < ttl {
		return remaining
	}
	return ttl
}

// GetSession returns the cached session for sessionID.
// A miss or a corrupted entry returns nil, nil.
func (c *Cache) GetSession(ctx context.Context, sessionID string) (*model.SessionWithUser, error) {
	data, err := c.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached session: %w", err)
	}

	var cached model.CachedSession
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, nil //nolint:nilerr
	}

	return cached.ToSessionWithUser(sessionID), nil
}

// SetSession caches a resolved session for at most ttl.
func (c *Cache) SetSession(ctx context.Context, session *model.SessionWithUser, ttl time.Duration) error {
	ttl = entryTTL(ttl, session.ExpiresAt, time.Now())
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(session.ToCachedSession())
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return c.client.Set(ctx, sessionKey(session.SessionID), data, ttl).Err()
}

// DeleteSession evicts a cached session. Missing keys are not an error.
func (c *Cache) DeleteSession(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, sessionKey(sessionID)).Err()
}

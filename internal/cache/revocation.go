package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/redis/go-redis/v9"
)

// revokedPrefix is the Redis key prefix for revoked token digests.
const revokedPrefix = "auth:revoked:"

// Revoke marks a token as unusable until it would have expired anyway.
// Tokens already past expiresAt are ignored.
func (c *Cache) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(c.now())
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, revokedPrefix+auth.QuickHash(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was revoked.
func (c *Cache) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := c.client.Get(ctx, revokedPrefix+auth.QuickHash(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return true, nil
}

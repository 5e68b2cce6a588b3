package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// rateLimitPrefix is the Redis key prefix for per-scope IP rate limits.
	rateLimitPrefix = "ratelimit:"
	// rateLimitTTL bounds how long an idle bucket is kept.
	rateLimitTTL = 10 * time.Minute
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter checks a token bucket identified by scope and client IP.
type Limiter interface {
	Allow(ctx context.Context, scope, ip string, perMinute, burst int) (*RateLimitResult, error)
}

var _ Limiter = (*Cache)(nil)

// tokenBucketScript is a Lua script implementing the token bucket algorithm.
// It's atomic and handles token refill and consumption in a single operation.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])      -- tokens per second
	local burst = tonumber(ARGV[2])     -- max tokens (bucket capacity)
	local now = tonumber(ARGV[3])       -- current time in seconds
	local ttl = tonumber(ARGV[4])       -- TTL in seconds

	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	local elapsed = math.max(0, now - last_update)
	tokens = math.min(burst, tokens + (elapsed * rate))

	local allowed = 0
	local retry_after = 0

	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// Allow consumes one token from the bucket for scope and ip. A perMinute of
// zero disables limiting. On Redis errors the request is allowed and the
// error is returned for logging.
func (c *Cache) Allow(ctx context.Context, scope, ip string, perMinute, burst int) (*RateLimitResult, error) {
	if perMinute <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst)}, nil
	}
	if burst < 1 {
		burst = 1
	}

	key := rateLimitPrefix + scope + ":" + hashIP(ip)
	rate := float64(perMinute) / 60.0

	result, err := tokenBucketScript.Run(ctx, c.client,
		[]string{key},
		rate, burst, c.now().Unix(), int(rateLimitTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst)}, fmt.Errorf("rate limit script: %w", err)
	}

	return &RateLimitResult{
		Allowed:    result[0] == 1,
		RetryAfter: time.Duration(result[1]) * time.Second,
		Remaining:  result[2],
	}, nil
}

// hashIP creates a truncated SHA256 hash of an IP address.
// This provides privacy while maintaining uniqueness.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8]) // 16 hex chars
}

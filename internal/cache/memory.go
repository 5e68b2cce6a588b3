package cache

import (
	"context"
	"math"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter is an in-process token bucket limiter used when no Redis is
// configured. Buckets are per process, so limits are not shared across replicas.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets *gocache.Cache
	now     func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter creates a limiter whose idle buckets expire after rateLimitTTL.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets: gocache.New(rateLimitTTL, time.Minute),
		now:     time.Now,
	}
}

// Allow consumes one token from the bucket for scope and ip.
func (m *MemoryLimiter) Allow(_ context.Context, scope, ip string, perMinute, burst int) (*RateLimitResult, error) {
	if perMinute <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst)}, nil
	}
	if burst < 1 {
		burst = 1
	}

	key := scope + ":" + hashIP(ip)
	rate := float64(perMinute) / 60.0
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b := &bucket{tokens: float64(burst), last: now}
	if v, ok := m.buckets.Get(key); ok {
		b = v.(*bucket)
	}

	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(float64(burst), b.tokens+elapsed*rate)
		b.last = now
	}

	res := &RateLimitResult{}
	if b.tokens >= 1 {
		b.tokens--
		res.Allowed = true
	} else {
		res.RetryAfter = time.Duration(math.Ceil((1-b.tokens)/rate)) * time.Second
	}
	res.Remaining = int64(math.Floor(b.tokens))

	m.buckets.Set(key, b, gocache.DefaultExpiration)
	return res, nil
}

package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/kingpotter-hr/full9-website/internal/cache"
	"github.com/kingpotter-hr/full9-website/internal/metrics"
)

// RateLimitConfig configures a per-IP token bucket for one route scope.
type RateLimitConfig struct {
	Logger    *slog.Logger
	Limiter   cache.Limiter
	Metrics   metrics.Recorder
	Scope     string // "login", "inquiry"
	PerMinute int
	Burst     int
}

// RateLimitIP limits requests per client IP within cfg.Scope. A zero
// PerMinute disables the limit. Limiter errors fail open.
func RateLimitIP(cfg RateLimitConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		if cfg.PerMinute <= 0 || cfg.Limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			result, err := cfg.Limiter.Allow(r.Context(), cfg.Scope, ip, cfg.PerMinute, cfg.Burst)
			if err != nil {
				cfg.Logger.Error("rate limit check failed",
					slog.String("scope", cfg.Scope),
					slog.String("error", err.Error()),
					slog.String("ip", ip),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.PerMinute))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				recorder.IncRateLimited(cfg.Scope)
				retry := int(result.RetryAfter.Seconds())
				if retry < 1 {
					retry = 1
				}
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("scope", cfg.Scope),
					slog.String("ip", ip),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int("retry_after_seconds", retry),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(retry))
				writeRateLimitError(w, retry)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeRateLimitError writes a 429 Too Many Requests response.
func writeRateLimitError(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	msg := fmt.Sprintf(`{"error":{"code":"RATE_LIMITED","message":"Too many requests. Retry after %d seconds."}}`, retryAfter)
	_, _ = w.Write([]byte(msg))
}

// clientIP returns the host part of RemoteAddr. chi's RealIP middleware has
// already replaced it with the forwarded client address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

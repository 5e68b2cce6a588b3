package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/metrics"
)

// bearerRegex matches "Bearer <token>" with a case-insensitive scheme word.
var bearerRegex = regexp.MustCompile(`(?i)^Bearer\s+(\S+)\s*$`)

// unauthorizedBody is identical for every rejection so callers cannot tell
// which check failed.
const unauthorizedBody = `{"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`

// RevocationChecker reports whether a token was revoked before its expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Verifier *auth.Issuer
	Metrics  metrics.Recorder
	// Revocations is optional. When set, revoked tokens are rejected.
	Revocations RevocationChecker
}

// RequireAuth rejects requests without a valid bearer token. On success the
// verified credential and the raw token are stored in the request context.
func RequireAuth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reject := func(reason string, err error) {
				recorder.IncAuthRejected(reason)
				attrs := []any{
					slog.String("reason", reason),
					slog.String("ip", clientIP(r)),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				}
				if err != nil {
					attrs = append(attrs, slog.String("error", err.Error()))
				}
				cfg.Logger.Warn("authentication failed", attrs...)
				writeAuthError(w)
			}

			token, ok := extractBearer(r)
			if !ok {
				reason := "malformed"
				if r.Header.Get("Authorization") == "" {
					reason = "missing"
				}
				reject(reason, nil)
				return
			}

			cred, err := cfg.Verifier.Verify(token)
			if err != nil {
				reject(auth.Reason(err), err)
				return
			}

			if cfg.Revocations != nil {
				revoked, err := cfg.Revocations.IsRevoked(r.Context(), token)
				if err != nil {
					// Redis outage: fail open, tokens stay bounded by expiry.
					cfg.Logger.Error("revocation check failed",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				} else if revoked {
					reject("revoked", nil)
					return
				}
			}

			ctx := auth.ContextWithCredential(r.Context(), cred)
			ctx = auth.ContextWithToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer returns the token of an "Authorization: Bearer <token>" header.
func extractBearer(r *http.Request) (string, bool) {
	m := bearerRegex.FindStringSubmatch(r.Header.Get("Authorization"))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// writeAuthError writes the generic 401 response.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="full9"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}

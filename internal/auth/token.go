// Package auth issues and verifies signed admin tokens and hashes admin passwords.
package auth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Reserved claim names written by Issue.
const (
	ClaimIssuedAt  = "issuedAt"
	ClaimExpiresAt = "expiresAt"
)

// DefaultTTL is the validity window of an issued token.
const DefaultTTL = 24 * time.Hour

// tokenHeader is the fixed first segment of every token.
const tokenHeader = `{"typ":"JWT","alg":"HS256"}`

var (
	// ErrEmptySecret is returned by NewIssuer when no signing secret is configured.
	ErrEmptySecret = errors.New("token secret is empty")
	// ErrMalformed indicates the token has the wrong shape or an undecodable payload.
	ErrMalformed = errors.New("malformed token")
	// ErrBadSignature indicates the signature does not match the signed segments.
	ErrBadSignature = errors.New("bad token signature")
	// ErrExpired indicates a correctly signed token whose expiry has passed.
	ErrExpired = errors.New("token expired")
)

var (
	segmentEncoding = base64.RawURLEncoding
	encodedHeader   = segmentEncoding.EncodeToString([]byte(tokenHeader))
)

// Issuer signs and verifies tokens with a shared HMAC-SHA256 secret.
// It holds no mutable state and is safe for concurrent use.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithTTL sets the validity window. A negative value issues already expired tokens.
func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) { i.ttl = ttl }
}

// WithLeeway tolerates clock skew when checking expiry.
func WithLeeway(leeway time.Duration) Option {
	return func(i *Issuer) {
		if leeway > 0 {
			i.leeway = leeway
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer creates an Issuer for the given secret.
func NewIssuer(secret string, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	i := &Issuer{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// TTL returns the configured validity window.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue builds a signed token carrying claims plus issuedAt and expiresAt.
// Caller values under the reserved keys are overwritten.
func (i *Issuer) Issue(claims map[string]any) (string, error) {
	now := i.now()

	payload := make(map[string]any, len(claims)+2)
	for k, v := range claims {
		payload[k] = v
	}
	payload[ClaimIssuedAt] = now.Unix()
	payload[ClaimExpiresAt] = now.Add(i.ttl).Unix()

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}

	signingInput := encodedHeader + "." + segmentEncoding.EncodeToString(body)
	return signingInput + "." + i.sign(signingInput), nil
}

// Verify checks structure, then signature, then payload, then expiry, and
// returns the decoded Credential. It performs no I/O.
func (i *Issuer) Verify(token string) (*Credential, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}

	expected := i.sign(parts[0] + "." + parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, ErrBadSignature
	}

	raw, err := segmentEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("%w: payload encoding", ErrMalformed)
	}

	var claims map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&claims); err != nil || claims == nil {
		return nil, fmt.Errorf("%w: payload json", ErrMalformed)
	}

	issuedAt, err := unixClaim(claims, ClaimIssuedAt)
	if err != nil {
		return nil, err
	}
	expiresAt, err := unixClaim(claims, ClaimExpiresAt)
	if err != nil {
		return nil, err
	}

	if expiresAt.Add(i.leeway).Before(i.now()) {
		return nil, ErrExpired
	}

	delete(claims, ClaimIssuedAt)
	delete(claims, ClaimExpiresAt)

	return &Credential{
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Claims:    claims,
	}, nil
}

func (i *Issuer) sign(signingInput string) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(signingInput))
	return segmentEncoding.EncodeToString(mac.Sum(nil))
}

func unixClaim(claims map[string]any, key string) (time.Time, error) {
	n, ok := claims[key].(json.Number)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: missing %s", ErrMalformed, key)
	}
	if secs, err := n.Int64(); err == nil {
		return time.Unix(secs, 0), nil
	}
	// Exponent forms such as 1.7e9 are accepted only when they are whole
	// seconds inside the int64 range.
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return time.Time{}, fmt.Errorf("%w: invalid %s", ErrMalformed, key)
	}
	return time.Unix(int64(f), 0), nil
}

// Reason maps a verification error to a short label for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	default:
		return "unknown"
	}
}

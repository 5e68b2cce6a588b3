package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ClaimSubject is the claim carrying the admin id.
const ClaimSubject = "id"

// ErrNoSubject indicates a credential without a usable id claim.
var ErrNoSubject = errors.New("credential has no subject")

// Credential is the verified content of a token. Identity attributes other
// than the subject are informational and must not drive authorization.
type Credential struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
	Claims    map[string]any
}

// Subject returns the admin id the token was issued for.
func (c *Credential) Subject() (int64, error) {
	if c == nil {
		return 0, ErrNoSubject
	}

	switch v := c.Claims[ClaimSubject].(type) {
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNoSubject, err)
		}
		return id, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNoSubject, err)
		}
		return id, nil
	default:
		return 0, ErrNoSubject
	}
}

// String returns a string claim, or "" when absent or not a string.
func (c *Credential) String(key string) string {
	if c == nil {
		return ""
	}
	s, _ := c.Claims[key].(string)
	return s
}

// ToClaims returns the full claim set including the reserved timestamps.
func (c *Credential) ToClaims() map[string]any {
	out := make(map[string]any, len(c.Claims)+2)
	for k, v := range c.Claims {
		out[k] = v
	}
	out[ClaimIssuedAt] = c.IssuedAt.Unix()
	out[ClaimExpiresAt] = c.ExpiresAt.Unix()
	return out
}

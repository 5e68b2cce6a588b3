package auth

import (
	"context"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// credentialContextKey is the context key for storing the verified Credential.
	credentialContextKey contextKey = "credential"
	// tokenContextKey is the context key for the raw bearer token.
	tokenContextKey contextKey = "bearer_token"
)

// ContextWithCredential adds the verified Credential to the context.
func ContextWithCredential(ctx context.Context, cred *Credential) context.Context {
	return context.WithValue(ctx, credentialContextKey, cred)
}

// CredentialFromContext retrieves the Credential from the context.
// Returns nil if not present.
func CredentialFromContext(ctx context.Context) *Credential {
	cred, ok := ctx.Value(credentialContextKey).(*Credential)
	if !ok {
		return nil
	}
	return cred
}

// MustCredentialFromContext retrieves the Credential from the context.
// Panics if not present (use only when auth middleware has run).
func MustCredentialFromContext(ctx context.Context) *Credential {
	cred := CredentialFromContext(ctx)
	if cred == nil {
		panic("credential not found - ensure auth middleware is applied")
	}
	return cred
}

// ContextWithToken stores the raw bearer token, used by logout.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext returns the raw bearer token or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

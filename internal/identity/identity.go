// Package identity defines the boundary to the external identity provider.
package identity

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned for a missing, malformed, expired or revoked token.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the verified subject of a bearer token.
type Identity struct {
	UserID string
	Email  string
}

// Verifier checks a bearer token with the identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (Identity, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Identity, error) {
	return f(ctx, token)
}

// Package auth resolves bearer tokens to identity provider profiles. The
// provider owns all credentials; this package never verifies passwords, it
// only answers "who does this token belong to".
package auth

import (
	"context"
	"errors"
)

// Profile is the subset of an identity provider profile the application
// stores. Subject is the provider's stable user id (e.g. "auth0|123456789").
type Profile struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
}

// ErrInvalidToken is returned when the provider rejects the credential.
// Handlers map it to 401.
var ErrInvalidToken = errors.New("invalid token")

// ErrUpstream is returned when the provider cannot be reached at all.
// Nothing is retried; the failure surfaces to the caller as 500.
var ErrUpstream = errors.New("identity provider unavailable")

// Introspector resolves a bearer token to a profile exactly once per
// request. Implementations: Auth0 userinfo over HTTP, a local HS256 verifier
// for development and tests, and a Redis-caching decorator.
type Introspector interface {
	Introspect(ctx context.Context, token string) (Profile, error)
}

package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LocalIntrospector verifies HS256 JWTs signed with a shared secret and
// reads the profile straight from the claims. It exists for development and
// tests, where standing up a real identity provider is not worth it; the
// claim names match what the provider would return from userinfo.
type LocalIntrospector struct {
	Secret string
}

func NewLocalIntrospector(secret string) *LocalIntrospector {
	return &LocalIntrospector{Secret: secret}
}

func (l *LocalIntrospector) Introspect(_ context.Context, token string) (Profile, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(l.Secret), nil
	})
	if err != nil || !tok.Valid {
		return Profile{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Profile{}, ErrInvalidToken
	}

	p := Profile{
		Subject: claimString(claims, "sub"),
		Email:   claimString(claims, "email"),
		Name:    claimString(claims, "name"),
		Picture: claimString(claims, "picture"),
	}
	if v, ok := claims["email_verified"].(bool); ok {
		p.EmailVerified = v
	}
	if p.Subject == "" {
		return Profile{}, ErrInvalidToken
	}
	return p, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// SignProfile issues an HS256 token carrying the profile, the mirror image
// of Introspect. Used by tests and local tooling.
func SignProfile(secret string, p Profile, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":            p.Subject,
		"email":          p.Email,
		"name":           p.Name,
		"picture":        p.Picture,
		"email_verified": p.EmailVerified,
		"iat":            now.Unix(),
		"exp":            now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

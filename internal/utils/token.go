// Package utils provides small helpers shared across the application.
package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// NewInviteToken returns a cryptographically random, URL-safe token suitable
// for single-use invitation links. 32 bytes of entropy encode to 43
// characters without padding, safe to embed in a path segment.
func NewInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

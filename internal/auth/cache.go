package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedIntrospector memoizes successful introspections in Redis so repeated
// requests with the same bearer do not hammer the identity provider. Only
// the SHA-256 digest of the token is used as the key; the raw credential
// never reaches Redis. Failures are never cached.
type CachedIntrospector struct {
	Next   Introspector
	RDB    *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewCachedIntrospector(next Introspector, rdb *redis.Client, ttl time.Duration) *CachedIntrospector {
	return &CachedIntrospector{Next: next, RDB: rdb, TTL: ttl, Prefix: "authcache"}
}

func (c *CachedIntrospector) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return c.Prefix + ":" + hex.EncodeToString(sum[:])
}

func (c *CachedIntrospector) Introspect(ctx context.Context, token string) (Profile, error) {
	if c.RDB == nil {
		return c.Next.Introspect(ctx, token)
	}
	key := c.key(token)

	if raw, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		var p Profile
		if json.Unmarshal(raw, &p) == nil && p.Subject != "" {
			return p, nil
		}
	}

	p, err := c.Next.Introspect(ctx, token)
	if err != nil {
		return Profile{}, err
	}
	if raw, err := json.Marshal(p); err == nil {
		// Best effort; a cache write failure must not fail the request.
		_ = c.RDB.Set(ctx, key, raw, c.TTL).Err()
	}
	return p, nil
}

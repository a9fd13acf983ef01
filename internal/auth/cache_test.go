package auth

import (
	"context"
	"strings"
	"testing"
	"time"
)

type countingIntrospector struct {
	calls   int
	profile Profile
	err     error
}

func (s *countingIntrospector) Introspect(context.Context, string) (Profile, error) {
	s.calls++
	return s.profile, s.err
}

func TestCachedIntrospectorNilRedisPassthrough(t *testing.T) {
	next := &countingIntrospector{profile: Profile{Subject: "auth0|1"}}
	c := NewCachedIntrospector(next, nil, time.Minute)

	for i := 0; i < 3; i++ {
		p, err := c.Introspect(context.Background(), "tok")
		if err != nil {
			t.Fatalf("Introspect: %v", err)
		}
		if p.Subject != "auth0|1" {
			t.Fatalf("subject = %q", p.Subject)
		}
	}
	if next.calls != 3 {
		t.Fatalf("calls = %d, want 3 (no caching without redis)", next.calls)
	}
}

func TestCachedIntrospectorKey(t *testing.T) {
	c := NewCachedIntrospector(nil, nil, time.Minute)

	k1 := c.key("token-a")
	k2 := c.key("token-b")
	if k1 == k2 {
		t.Fatal("distinct tokens must hash to distinct keys")
	}
	if k1 != c.key("token-a") {
		t.Fatal("key must be deterministic")
	}
	if !strings.HasPrefix(k1, "authcache:") {
		t.Fatalf("key %q lacks prefix", k1)
	}
	if strings.Contains(k1, "token-a") {
		t.Fatalf("key %q leaks the raw token", k1)
	}
}

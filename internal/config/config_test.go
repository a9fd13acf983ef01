package config

import (
	"testing"
	"time"
)

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins(" https://a.example , https://b.example ,,")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("splitOrigins = %v", got)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "42")
	t.Setenv("X_BOOL", "yes")
	t.Setenv("X_DUR", "90s")

	if got := envInt("X_INT", 1); got != 42 {
		t.Errorf("envInt = %d", got)
	}
	if got := envInt("X_MISSING", 7); got != 7 {
		t.Errorf("envInt default = %d", got)
	}
	if !envBool("X_BOOL", false) {
		t.Error("envBool(yes) = false")
	}
	if !envBool("X_MISSING", true) {
		t.Error("envBool default ignored")
	}
	if got := envDur("X_DUR", time.Second); got != 90*time.Second {
		t.Errorf("envDur = %v", got)
	}
	if got := envDur("X_MISSING", 3*time.Second); got != 3*time.Second {
		t.Errorf("envDur default = %v", got)
	}
}

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, Post ,")
	if !m["GET"] || !m["POST"] {
		t.Fatalf("parseMethods = %v", m)
	}
	if len(m) != 2 {
		t.Fatalf("parseMethods picked up empty entries: %v", m)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("RefillTokens = %d, want 1", cfg.RefillTokens)
	}
	if want := 5 * cfg.RefillInterval; cfg.TTL < want {
		t.Errorf("TTL = %v, want at least %v", cfg.TTL, want)
	}
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] {
		t.Error("GET not cacheable by default")
	}
	if cfg.TTL <= 0 {
		t.Errorf("TTL = %v", cfg.TTL)
	}
	if cfg.MaxBodyBytes <= 0 {
		t.Errorf("MaxBodyBytes = %d", cfg.MaxBodyBytes)
	}
}

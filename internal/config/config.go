package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Auth modes supported by the server. In "auth0" mode bearer tokens are
// resolved by calling the identity provider's userinfo endpoint; in "local"
// mode they are HS256 JWTs verified with JWT_SECRET (useful for development
// and tests).
const (
	AuthModeAuth0 = "auth0"
	AuthModeLocal = "local"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable; required variables are enforced by must() and missing
// values cause the process to exit with a fatal log message.
type Config struct {
	Env           string   // application environment (e.g. "dev", "prod")
	Port          string   // HTTP port to listen on
	DBUser        string   // database username
	DBPass        string   // database password (optional)
	DBHost        string   // database host address
	DBPort        string   // database port number
	DBName        string   // database name
	AuthMode      string   // "auth0" or "local"
	Auth0Domain   string   // identity provider domain (auth0 mode)
	JWTSecret     string   // HS256 secret (local mode)
	CORSOrigins   []string // allowed cross-origin hosts
	InviteTTLDays int      // validity window for team invitations
}

// Load reads configuration from environment variables.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		AuthMode:      getenv("AUTH_MODE", AuthModeAuth0),
		Auth0Domain:   os.Getenv("AUTH0_DOMAIN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		CORSOrigins:   splitOrigins(getenv("CORS_ORIGINS", "*")),
		InviteTTLDays: envInt("INVITE_TTL_DAYS", 7),
	}
	switch cfg.AuthMode {
	case AuthModeAuth0:
		if cfg.Auth0Domain == "" {
			log.Fatal("AUTH_MODE=auth0 requires AUTH0_DOMAIN")
		}
	case AuthModeLocal:
		if cfg.JWTSecret == "" {
			log.Fatal("AUTH_MODE=local requires JWT_SECRET")
		}
	default:
		log.Fatalf("unknown AUTH_MODE: %q", cfg.AuthMode)
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helpers shared with the redis/cache/ratelimit sub-configs.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the whole application configuration.
// It is loaded once at startup and treated as immutable afterwards.
type Config struct {
	// Database
	DatabasePath string

	// Session
	SessionSecret string
	SessionMaxAge int

	// Authority login: fixed email -> password allow-list.
	// Injected via AUTHORITY_USERS instead of being compiled in, so tests
	// and deployments can substitute their own pairs.
	AuthorityUsers map[string]string

	// Rate limit for form POSTs (req/min per client IP).
	RateLimitWrite int

	// Server
	ServerPort string
	BaseURL    string

	// Cookie
	CookieSecure bool
}

// Load reads the Config from environment variables.
// It returns an error listing every required variable that is unset.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.DatabasePath = os.Getenv("DATABASE_PATH")
	if cfg.DatabasePath == "" {
		missing = append(missing, "DATABASE_PATH")
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	authorityUsers := os.Getenv("AUTHORITY_USERS")
	if authorityUsers == "" {
		missing = append(missing, "AUTHORITY_USERS")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	users, err := parseAuthorityUsers(authorityUsers)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTHORITY_USERS: %w", err)
	}
	cfg.AuthorityUsers = users

	// Optional fields with defaults
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.RateLimitWrite = getEnvInt("RATE_LIMIT_WRITE", 60)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:8080")
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")

	return cfg, nil
}

// parseAuthorityUsers parses a comma-separated list of email:password pairs.
// The password may itself contain a colon; only the first one separates.
func parseAuthorityUsers(raw string) (map[string]string, error) {
	users := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		email, password, ok := strings.Cut(pair, ":")
		if !ok || email == "" || password == "" {
			return nil, fmt.Errorf("malformed pair %q, want email:password", pair)
		}
		users[email] = password
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no email:password pairs found")
	}
	return users, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

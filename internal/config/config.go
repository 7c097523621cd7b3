package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration. It is loaded once at
// startup and passed explicitly to the components that need it; nothing
// reads configuration from ambient global state after Load returns.
type Config struct {
	// Database
	DatabaseURL string

	// Token signing
	SecretKey string
	TokenTTL  time.Duration

	// Server
	ServerPort string

	// CORS
	AllowedOrigins []string

	// Rate limit (requests per second per client)
	RateLimitRPS   int
	RateLimitBurst int
}

// DefaultTokenTTL matches the original deployment: 1440 minutes (24h).
const DefaultTokenTTL = 1440 * time.Minute

// Load reads the Config from environment variables. Required variables
// missing is an error.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.SecretKey = os.Getenv("SECRET_KEY")
	if cfg.SecretKey == "" {
		missing = append(missing, "SECRET_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.TokenTTL = time.Duration(getEnvInt("TOKEN_TTL_MINUTES", int(DefaultTokenTTL/time.Minute))) * time.Minute
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.AllowedOrigins = splitOrigins(getEnvString("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"))
	cfg.RateLimitRPS = getEnvInt("RATE_LIMIT_RPS", 20)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 40)

	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
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

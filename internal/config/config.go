package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration, read from the environment
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Rate limiting for the API group
	RateLimit       int
	RateLimitWindow time.Duration

	// MaxUploadSize caps multipart tracking file uploads (bytes)
	MaxUploadSize int64
}

// Load reads the configuration from environment variables, falling back to
// defaults suitable for local development. An empty JWT_SECRET leaves the
// API unauthenticated.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/sessions.db"
	}

	return &Config{
		Port:            port,
		DBPath:          dbPath,
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RateLimit:       envInt("RATE_LIMIT", 300),
		RateLimitWindow: time.Minute,
		MaxUploadSize:   64 << 20,
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

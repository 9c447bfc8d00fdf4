// Package config provides environment-driven configuration for the enerlink server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL     Secret
	Port            string
	ListenHost      string
	CORSOrigins     []string
	LogLevel        string
	JWTSecret       Secret
	TokenTTLHours   int
	GeocoderURL     string
	GeocoderRPS     float64
	ActivityQueue   int
	LookupRowLimit  int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: Secret(envOrDefault("DATABASE_URL", "")),
		Port:        envOrDefault("PORT", "8080"),
		ListenHost:  envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		JWTSecret:   Secret(envOrDefault("JWT_SECRET", "")),
		GeocoderURL: envOrDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
	}

	ttl, err := strconv.Atoi(envOrDefault("TOKEN_TTL_HOURS", "12"))
	if err != nil || ttl < 1 || ttl > 168 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be an integer between 1 and 168")
	}
	cfg.TokenTTLHours = ttl

	rps, err := strconv.ParseFloat(envOrDefault("GEOCODER_RPS", "1"), 64)
	if err != nil || rps <= 0 || rps > 10 {
		return nil, fmt.Errorf("GEOCODER_RPS must be a number between 0 and 10")
	}
	cfg.GeocoderRPS = rps

	queue, err := strconv.Atoi(envOrDefault("ACTIVITY_QUEUE_SIZE", "1000"))
	if err != nil || queue < 1 {
		return nil, fmt.Errorf("ACTIVITY_QUEUE_SIZE must be a positive integer")
	}
	cfg.ActivityQueue = queue

	lookupLimit, err := strconv.Atoi(envOrDefault("LOOKUP_ROW_LIMIT", "500"))
	if err != nil || lookupLimit < 1 || lookupLimit > 5000 {
		return nil, fmt.Errorf("LOOKUP_ROW_LIMIT must be an integer between 1 and 5000")
	}
	cfg.LookupRowLimit = lookupLimit

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:5173")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars. It is built once
// in main and passed by reference to the components that need it.
type Config struct {
	Port string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret     string
	JWTExpiration time.Duration

	SendgridAPIKey string
	MailFrom       string
	MailFromName   string

	CloudinaryURL string

	// Requests per minute allowed on the profile endpoint, per client address.
	ProfileRateLimit int
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             GetEnvAsString("PORT", "8080"),
		DatabaseURL:      strings.TrimSpace(GetEnvAsString("DB_URL", "")),
		RedisAddr:        fmt.Sprintf("%s:%s", GetEnvAsString("REDIS_HOST", "localhost"), GetEnvAsString("REDIS_PORT", "6379")),
		RedisPassword:    GetEnvAsString("REDIS_PASSWORD", ""),
		RedisDB:          GetEnvAsInt("REDIS_DB", 0),
		JWTSecret:        strings.TrimSpace(GetEnvAsString("JWT_SECRET", "")),
		JWTExpiration:    GetEnvAsDuration("JWT_EXPIRATION", 5*time.Minute),
		SendgridAPIKey:   GetEnvAsString("SENDGRID_API_KEY", ""),
		MailFrom:         GetEnvAsString("MAIL_FROM", "noreply@contacts.app"),
		MailFromName:     GetEnvAsString("MAIL_FROM_NAME", "contacts-service"),
		CloudinaryURL:    GetEnvAsString("CLOUDINARY_URL", ""),
		ProfileRateLimit: GetEnvAsInt("PROFILE_RATE_LIMIT", 5),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DB_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c *Config) HTTPAddress() string {
	return ":" + c.Port
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Supabase
	SupabaseURL          string
	SupabaseServiceKey   string
	SupabaseJWTSecret    string
	SupabaseResumeBucket string

	// Auth
	EmailRedirectURL string

	// Database
	DatabaseURL string

	// Redis (optional, enables rate limiting)
	RedisURL string

	// Rate limits
	RateLimitApply  time.Duration
	RateLimitUpload time.Duration

	// Server
	Port           string
	Environment    string
	BaseURL        string
	AllowedOrigins string
	LogLevel       string
}

func Load() (*Config, error) {
	// A missing .env is fine, production sets real env vars.
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:          getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:   getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:    getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseResumeBucket: getEnv("SUPABASE_RESUME_BUCKET", "resumes"),

		EmailRedirectURL: getEnv("EMAIL_REDIRECT_URL", "http://localhost:3000/auth/signup-success"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.RateLimitApply, err = time.ParseDuration(getEnv("RATE_LIMIT_APPLY", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_APPLY: %w", err)
	}
	cfg.RateLimitUpload, err = time.ParseDuration(getEnv("RATE_LIMIT_UPLOAD", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_UPLOAD: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

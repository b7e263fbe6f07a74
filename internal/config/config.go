package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	AppEnv   string
	LogLevel string
	AppName  string

	// Supabase
	SupabaseURL       string
	SupabaseKey       string
	SupabaseJWTSecret string

	// Database
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration

	// Server
	Port        string
	CORSOrigins string
	SentryDSN   string
	SyncUsers   bool

	LogRetention time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	supabaseURL, err := getRequiredEnv("SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL")
	if err != nil {
		return nil, err
	}
	supabaseKey, err := getSupabaseKey()
	if err != nil {
		return nil, err
	}
	databaseURL, err := getRequiredEnv("DATABASE_URL")
	if err != nil {
		return nil, err
	}

	return &Config{
		AppEnv:   getEnv("APP_ENV", getEnv("NODE_ENV", "development")),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		AppName:  getEnv("APP_NAME", "dashboard-backend"),

		SupabaseURL:       strings.TrimRight(supabaseURL, "/"),
		SupabaseKey:       supabaseKey,
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),

		DatabaseURL:       databaseURL,
		DBMaxOpenConns:    parseInt(getEnv("DB_MAX_OPEN_CONNS", ""), 50),
		DBMaxIdleConns:    parseInt(getEnv("DB_MAX_IDLE_CONNS", ""), 25),
		DBConnMaxLifetime: parseDuration(getEnv("DB_CONN_MAX_LIFETIME", ""), 30*time.Minute),
		DBConnMaxIdleTime: parseDuration(getEnv("DB_CONN_MAX_IDLE_TIME", ""), 5*time.Minute),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		SyncUsers:   parseBool(getEnv("SYNC_USERS", ""), true),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", ""), 30*24*time.Hour),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// JWKSURL is the Supabase Auth endpoint publishing the asymmetric signing keys.
func (c *Config) JWKSURL() string {
	return c.SupabaseURL + "/auth/v1/.well-known/jwks.json"
}

// getSupabaseKey prefers the publishable key over the legacy anon key.
func getSupabaseKey() (string, error) {
	for _, key := range []string{
		"SUPABASE_PUBLISHABLE_KEY",
		"NEXT_PUBLIC_SUPABASE_PUBLISHABLE_KEY",
		"SUPABASE_ANON_KEY",
		"NEXT_PUBLIC_SUPABASE_ANON_KEY",
	} {
		if val := os.Getenv(key); val != "" {
			return val, nil
		}
	}
	return "", fmt.Errorf("missing required environment variable: SUPABASE_PUBLISHABLE_KEY or SUPABASE_ANON_KEY")
}

// getRequiredEnv returns the first non-empty value among keys.
func getRequiredEnv(keys ...string) (string, error) {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val, nil
		}
	}
	return "", fmt.Errorf("missing required environment variable: %s", keys[0])
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the service reads from the environment.
// A .env file is loaded when present; real env vars win.
type Config struct {
	Addr string

	// SQLite is used unless DBHost is set, in which case PostgreSQL is.
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel     string
	LogstashAddr string
}

// Load reads configuration from the environment. The JWT secret has no
// default: refusing to start without one beats shipping a baked-in key.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment as-is")
	}

	cfg := &Config{
		Addr:         getenv("ADDR", ":3000"),
		SQLitePath:   getenv("SQLITE_PATH", "./chirp.db"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogstashAddr: os.Getenv("LOGSTASH_ADDR"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	ttl := getenv("TOKEN_TTL", "24h")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
	}
	cfg.TokenTTL = d

	return cfg, nil
}

// UsePostgres reports whether a remote PostgreSQL host is configured.
func (c *Config) UsePostgres() bool {
	return c.DBHost != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

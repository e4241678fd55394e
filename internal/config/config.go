package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	CatalogPath string

	RateLimitProgress  time.Duration
	RateLimitHighlight time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASS"),
		DBName:      getEnv("DB_NAME", "fitforge"),
		DBPort:      getEnv("DB_PORT", "5432"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CatalogPath: os.Getenv("CATALOG_PATH"),
	}

	// Parsing durations
	var err error
	cfg.RateLimitProgress, err = time.ParseDuration(getEnv("RATE_LIMIT_PROGRESS", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PROGRESS: %w", err)
	}
	cfg.RateLimitHighlight, err = time.ParseDuration(getEnv("RATE_LIMIT_HIGHLIGHT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_HIGHLIGHT: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

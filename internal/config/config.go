package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBPath      string
	SeedPath    string
	DatabaseURL string
	RedisAddr   string
	CacheTTL    time.Duration
	Workers     int
	RateLimit   float64
}

// LoadDotEnv loads a .env file when present; the process environment still wins.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the service configuration from the environment.
func Load() (*Config, error) {
	ttl, err := time.ParseDuration(Get("CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("load config: CACHE_TTL: %w", err)
	}

	workers, err := strconv.Atoi(Get("BATCH_WORKERS", "8"))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("load config: BATCH_WORKERS must be a positive integer, got %q", os.Getenv("BATCH_WORKERS"))
	}

	rateLimit, err := strconv.ParseFloat(Get("RATE_LIMIT", "50"), 64)
	if err != nil || rateLimit <= 0 {
		return nil, fmt.Errorf("load config: RATE_LIMIT must be a positive number, got %q", os.Getenv("RATE_LIMIT"))
	}

	return &Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		SeedPath:    Get("SEED_PATH", "data/seeds/samples.json"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisAddr:   Get("REDIS_ADDR", ""),
		CacheTTL:    ttl,
		Workers:     workers,
		RateLimit:   rateLimit,
	}, nil
}

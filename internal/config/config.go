// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the matching service.
type Config struct {
	Port               string
	DatabaseURL        string
	RedisURL           string
	MatchIntervalHours int // How often the batch re-match cron fires
	CacheTTLHours      int // Lifetime of the per-user match cache entry
	BatchConcurrency   int // Parallel user passes during batch matching
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 6
	if s := os.Getenv("MATCH_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("MATCH_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	ttl := 6
	if s := os.Getenv("MATCH_CACHE_TTL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("MATCH_CACHE_TTL_HOURS must be a positive integer, got %q", s)
		}
		ttl = v
	}

	concurrency := 4
	if s := os.Getenv("MATCH_BATCH_CONCURRENCY"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("MATCH_BATCH_CONCURRENCY must be a positive integer, got %q", s)
		}
		concurrency = v
	}

	port := os.Getenv("MATCHING_PORT")
	if port == "" {
		port = "8083"
	}

	return &Config{
		Port:               port,
		DatabaseURL:        dbURL,
		RedisURL:           redisURL,
		MatchIntervalHours: interval,
		CacheTTLHours:      ttl,
		BatchConcurrency:   concurrency,
	}, nil
}

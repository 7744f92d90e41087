package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetPath         string
	DatasetFetchTimeout time.Duration
	HTTPAddr            string
	LogLevel            string
	LogFormat           string
	ShutdownTimeout     time.Duration

	// Terms gate and per-session state.
	RequireTerms     bool
	SessionTTL       time.Duration
	SessionCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("DATASET_FETCH_TIMEOUT", "5s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid DATASET_FETCH_TIMEOUT")
	}

	sessionTTL, err := time.ParseDuration(sharedcfg.EnvOrDefault("SESSION_TTL", "24h"))
	if err != nil || sessionTTL < 0 {
		return nil, errors.New("invalid SESSION_TTL")
	}

	sessionCacheSize, err := parseSessionCacheSize()
	if err != nil {
		return nil, err
	}

	requireTerms := true
	if v := os.Getenv("REQUIRE_TERMS"); v != "" {
		requireTerms, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid REQUIRE_TERMS")
		}
	}

	cfg := &Config{
		DatasetPath:         sharedcfg.EnvOrDefault("DATASET_PATH", "data/data.csv"),
		DatasetFetchTimeout: fetchTimeout,
		HTTPAddr:            sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:            sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:     shutdownTimeout,

		RequireTerms:     requireTerms,
		SessionTTL:       sessionTTL,
		SessionCacheSize: sessionCacheSize,
	}

	if cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_PATH is required")
	}

	return cfg, nil
}

func parseSessionCacheSize() (int, error) {
	s := os.Getenv("SESSION_CACHE_SIZE")
	if s == "" {
		return 10000, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid SESSION_CACHE_SIZE")
	}
	return n, nil
}

// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrMissingAPIKey is returned by a source asked to fetch without a credential.
var ErrMissingAPIKey = errors.New("api key not configured")

// SourceConfig is the connection setting of one upstream news source.
type SourceConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Config struct {
	// Primary source (Gemini, search grounded)
	Gemini            SourceConfig
	GeminiModel       string
	MaxGeminiRequests int // per day, 0 = unlimited

	// Secondary source (engagement search)
	Engagement SourceConfig

	// URL repair
	URLCheckTimeout   time.Duration
	RepairConcurrency int
	OutletsConfigPath string

	// Outlet feeds
	FeedTimeout     time.Duration
	FeedConcurrency int

	// HTTP surface
	HTTPAddr     string
	APIRateLimit float64 // requests per second on /api/news

	// App settings
	Debug     bool
	LogFormat string // text | json
}

func Load() (*Config, error) {
	cfg := &Config{
		Gemini: SourceConfig{
			Timeout: 10 * time.Second,
		},
		GeminiModel:       "gemini-2.0-flash",
		MaxGeminiRequests: 200,
		Engagement: SourceConfig{
			BaseURL: "https://api.buzzsumo.com",
			Timeout: 10 * time.Second,
		},
		URLCheckTimeout:   5 * time.Second,
		RepairConcurrency: 8,
		OutletsConfigPath: "configs/outlets.yaml",
		FeedTimeout:       5 * time.Second,
		FeedConcurrency:   6,
		HTTPAddr:          ":8080",
		APIRateLimit:      1,
		LogFormat:         "text",
	}

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Gemini.BaseURL = os.Getenv("GEMINI_BASE_URL")
	cfg.Gemini.Timeout = getEnvDurationOrDefault("GEMINI_TIMEOUT", cfg.Gemini.Timeout)
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	if v := os.Getenv("MAX_GEMINI_REQUESTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.MaxGeminiRequests = val
		}
	}

	cfg.Engagement.APIKey = os.Getenv("ENGAGEMENT_API_KEY")
	cfg.Engagement.BaseURL = getEnvOrDefault("ENGAGEMENT_BASE_URL", cfg.Engagement.BaseURL)
	cfg.Engagement.Timeout = getEnvDurationOrDefault("ENGAGEMENT_TIMEOUT", cfg.Engagement.Timeout)

	cfg.URLCheckTimeout = getEnvDurationOrDefault("URL_CHECK_TIMEOUT", cfg.URLCheckTimeout)
	cfg.RepairConcurrency = getEnvIntOrDefault("REPAIR_CONCURRENCY", cfg.RepairConcurrency)
	cfg.OutletsConfigPath = getEnvOrDefault("OUTLETS_CONFIG_PATH", cfg.OutletsConfigPath)
	cfg.FeedTimeout = getEnvDurationOrDefault("FEED_TIMEOUT", cfg.FeedTimeout)
	cfg.FeedConcurrency = getEnvIntOrDefault("FEED_CONCURRENCY", cfg.FeedConcurrency)

	cfg.HTTPAddr = getEnvOrDefault("HTTP_ADDR", cfg.HTTPAddr)
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 {
			cfg.APIRateLimit = val
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("8s") or plain milliseconds ("8000").
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

// Validate checks settings that would make the service unusable. Missing API
// keys are not an error here: each source reports ErrMissingAPIKey on fetch.
func (c *Config) Validate() error {
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be positive")
	}
	if c.Engagement.Timeout <= 0 {
		return fmt.Errorf("ENGAGEMENT_TIMEOUT must be positive")
	}
	if c.Engagement.BaseURL == "" {
		return fmt.Errorf("ENGAGEMENT_BASE_URL is required")
	}
	if c.URLCheckTimeout <= 0 {
		return fmt.Errorf("URL_CHECK_TIMEOUT must be positive")
	}
	if c.RepairConcurrency < 1 {
		return fmt.Errorf("REPAIR_CONCURRENCY must be at least 1")
	}
	if c.FeedTimeout <= 0 {
		return fmt.Errorf("FEED_TIMEOUT must be positive")
	}
	if c.FeedConcurrency < 1 {
		return fmt.Errorf("FEED_CONCURRENCY must be at least 1")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be 'text' or 'json'")
	}
	return nil
}

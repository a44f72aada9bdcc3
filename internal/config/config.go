package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL          string
	JWTSecret            string
	Port                 string
	TokenTTL             time.Duration
	RateLimitChat        RateLimitConfig
	ChatPageSize         int
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string
	PaymentsWorkerURL    string
	BillingWebhookSecret string
	DefaultRegion        string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret"),
		Port:                 getEnv("PORT", "8080"),
		TokenTTL:             parseDuration(getEnv("JWT_TTL", "24h")),
		ChatPageSize:         parsePageSize(getEnv("CHAT_PAGE_SIZE", "5")),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		PaymentsWorkerURL:    getEnv("PAYMENTS_WORKER_URL", "http://payments:9000"),
		BillingWebhookSecret: getEnv("BILLING_WEBHOOK_SECRET", ""),
		DefaultRegion:        getEnv("DEFAULT_PHONE_REGION", "AE"),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_CHAT", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CHAT value: %w", err)
	}
	cfg.RateLimitChat = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

// parsePageSize clamps the structured search page size to the 1..10 range.
func parsePageSize(input string) int {
	size, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || size <= 0 {
		return 5
	}
	if size > 10 {
		return 10
	}
	return size
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

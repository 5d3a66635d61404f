package config

import "time"

// RateLimitConfig controls the fixed-window limiter applied to the
// credential endpoints (login and registration). A window admits at most
// Limit requests per client IP; further requests receive 429 until the
// window rolls over.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig. Defaults allow 10 attempts per minute.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled: getenv("RATELIMIT_ENABLED", "true") == "true",
		Limit:   atoi(getenv("RATELIMIT_LIMIT", "10")),
		Window:  parseDur(getenv("RATELIMIT_WINDOW", "1m")),
		Prefix:  getenv("RATELIMIT_PREFIX", "ratelimit"),
	}
}

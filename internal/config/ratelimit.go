package config

import "time"

// RateLimitConfig controls the in-memory sliding window limiter. Window is
// the length of the sliding window and Max the number of requests allowed
// per client key inside it. IdleEvict bounds memory: client buckets idle
// longer than this are dropped by the limiter's janitor.
type RateLimitConfig struct {
	Enabled   bool
	Window    time.Duration
	Max       int
	IdleEvict time.Duration
	Debug     bool
}

func LoadRateLimitConfig() RateLimitConfig {
	def := RateLimitConfig{
		Enabled:   envBool("RATE_LIMIT_ENABLED", true),
		Window:    envDur("RATE_LIMIT_WINDOW", 60*time.Second),
		Max:       envInt("RATE_LIMIT_MAX", 100),
		IdleEvict: envDur("RATE_LIMIT_IDLE_EVICT", 10*time.Minute),
		Debug:     envBool("RATE_LIMIT_DEBUG", false),
	}
	if def.Window <= 0 {
		def.Window = 60 * time.Second
	}
	if def.Max < 1 {
		def.Max = 1
	}
	if minEvict := 2 * def.Window; def.IdleEvict < minEvict {
		def.IdleEvict = minEvict
	}
	return def
}

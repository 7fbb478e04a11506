package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	// RequestsPerMinute is the maximum number of requests per key per minute.
	RequestsPerMinute int
	// KeyFunc extracts the limiting key. Defaults to the client IP.
	KeyFunc func(*gin.Context) string
	// OnLimit answers a rejected request. Defaults to a plain 429.
	OnLimit gin.HandlerFunc
}

// RateLimit applies a per-key sliding one-minute window. It is meant for
// route groups, such as credential submissions, rather than the whole server.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 30
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.OnLimit == nil {
		cfg.OnLimit = func(c *gin.Context) {
			c.String(http.StatusTooManyRequests, "Too many requests")
		}
	}

	rl := &rateLimiter{requests: make(map[string][]time.Time), limit: cfg.RequestsPerMinute, now: time.Now}
	return func(c *gin.Context) {
		if !rl.allow(cfg.KeyFunc(c)) {
			cfg.OnLimit(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type rateLimiter struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	now       func() time.Time
	lastSweep time.Time
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-time.Minute)
	if now.Sub(rl.lastSweep) > 5*time.Minute {
		rl.sweep(cutoff)
		rl.lastSweep = now
	}

	valid := filterByTime(rl.requests[key], cutoff)
	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}
	rl.requests[key] = append(valid, now)
	return true
}

func (rl *rateLimiter) sweep(cutoff time.Time) {
	for key, times := range rl.requests {
		if valid := filterByTime(times, cutoff); len(valid) == 0 {
			delete(rl.requests, key)
		} else {
			rl.requests[key] = valid
		}
	}
}

func filterByTime(times []time.Time, cutoff time.Time) []time.Time {
	var result []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}

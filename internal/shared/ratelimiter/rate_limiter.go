// Package ratelimiter limits how often one client may call an endpoint.
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"admin_backend/internal/platform/http/response"
	"admin_backend/internal/shared/messages"
)

// RateLimiterInterface decides whether the caller identified by key may proceed.
type RateLimiterInterface interface {
	Allow(key string) bool
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key. Buckets idle for longer than
// the refill window are dropped on the next sweep.
type RateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*entry
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiter allows limit calls per interval and key, refilled evenly.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &RateLimiter{
		entries:   map[string]*entry{},
		every:     rate.Every(interval / time.Duration(limit)),
		burst:     limit,
		idle:      interval,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idle {
		rl.sweep(now)
	}

	e, ok := rl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) sweep(now time.Time) {
	for k, e := range rl.entries {
		if now.Sub(e.lastSeen) >= rl.idle {
			delete(rl.entries, k)
		}
	}
	rl.lastSweep = now
}

// Len returns the number of tracked keys.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}

// Middleware rejects requests with 429 once the client IP exhausted its budget.
func Middleware(rl RateLimiterInterface, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			response.Message(c, http.StatusTooManyRequests, messages.TooManyTries)
			return
		}
		c.Next()
	}
}

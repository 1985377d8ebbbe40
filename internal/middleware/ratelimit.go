package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"invox/internal/config"
)

// staleAfter is how long an idle client entry survives before eviction.
const staleAfter = time.Hour

// RateLimiter tracks a token bucket per client identity with a bounded
// number of tracked clients. Stale entries are evicted when the map is
// full, so the tracked-identity set can never grow without limit.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientBucket
	limit      rate.Limit
	burst      int
	maxClients int
	now        func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter from config.
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	perHour := cfg.RequestsPerHour
	if perHour <= 0 {
		perHour = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	maxClients := cfg.MaxClients
	if maxClients <= 0 {
		maxClients = 1024
	}
	return &RateLimiter{
		clients:    make(map[string]*clientBucket),
		limit:      rate.Limit(float64(perHour) / 3600.0),
		burst:      burst,
		maxClients: maxClients,
		now:        time.Now,
	}
}

// Allow reports whether the client may proceed, consuming one token.
func (rl *RateLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[clientID]
	if !ok {
		if len(rl.clients) >= rl.maxClients {
			rl.evictLocked()
		}
		b = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[clientID] = b
	}
	b.lastSeen = rl.now()
	return b.limiter.Allow()
}

// evictLocked drops entries idle longer than staleAfter; if none qualify
// it drops the single least-recently-seen entry so insertion can proceed.
func (rl *RateLimiter) evictLocked() {
	cutoff := rl.now().Add(-staleAfter)
	var oldestKey string
	var oldestSeen time.Time
	evicted := false
	for key, b := range rl.clients {
		if b.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
			evicted = true
			continue
		}
		if oldestKey == "" || b.lastSeen.Before(oldestSeen) {
			oldestKey = key
			oldestSeen = b.lastSeen
		}
	}
	if !evicted && oldestKey != "" {
		delete(rl.clients, oldestKey)
	}
}

// TrackedClients returns the number of client entries currently held.
func (rl *RateLimiter) TrackedClients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Middleware returns a gin handler enforcing the limit per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "extraction request limit reached; try again later",
				},
			})
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles write traffic per session user. Anonymous requests
// pass through untouched; the login guard in front of every write route is
// what keeps them out.
type RateLimiter struct {
	mu    sync.Mutex
	users map[string]*userLimiter
	rate  rate.Limit
	burst int
}

// NewRateLimiter allows rps sustained writes per user with a burst of 2x.
func NewRateLimiter(rps int) *RateLimiter {
	return &RateLimiter{
		users: make(map[string]*userLimiter),
		rate:  rate.Limit(rps),
		burst: rps * 2,
	}
}

func (rl *RateLimiter) allow(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.users[userID]
	if !ok {
		entry = &userLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.users[userID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// Cleanup starts a background sweep evicting limiters idle past their TTL.
func (rl *RateLimiter) Cleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-limiterIdleTTL)
			rl.mu.Lock()
			for id, entry := range rl.users {
				if entry.lastSeen.Before(cutoff) {
					delete(rl.users, id)
				}
			}
			rl.mu.Unlock()
		}
	}()
}

// RateLimitMiddleware rejects over-limit writes with 429.
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Next()
			return
		}

		if !rl.allow(user.ID) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}

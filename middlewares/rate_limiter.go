package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/littlelemon/utils"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit      rate.Limit
	burst      int
	idleTTL    time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	ips        map[string]*visitor
	mu         sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limit:      limit,
		burst:      burst,
		idleTTL:    10 * time.Minute,
		sweepEvery: time.Minute,
		lastSweep:  time.Now(),
		ips:        make(map[string]*visitor),
	}
}

// NewStrictRateLimiter is meant for login and registration.
func NewStrictRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 5
	}
	return NewRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

func (rl *RateLimiter) allow(ip string) bool {
	return rl.allowAt(ip, time.Now())
}

func (rl *RateLimiter) allowAt(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.sweepEvery {
		rl.sweep(now)
	}

	v, ok := rl.ips[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

// sweep drops visitors idle longer than idleTTL. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, v := range rl.ips {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.ips, key)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			utils.RespondReason(c, http.StatusTooManyRequests, "rate_limited", "too many requests, please wait a moment")
			c.Abort()
			return
		}
		c.Next()
	}
}

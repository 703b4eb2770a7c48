package middlewares

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/jobportal-app/utils"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key (client IP by default).
// Buckets idle for longer than the refill window are forgotten.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	idle     time.Duration
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewRateLimiter allows requests per interval for each key.
func NewRateLimiter(requests int, interval time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	idle := interval * 2
	if idle < time.Minute {
		idle = time.Minute
	}
	return &RateLimiter{
		limit:    rate.Every(interval / time.Duration(requests)),
		burst:    requests,
		idle:     idle,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// NewStrictRateLimiter is 5 requests per minute, used for login and
// submitting applications.
func NewStrictRateLimiter() *RateLimiter {
	return NewRateLimiter(5, time.Minute)
}

// Allow consumes one token for key.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.visitors, k)
		}
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			utils.InfoLogger.WithFields(logrus.Fields{
				"client_ip": ip,
				"path":      c.FullPath(),
			}).Warn("rate limit exceeded")
			utils.AbortWithError(c, utils.TooManyRequests("too many requests, please try again later"))
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/scribehq/scribe/config"
	"github.com/scribehq/scribe/utils"
)

const limiterTTL = 5 * time.Minute

type ipLimiter struct {
	limiter *rate.Limiter
	expires time.Time
	mu      sync.Mutex
}

var (
	limiters   = map[string]*ipLimiter{}
	limitersMu sync.Mutex
)

// RateLimitMiddleware applies a per-IP token bucket to the routes it is
// attached to (registration, login, setup).
func RateLimitMiddleware() gin.HandlerFunc {
	cfg := config.Get()
	perMinute := cfg.RateLimitPerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	limit := rate.Every(time.Minute / time.Duration(perMinute))
	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}

	return func(ctx *gin.Context) {
		lim := getLimiter(ctx.ClientIP(), limit, burst)

		lim.mu.Lock()
		allowed := lim.limiter.Allow()
		lim.mu.Unlock()

		if !allowed {
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

func getLimiter(key string, limit rate.Limit, burst int) *ipLimiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	sweepExpiredLocked()

	if lim, ok := limiters[key]; ok {
		lim.expires = time.Now().Add(limiterTTL)
		return lim
	}

	lim := &ipLimiter{
		limiter: rate.NewLimiter(limit, burst),
		expires: time.Now().Add(limiterTTL),
	}
	limiters[key] = lim
	return lim
}

func sweepExpiredLocked() {
	now := time.Now()
	for key, lim := range limiters {
		if now.After(lim.expires) {
			delete(limiters, key)
		}
	}
}

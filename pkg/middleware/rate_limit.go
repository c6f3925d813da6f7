package middleware

import (
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
	// TTL is how long an idle client keeps its limiter
	TTL time.Duration
}

// RateLimiter hands out one token bucket per client IP. Buckets of clients
// that stay quiet for TTL are dropped by the cache.
type RateLimiter struct {
	cfg      RateLimiterConfig
	visitors *ttlcache.Cache
}

func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond * 2
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 3 * time.Minute
	}

	visitors := ttlcache.NewCache()
	visitors.SetTTL(cfg.TTL)
	visitors.SkipTTLExtensionOnHit(false)
	visitors.SetLoaderFunction(func(string) (any, time.Duration, error) {
		return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst), cfg.TTL, nil
	})

	return &RateLimiter{cfg: cfg, visitors: visitors}
}

// Middleware returns a pass-through handler when the limit is 0
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	if r.cfg.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		v, err := r.visitors.Get(c.ClientIP())
		if err != nil {
			// Fail open
			zap.L().Warn("Rate limiter lookup failed", zap.Error(err))
			c.Next()
			return
		}

		if !v.(*rate.Limiter).Allow() {
			apperr.Respond(c, apperr.ErrRateLimited)
			return
		}

		c.Next()
	}
}

func (r *RateLimiter) Close() error {
	return r.visitors.Close()
}

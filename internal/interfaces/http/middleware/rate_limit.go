package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"site-weaver.backend/internal/interfaces/http/response"
	"site-weaver.backend/pkg/logger"
	"site-weaver.backend/pkg/redis"
)

var (
	redisIncr = redis.Incr
	redisTTL  = redis.TTL
	redisExp  = redis.Expire
)

// RateLimitMiddleware applies a fixed-window counter per API key (falling
// back to client IP before authentication). Redis outages fail open; losing
// rate limiting briefly beats refusing all traffic.
func RateLimitMiddleware(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKey(c)
		ctx := c.Request.Context()

		count, err := redisIncr(ctx, key)
		if err != nil {
			logger.Warn(ctx, "rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := redisExp(ctx, key, window); err != nil {
				logger.Warn(ctx, "failed to set rate limit window expiry", zap.Error(err))
			}
		}

		if count > int64(limit) {
			retryAfter, err := redisTTL(ctx, key)
			if err != nil || retryAfter <= 0 {
				retryAfter = window
			}
			response.RateLimited(c, retryAfter)
			return
		}

		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if auth, ok := GetAuthResult(c); ok {
		return fmt.Sprintf("ratelimit:key:%s", auth.KeyID)
	}
	return fmt.Sprintf("ratelimit:ip:%s", c.ClientIP())
}

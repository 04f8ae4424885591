package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/interfaces/http/response"
	"site-weaver.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// lockDuration is how long the in-progress marker is held
	lockDuration = 30 * time.Second
	// retentionDuration is how long a completed response is replayable
	retentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type bufferedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bufferedWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a write request is
// retried with the same Idempotency-Key. Keys are scoped to the
// authenticated API key so tenants cannot collide. Requests without the
// header pass through untouched.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		scope := "anon"
		if auth, ok := GetAuthResult(c); ok {
			scope = auth.KeyID.String()
		}
		storageKey := fmt.Sprintf("idempotency:%s:%s", scope, key)
		ctx := c.Request.Context()

		if val, err := redisGet(ctx, storageKey); err == nil {
			if val == processingMarker {
				response.AbortWithError(c, domainerrors.Conflict("request with this idempotency key is already in progress"))
				return
			}
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Replay", "true")
			c.Header("Cache-Control", "no-store")
			c.String(http.StatusOK, val)
			c.Abort()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, lockDuration)
		if err != nil {
			// Redis outage fails open, same as the rate limiter.
			c.Next()
			return
		}
		if !acquired {
			response.AbortWithError(c, domainerrors.Conflict("request with this idempotency key is already in progress"))
			return
		}

		w := &bufferedWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			_ = redisSet(ctx, storageKey, w.body.String(), retentionDuration)
		} else {
			// Failed attempts release the key so the caller can retry.
			_ = redisDel(ctx, storageKey)
		}
	}
}

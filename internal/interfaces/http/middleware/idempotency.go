package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"tujenge.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// lock held while the first request is still being processed
	LockDuration = 30 * time.Second
	// how long a completed response stays replayable
	RetentionDuration = 24 * time.Hour
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a request
// carries an Idempotency-Key it has seen before. Keys are scoped per
// staff user so two tellers can reuse the same key safely.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == "processing" {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"code":    "IDEMPOTENCY_CONFLICT",
					"message": "Request already in progress",
				})
				return
			}

			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(http.StatusOK, val)
			c.Abort()
			return
		} else if !redis.IsNil(err) {
			// redis down, let the request through rather than block writes
			c.Next()
			return
		}

		locked, err := redisSetNX(ctx, storageKey, "processing", LockDuration)
		if err != nil || !locked {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "IDEMPOTENCY_CONFLICT",
				"message": "Request already in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redisSet(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			// failed attempts may be retried with the same key
			_ = redisDel(ctx, storageKey)
		}
	}
}

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gettupp-server/internal/apierrors"
	"gettupp-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// Counter is the store backing the rate limiter. Backed by Redis in
// production so the window survives multi-instance deploys.
type Counter interface {
	IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error)
}

// RateLimit applies a fixed-window limit per client IP and path. When the
// counter store is unavailable the request is let through: the public form
// should not go down with Redis.
func RateLimit(counter Counter, limit int, window time.Duration, logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.Request.URL.Path)

		count, err := counter.IncrWithExpiry(ctx, key, window)
		if err != nil {
			logger.InfoWithError(ctx, "rate limit counter unavailable, allowing request", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
				"code":  apierrors.CodeRateLimited,
			})
			return
		}
		c.Next()
	}
}

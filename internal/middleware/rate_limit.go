package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aegis-safety/backend/internal/constants"
	"github.com/aegis-safety/backend/pkg/logger"
	"github.com/aegis-safety/backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit throttles requests per client IP and route using a redis
// counter with a rolling TTL window. When redis is unavailable the
// limiter fails open: credential checks still apply, so availability
// wins over throttling.
func RateLimit(client *redis.Client, maxRequest int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s%s:%s", constants.KeyPrefixRateLimit, c.FullPath(), c.ClientIP())

		count, err := client.IncrWithTTL(c.Request.Context(), key, window)
		if err != nil {
			logger.GetLogger().Warn("Rate limiter unavailable, failing open",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(maxRequest) - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequest))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > int64(maxRequest) {
			retryAfter := window
			if ttl, err := client.TTL(c.Request.Context(), key); err == nil && ttl > 0 {
				retryAfter = ttl
			}

			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
				zap.Int64("current_requests", count),
				zap.Int("max_requests", maxRequest),
				zap.Duration("retry_after", retryAfter),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			c.JSON(http.StatusTooManyRequests, constants.BuildErrorResponse("Too many requests", gin.H{
				"retry_after": retryAfter.Seconds(),
			}))
			c.Abort()
			return
		}

		c.Next()
	}
}

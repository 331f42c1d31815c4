package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/pkg/response"
	"github.com/redis/go-redis/v9"
)

// RateLimit caps requests per client IP on a fixed window using Redis INCR.
// Used on the public contact-form and rating-submission endpoints.
func RateLimit(rdb *redis.Client, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("studio:rl:%s:%s", name, c.ClientIP())
		ctx := c.Request.Context()

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not take the public site with it.
			c.Next()
			return
		}
		if n == 1 {
			rdb.Expire(ctx, key, window)
		}
		if n > int64(limit) {
			response.TooManyRequests(c, "too many requests, slow down")
			return
		}
		c.Next()
	}
}

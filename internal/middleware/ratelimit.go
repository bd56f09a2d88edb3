package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkstream/core/internal/pkg/response"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitMax    = 50
	rateLimitWindow = time.Second
)

// RateLimit returns a middleware that enforces a per-IP rate limit on
// anonymous traffic. Authenticated callers are exempt. Redis failures fail
// open: a broken cache must not take the read path down with it.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		windowKey := time.Now().Unix()
		key := fmt.Sprintf("inkstream:rate_limit:%s:%d", ip, windowKey)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > rateLimitMax {
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"context"
	"time"

	"petcare/api/response"
	"petcare/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WindowLimiter 固定窗口计数，cache.Limiter 的 Redis 实现满足它
type WindowLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// LoginLimit 登录/注册按 IP 每分钟限次。limiter 为 nil 或 perMinute <= 0 时不限；
// Redis 故障时放行。
func LoginLimit(limiter WindowLimiter, perMinute int) gin.HandlerFunc {
	if limiter == nil || perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP(), perMinute, time.Minute)
		if err != nil {
			logger.Warn("Login limiter unavailable", zap.String("request_id", response.GetRequestID(c)), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

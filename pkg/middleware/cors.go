package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/configs"
)

// CORSMiddleware 目录是公开只读为主的接口，默认允许任意来源；
// 写请求依赖代理注入的身份头，这些头需要显式放行.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "HEAD", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"X-Role", "X-Auth-Request-Email", "X-Forwarded-Email", RequestIDHeader,
		},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        corsMaxAge(cfg),
	})
}

func corsMaxAge(cfg configs.ServerConfig) time.Duration {
	if cfg.Debug {
		return 0
	}

	return 12 * time.Hour
}

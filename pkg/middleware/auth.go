package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/configs"
	ctxPkg "github.com/yeisme/genovault/pkg/context"
	"github.com/yeisme/genovault/pkg/internal/types"
)

// AuthMiddleware 基于 oauth2-proxy 注入的请求头校验写请求的身份.
//   - 读请求（GET、HEAD、OPTIONS）总是放行
//   - 要求存在 X-Auth-Request-Email 或 X-Forwarded-Email
//   - 支持通过配置跳过某些路径（如 /metrics、/api/v1/health）
//   - 开发模式可允许 query user 兜底（由 auth.dev_allow_query 控制）
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := Principal(c); p != "" {
			c.Request = c.Request.WithContext(ctxPkg.WithPrincipal(c.Request.Context(), p))
		}

		if !conf.Enabled || isReadOnly(c.Request.Method) || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		if Principal(c) == "" {
			if conf.DevAllowQuery && c.Query("user") != "" {
				c.Next()
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
				Error:     "authentication required for write operations",
				Exception: "UnauthorizedError",
			})

			return
		}

		c.Next()
	}
}

// Principal 返回代理注入的用户邮箱.
func Principal(c *gin.Context) string {
	email := strings.TrimSpace(c.GetHeader("X-Auth-Request-Email"))
	if email == "" {
		email = strings.TrimSpace(c.GetHeader("X-Forwarded-Email"))
	}

	return email
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}

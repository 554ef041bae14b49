package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/types"
)

// Role 请求方角色，数值越大权限越高.
type Role int

const (
	RoleReader Role = iota + 1
	RoleCurator
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleCurator:
		return "curator"
	default:
		return "reader"
	}
}

type roleKey struct{}

// ParseRole 未知值降级为 reader.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "curator":
		return RoleCurator
	default:
		return RoleReader
	}
}

// RoleMiddleware 解析角色头（默认 X-Role）并写入 gin.Context 与 request.Context.
// 未启用认证时所有请求按 admin 处理.
func RoleMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := RoleAdmin
		if conf.Enabled {
			r = ParseRole(c.GetHeader(conf.Header()))
		}

		c.Set("role", r)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), roleKey{}, r))
		c.Next()
	}
}

// GetRole 当前请求角色，缺省为 reader.
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get("role"); ok {
		if r, ok := v.(Role); ok {
			return r
		}
	}

	if r, ok := c.Request.Context().Value(roleKey{}).(Role); ok {
		return r
	}

	return RoleReader
}

// RequireWriteRole 写请求要求至少为 minRole，读请求不受限制.
func RequireWriteRole(minRole Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isReadOnly(c.Request.Method) || GetRole(c) >= minRole {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, types.ErrorResponse{
			Error:     "role " + GetRole(c).String() + " may not modify the catalog",
			Exception: "ForbiddenError",
		})
	}
}

// Package api 组装目录的 HTTP 接口：/api/v1 路由组、认证与角色中间件以及各实体路由.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/router"
	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/middleware"
)

// BasePath 接口前缀.
const BasePath = "/api/v1"

// RegisterGroup 在 e 上注册 /api/v1. 读请求公开，写请求在启用认证时需要身份且角色至少为 curator.
func RegisterGroup(e *gin.Engine, cat *service.Catalog, auth configs.AuthConfig) *gin.RouterGroup {
	v1 := e.Group(BasePath,
		middleware.CatalogMiddleware(cat),
		middleware.AuthMiddleware(auth),
		middleware.RoleMiddleware(auth),
	)

	router.RegisterOpsRoutes(v1)

	catalog := v1.Group("", middleware.RequireWriteRole(middleware.RoleCurator))
	router.RegisterStudyRoutes(catalog)
	router.RegisterAnalysisRoutes(catalog)
	router.RegisterSampleRoutes(catalog)
	router.RegisterReferenceRoutes(catalog)
	router.RegisterFileRoutes(catalog)

	return v1
}

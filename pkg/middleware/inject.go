// Package middleware 提供 gin 中间件：依赖注入、认证与角色、日志追踪、限流熔断.
package middleware

import (
	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/genovault/pkg/context"
	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/storage"
	"github.com/yeisme/genovault/pkg/scheduler"
)

const schedulerKey = "scheduler"

// StorageMiddleware 把存储管理器放进请求 context，健康检查从这里取客户端.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(ctxPkg.WithStorageManager(c.Request.Context(), manager))
		c.Next()
	}
}

// CatalogMiddleware 注入目录服务，处理器通过 service.FromContext 取用.
func CatalogMiddleware(cat *service.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(service.WithCatalog(c.Request.Context(), cat))
		c.Next()
	}
}

// SchedulerMiddleware 让运维接口能取到后台调度器.
func SchedulerMiddleware(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(schedulerKey, sched)
		c.Next()
	}
}

// GetScheduler 未注入时返回 nil.
func GetScheduler(c *gin.Context) *scheduler.Scheduler {
	if v, ok := c.Get(schedulerKey); ok {
		if s, ok := v.(*scheduler.Scheduler); ok {
			return s
		}
	}

	return nil
}

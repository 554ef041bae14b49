package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/handle"
	"github.com/yeisme/genovault/pkg/middleware"
)

// RegisterOpsRoutes 运维接口：依赖健康检查与后台任务. 手动触发任务要求 admin.
func RegisterOpsRoutes(g *gin.RouterGroup) {
	health := g.Group("/health")
	{
		health.GET("", handle.Health)
		health.GET("/db", handle.HealthDB)
		health.GET("/mq", handle.HealthMQ)
		health.GET("/s3", handle.HealthS3)
	}

	jobs := g.Group("/scheduler/jobs")
	{
		jobs.GET("", handle.SchedulerJobs)
		jobs.POST("/:name/run", middleware.RequireWriteRole(middleware.RoleAdmin), handle.SchedulerRunJob)
	}
}

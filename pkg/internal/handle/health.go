package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/genovault/pkg/context"
)

const healthTimeout = 2 * time.Second

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ComponentHealth 单个依赖的检查结果.
type ComponentHealth struct {
	Component string `json:"component"`
	Status    string `json:"status"` // ok | unhealthy | disabled
	Error     string `json:"error,omitempty"`
}

func check(ctx context.Context, component string, hc healthChecker, present bool) ComponentHealth {
	if !present {
		return ComponentHealth{Component: component, Status: "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := hc.HealthCheck(ctx); err != nil {
		return ComponentHealth{Component: component, Status: "unhealthy", Error: err.Error()}
	}

	return ComponentHealth{Component: component, Status: "ok"}
}

func dbHealth(ctx context.Context) ComponentHealth {
	db := ctxPkg.DB(ctx)
	h := check(ctx, "db", db, db != nil && db.DB != nil)

	// 目录离不开数据库，缺失即不健康
	if h.Status == "disabled" {
		h.Status, h.Error = "unhealthy", "db client not initialized"
	}

	return h
}

func mqHealth(ctx context.Context) ComponentHealth {
	mq := ctxPkg.MQ(ctx)

	return check(ctx, "mq", mq, mq != nil)
}

func s3Health(ctx context.Context) ComponentHealth {
	s3 := ctxPkg.S3(ctx)

	return check(ctx, "s3", s3, s3 != nil && s3.Client != nil)
}

func writeHealth(c *gin.Context, h ComponentHealth) {
	status := http.StatusOK
	if h.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, h)
}

// Health 汇总所有依赖. 只有数据库是必需的，未启用的事件总线与对象存储记为 disabled.
//
//	@Summary	服务健康汇总
//	@Tags		健康检查
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Failure	503	{object}	map[string]any
//	@Router		/api/v1/health [get]
func Health(c *gin.Context) {
	ctx := c.Request.Context()
	parts := []ComponentHealth{dbHealth(ctx), mqHealth(ctx), s3Health(ctx)}

	status, code := "ok", http.StatusOK
	for _, p := range parts {
		if p.Status == "unhealthy" {
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{"status": status, "components": parts})
}

// HealthDB 数据库健康检查.
//
//	@Summary	数据库健康检查
//	@Tags		健康检查
//	@Produce	json
//	@Success	200	{object}	ComponentHealth
//	@Failure	503	{object}	ComponentHealth
//	@Router		/api/v1/health/db [get]
func HealthDB(c *gin.Context) {
	writeHealth(c, dbHealth(c.Request.Context()))
}

// HealthMQ 事件总线健康检查，未启用事件时返回 503 与 disabled.
//
//	@Summary	消息队列健康检查
//	@Tags		健康检查
//	@Produce	json
//	@Success	200	{object}	ComponentHealth
//	@Failure	503	{object}	ComponentHealth
//	@Router		/api/v1/health/mq [get]
func HealthMQ(c *gin.Context) {
	writeHealth(c, mqHealth(c.Request.Context()))
}

// HealthS3 导入源对象存储健康检查.
//
//	@Summary	对象存储健康检查
//	@Tags		健康检查
//	@Produce	json
//	@Success	200	{object}	ComponentHealth
//	@Failure	503	{object}	ComponentHealth
//	@Router		/api/v1/health/s3 [get]
func HealthS3(c *gin.Context) {
	writeHealth(c, s3Health(c.Request.Context()))
}

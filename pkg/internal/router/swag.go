package router

import (
	"net"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yeisme/genovault/docs"
	"github.com/yeisme/genovault/pkg/configs"
)

// RegisterSwaggerRoute 调试模式下在 /swagger 提供接口文档.
func RegisterSwaggerRoute(r *gin.Engine, cfg configs.ServerConfig) {
	if !cfg.Debug {
		return
	}

	host := cfg.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}

	docs.SwaggerInfo.Host = net.JoinHostPort(host, strconv.Itoa(cfg.Port))
	docs.SwaggerInfo.Version = configs.AppVersion

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DocExpansion("none"),
		ginSwagger.DefaultModelsExpandDepth(1),
	))
}

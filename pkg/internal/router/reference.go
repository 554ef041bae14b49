package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/handle"
)

// RegisterReferenceRoutes 注册参考序列与分类路由.
func RegisterReferenceRoutes(g *gin.RouterGroup) {
	refs := g.Group("/reference-sequences")
	{
		refs.POST("", handle.CreateReferenceSequence)
		refs.GET("", handle.ListReferenceSequences)
		refs.GET("/search", handle.SearchReferenceSequences)
		refs.GET("/:id", handle.GetReferenceSequence)
		refs.PATCH("/:id", handle.UpdateReferenceSequence)
	}

	taxonomies := g.Group("/taxonomies")
	{
		taxonomies.POST("", handle.CreateTaxonomy)
		taxonomies.GET("", handle.ListTaxonomies)
		taxonomies.GET("/:id", handle.GetTaxonomy)
	}
}

// RegisterFileRoutes 注册文件与网络资源路由.
func RegisterFileRoutes(g *gin.RouterGroup) {
	files := g.Group("/files")
	{
		files.POST("", handle.CreateFile)
		files.GET("", handle.ListFiles)
		files.GET("/:id", handle.GetFile)
		files.PATCH("/:id", handle.UpdateFile)
	}

	web := g.Group("/webResources")
	{
		web.POST("", handle.CreateWebResource)
		web.GET("", handle.ListWebResources)
		web.GET("/:id", handle.GetWebResource)
		web.PATCH("/:id", handle.UpdateWebResource)
	}
}

// Package router 把目录的 HTTP 路径绑定到 handle 包中的处理器.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/handle"
)

// RegisterStudyRoutes 注册研究相关路由，search 静态路径优先于 :id.
func RegisterStudyRoutes(g *gin.RouterGroup) {
	studies := g.Group("/studies")
	{
		studies.POST("", handle.CreateStudy)
		studies.GET("", handle.ListStudies)

		search := studies.Group("/search")
		{
			search.GET("", handle.SearchStudies)
			search.GET("/accession", handle.SearchStudiesByAccession)
			search.GET("/release-date", handle.SearchStudiesByReleaseDate)
			search.GET("/taxonomy-id", handle.SearchStudiesByTaxonomyID)
			search.GET("/taxonomy-name", handle.SearchStudiesByTaxonomyName)
			search.GET("/text", handle.SearchStudiesByText)
		}

		studies.GET("/:id", handle.GetStudy)
		studies.PATCH("/:id", handle.UpdateStudy)
		studies.GET("/:id/linkedStudies", handle.LinkedStudies)
		studies.GET("/:id/analyses", handle.StudyAnalyses)
	}
}

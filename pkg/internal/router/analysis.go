package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/handle"
)

// RegisterAnalysisRoutes 注册分析相关路由.
func RegisterAnalysisRoutes(g *gin.RouterGroup) {
	analyses := g.Group("/analyses")
	{
		analyses.POST("", handle.CreateAnalysis)
		analyses.GET("", handle.ListAnalyses)
		analyses.GET("/search", handle.SearchAnalyses)
		analyses.GET("/:id", handle.GetAnalysis)
		analyses.PATCH("/:id", handle.UpdateAnalysis)
		analyses.GET("/:id/referenceSequences", handle.AnalysisReferenceSequences)
		analyses.DELETE("/:id/referenceSequences/:refId", handle.RemoveAnalysisReferenceSequence)
	}
}

// RegisterSampleRoutes 注册样本相关路由.
func RegisterSampleRoutes(g *gin.RouterGroup) {
	samples := g.Group("/samples")
	{
		samples.POST("", handle.CreateSample)
		samples.GET("", handle.ListSamples)
		samples.GET("/search", handle.SearchSamples)
		samples.GET("/:id", handle.GetSample)
		samples.PATCH("/:id", handle.UpdateSample)
		samples.GET("/:id/taxonomies", handle.SampleTaxonomies)
		samples.DELETE("/:id/taxonomies/:taxId", handle.RemoveSampleTaxonomy)
	}
}

package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/types"
)

// CreateAnalysis 创建分析.
//
//	@Summary	创建分析
//	@Tags		分析
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.AnalysisCreateRequest	true	"分析"
//	@Success	201		{object}	types.AnalysisResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	409		{object}	types.ErrorResponse
//	@Router		/api/v1/analyses [post]
func CreateAnalysis(c *gin.Context) {
	var req types.AnalysisCreateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).Analyses().Create(c.Request.Context(), &req)
	reply(c, http.StatusCreated, out, err)
}

// ListAnalyses 分页列出分析.
//
//	@Summary	分析列表
//	@Tags		分析
//	@Produce	json
//	@Param		page	query		int		false	"页码"
//	@Param		size	query		int		false	"每页条数"
//	@Param		sort	query		string	false	"排序"
//	@Success	200		{object}	types.AnalysisListResponse
//	@Router		/api/v1/analyses [get]
func ListAnalyses(c *gin.Context) {
	p, ok := pageOf(c, service.AnalysisSortable)
	if !ok {
		return
	}

	out, err := catalog(c).Analyses().List(c.Request.Context(), p)
	reply(c, http.StatusOK, out, err)
}

// GetAnalysis 分析详情.
//
//	@Summary	分析详情
//	@Tags		分析
//	@Produce	json
//	@Param		id	path		string	true	"数字 id 或 accession.version"
//	@Success	200	{object}	types.AnalysisResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/analyses/{id} [get]
func GetAnalysis(c *gin.Context) {
	out, err := catalog(c).Analyses().Get(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// UpdateAnalysis 部分更新分析，列表字段整体替换.
//
//	@Summary	更新分析
//	@Tags		分析
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"数字 id 或 accession.version"
//	@Param		body	body		types.AnalysisUpdateRequest	true	"变更字段"
//	@Success	200		{object}	types.AnalysisResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/api/v1/analyses/{id} [patch]
func UpdateAnalysis(c *gin.Context) {
	var req types.AnalysisUpdateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).Analyses().Update(c.Request.Context(), c.Param("id"), &req)
	reply(c, http.StatusOK, out, err)
}

// AnalysisReferenceSequences 分析的参考序列，按登记顺序.
//
//	@Summary	分析的参考序列
//	@Tags		分析
//	@Produce	json
//	@Param		id	path		string	true	"数字 id 或 accession.version"
//	@Success	200	{object}	types.ReferenceSequenceListResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/analyses/{id}/referenceSequences [get]
func AnalysisReferenceSequences(c *gin.Context) {
	out, err := catalog(c).Analyses().ReferenceSequences(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// RemoveAnalysisReferenceSequence 移除一个参考序列，剩余集合仍须满足分析的规则.
//
//	@Summary	移除分析的参考序列
//	@Tags		分析
//	@Param		id		path	string	true	"数字 id 或 accession.version"
//	@Param		refId	path	int		true	"参考序列 id"
//	@Success	204
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/analyses/{id}/referenceSequences/{refId} [delete]
func RemoveAnalysisReferenceSequence(c *gin.Context) {
	refID, ok := memberID(c, "refId", "reference sequence")
	if !ok {
		return
	}

	if err := catalog(c).Analyses().RemoveReferenceSequence(c.Request.Context(), c.Param("id"), refID); err != nil {
		Fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// SearchAnalyses 按类型、技术与平台搜索.
//
//	@Summary	搜索分析
//	@Tags		分析
//	@Produce	json
//	@Param		type		query		string	false	"分析类型"
//	@Param		technology	query		string	false	"测序技术"
//	@Param		platform	query		string	false	"平台，忽略大小写"
//	@Success	200			{object}	types.AnalysisListResponse
//	@Failure	400			{object}	types.ErrorResponse
//	@Router		/api/v1/analyses/search [get]
func SearchAnalyses(c *gin.Context) {
	p, ok := pageOf(c, service.AnalysisSortable)
	if !ok {
		return
	}

	out, err := catalog(c).Analyses().Search(c.Request.Context(), c.Query("type"), c.Query("technology"), c.Query("platform"), p)
	reply(c, http.StatusOK, out, err)
}

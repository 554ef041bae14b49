package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/types"
)

// CreateSample 创建样本.
//
//	@Summary	创建样本
//	@Tags		样本
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.SampleCreateRequest	true	"样本"
//	@Success	201		{object}	types.SampleResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Router		/api/v1/samples [post]
func CreateSample(c *gin.Context) {
	var req types.SampleCreateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).Samples().Create(c.Request.Context(), &req)
	reply(c, http.StatusCreated, out, err)
}

// ListSamples 分页列出样本.
//
//	@Summary	样本列表
//	@Tags		样本
//	@Produce	json
//	@Success	200	{object}	types.SampleListResponse
//	@Router		/api/v1/samples [get]
func ListSamples(c *gin.Context) {
	p, ok := pageOf(c, service.SampleSortable)
	if !ok {
		return
	}

	out, err := catalog(c).Samples().List(c.Request.Context(), p)
	reply(c, http.StatusOK, out, err)
}

// GetSample 样本详情.
//
//	@Summary	样本详情
//	@Tags		样本
//	@Produce	json
//	@Param		id	path		string	true	"数字 id 或 accession.version"
//	@Success	200	{object}	types.SampleResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/samples/{id} [get]
func GetSample(c *gin.Context) {
	out, err := catalog(c).Samples().Get(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// UpdateSample 部分更新样本.
//
//	@Summary	更新样本
//	@Tags		样本
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"数字 id 或 accession.version"
//	@Param		body	body		types.SampleUpdateRequest	true	"变更字段"
//	@Success	200		{object}	types.SampleResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/api/v1/samples/{id} [patch]
func UpdateSample(c *gin.Context) {
	var req types.SampleUpdateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).Samples().Update(c.Request.Context(), c.Param("id"), &req)
	reply(c, http.StatusOK, out, err)
}

// SampleTaxonomies 样本的分类.
//
//	@Summary	样本的分类
//	@Tags		样本
//	@Produce	json
//	@Param		id	path		string	true	"数字 id 或 accession.version"
//	@Success	200	{object}	types.TaxonomyListResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/samples/{id}/taxonomies [get]
func SampleTaxonomies(c *gin.Context) {
	out, err := catalog(c).Samples().Taxonomies(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// RemoveSampleTaxonomy 移除样本的一个分类，样本至少保留一个分类.
//
//	@Summary	移除样本的分类
//	@Tags		样本
//	@Param		id		path	string	true	"数字 id 或 accession.version"
//	@Param		taxId	path	int		true	"分类 id"
//	@Success	204
//	@Failure	400	{object}	types.ErrorResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/samples/{id}/taxonomies/{taxId} [delete]
func RemoveSampleTaxonomy(c *gin.Context) {
	taxID, ok := memberID(c, "taxId", "taxonomy")
	if !ok {
		return
	}

	if err := catalog(c).Samples().RemoveTaxonomy(c.Request.Context(), c.Param("id"), taxID); err != nil {
		Fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// SearchSamples 按分类名称或分类号（含下级分类）搜索.
//
//	@Summary	搜索样本
//	@Tags		样本
//	@Produce	json
//	@Param		taxonomies.name			query		string	false	"分类名称"
//	@Param		taxonomies.taxonomyId	query		int		false	"NCBI 分类号"
//	@Success	200						{object}	types.SampleListResponse
//	@Failure	400						{object}	types.ErrorResponse
//	@Router		/api/v1/samples/search [get]
func SearchSamples(c *gin.Context) {
	p, ok := pageOf(c, service.SampleSortable)
	if !ok {
		return
	}

	out, err := catalog(c).Samples().Search(c.Request.Context(), c.Query("taxonomies.name"), c.Query("taxonomies.taxonomyId"), p)
	reply(c, http.StatusOK, out, err)
}

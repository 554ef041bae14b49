package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/types"
)

// CreateReferenceSequence 登记参考序列.
//
//	@Summary	创建参考序列
//	@Tags		参考序列
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.ReferenceSequenceCreateRequest	true	"参考序列"
//	@Success	201		{object}	types.ReferenceSequenceResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Router		/api/v1/reference-sequences [post]
func CreateReferenceSequence(c *gin.Context) {
	var req types.ReferenceSequenceCreateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).ReferenceSequences().Create(c.Request.Context(), &req)
	reply(c, http.StatusCreated, out, err)
}

// ListReferenceSequences 参考序列列表.
//
//	@Summary	参考序列列表
//	@Tags		参考序列
//	@Produce	json
//	@Success	200	{object}	types.ReferenceSequenceListResponse
//	@Router		/api/v1/reference-sequences [get]
func ListReferenceSequences(c *gin.Context) {
	p, ok := pageOf(c, service.ReferenceSequenceSortable)
	if !ok {
		return
	}

	out, err := catalog(c).ReferenceSequences().List(c.Request.Context(), p)
	reply(c, http.StatusOK, out, err)
}

// GetReferenceSequence 参考序列详情.
//
//	@Summary	参考序列详情
//	@Tags		参考序列
//	@Produce	json
//	@Param		id	path		int	true	"参考序列 id"
//	@Success	200	{object}	types.ReferenceSequenceResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/reference-sequences/{id} [get]
func GetReferenceSequence(c *gin.Context) {
	out, err := catalog(c).ReferenceSequences().Get(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// UpdateReferenceSequence 部分更新参考序列.
//
//	@Summary	更新参考序列
//	@Tags		参考序列
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int										true	"参考序列 id"
//	@Param		body	body		types.ReferenceSequenceUpdateRequest	true	"变更字段"
//	@Success	200		{object}	types.ReferenceSequenceResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/api/v1/reference-sequences/{id} [patch]
func UpdateReferenceSequence(c *gin.Context) {
	var req types.ReferenceSequenceUpdateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).ReferenceSequences().Update(c.Request.Context(), c.Param("id"), &req)
	reply(c, http.StatusOK, out, err)
}

// SearchReferenceSequences 按名称、补丁、accession 与类型搜索.
//
//	@Summary	搜索参考序列
//	@Tags		参考序列
//	@Produce	json
//	@Param		name		query		string	false	"名称"
//	@Param		patch		query		string	false	"补丁"
//	@Param		accessions	query		string	false	"accession"
//	@Param		type		query		string	false	"类型"
//	@Success	200			{object}	types.ReferenceSequenceListResponse
//	@Failure	400			{object}	types.ErrorResponse
//	@Router		/api/v1/reference-sequences/search [get]
func SearchReferenceSequences(c *gin.Context) {
	p, ok := pageOf(c, service.ReferenceSequenceSortable)
	if !ok {
		return
	}

	out, err := catalog(c).ReferenceSequences().Search(c.Request.Context(),
		c.Query("name"), c.Query("patch"), c.Query("accessions"), c.Query("type"), p)
	reply(c, http.StatusOK, out, err)
}

// CreateTaxonomy 登记分类，祖先必须已存在.
//
//	@Summary	创建分类
//	@Tags		分类
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.TaxonomyCreateRequest	true	"分类"
//	@Success	201		{object}	types.TaxonomyResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	409		{object}	types.ErrorResponse
//	@Router		/api/v1/taxonomies [post]
func CreateTaxonomy(c *gin.Context) {
	var req types.TaxonomyCreateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).Taxonomies().Create(c.Request.Context(), &req)
	reply(c, http.StatusCreated, out, err)
}

// ListTaxonomies 分类列表.
//
//	@Summary	分类列表
//	@Tags		分类
//	@Produce	json
//	@Success	200	{object}	types.TaxonomyListResponse
//	@Router		/api/v1/taxonomies [get]
func ListTaxonomies(c *gin.Context) {
	p, ok := pageOf(c, service.TaxonomySortable)
	if !ok {
		return
	}

	out, err := catalog(c).Taxonomies().List(c.Request.Context(), p)
	reply(c, http.StatusOK, out, err)
}

// GetTaxonomy 分类详情.
//
//	@Summary	分类详情
//	@Tags		分类
//	@Produce	json
//	@Param		id	path		int	true	"分类 id"
//	@Success	200	{object}	types.TaxonomyResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/taxonomies/{id} [get]
func GetTaxonomy(c *gin.Context) {
	out, err := catalog(c).Taxonomies().Get(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

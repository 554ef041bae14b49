package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/types"
)

// CreateStudy 创建研究.
//
//	@Summary	创建研究
//	@Tags		研究
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.StudyCreateRequest	true	"研究"
//	@Success	201		{object}	types.StudyResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	409		{object}	types.ErrorResponse
//	@Router		/api/v1/studies [post]
func CreateStudy(c *gin.Context) {
	var req types.StudyCreateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).Studies().Create(c.Request.Context(), &req)
	reply(c, http.StatusCreated, out, err)
}

// ListStudies 分页列出可见研究.
//
//	@Summary	研究列表
//	@Tags		研究
//	@Produce	json
//	@Param		page	query		int		false	"页码，从 0 开始"
//	@Param		size	query		int		false	"每页条数"
//	@Param		sort	query		string	false	"排序，如 name,desc"
//	@Success	200		{object}	types.StudyListResponse
//	@Router		/api/v1/studies [get]
func ListStudies(c *gin.Context) {
	p, ok := pageOf(c, service.StudySortable)
	if !ok {
		return
	}

	out, err := catalog(c).Studies().List(c.Request.Context(), p)
	reply(c, http.StatusOK, out, err)
}

// GetStudy 按 id 或 accession.version 获取研究.
//
//	@Summary	研究详情
//	@Tags		研究
//	@Produce	json
//	@Param		id	path		string	true	"数字 id 或 accession.version"
//	@Success	200	{object}	types.StudyResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/studies/{id} [get]
func GetStudy(c *gin.Context) {
	out, err := catalog(c).Studies().Get(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// UpdateStudy 部分更新研究.
//
//	@Summary	更新研究
//	@Tags		研究
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"数字 id 或 accession.version"
//	@Param		body	body		types.StudyUpdateRequest	true	"变更字段"
//	@Success	200		{object}	types.StudyResponse
//	@Success	204		"更新后研究不可见，不返回内容"
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/api/v1/studies/{id} [patch]
func UpdateStudy(c *gin.Context) {
	var req types.StudyUpdateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).Studies().Update(c.Request.Context(), c.Param("id"), &req)
	if err == nil && out == nil {
		// 更新后不可见：成功但不回显
		c.Status(http.StatusNoContent)
		return
	}

	reply(c, http.StatusOK, out, err)
}

// LinkedStudies 研究的可见关联研究.
//
//	@Summary	关联研究
//	@Tags		研究
//	@Produce	json
//	@Param		id	path		string	true	"数字 id 或 accession.version"
//	@Success	200	{object}	types.StudyListResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/studies/{id}/linkedStudies [get]
func LinkedStudies(c *gin.Context) {
	out, err := catalog(c).Studies().LinkedStudies(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// StudyAnalyses 研究下的分析.
//
//	@Summary	研究的分析
//	@Tags		研究
//	@Produce	json
//	@Param		id	path		string	true	"数字 id 或 accession.version"
//	@Success	200	{object}	types.AnalysisListResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/studies/{id}/analyses [get]
func StudyAnalyses(c *gin.Context) {
	out, err := catalog(c).Studies().Analyses(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// SearchStudies 按组合条件搜索研究.
//
//	@Summary	搜索研究
//	@Tags		研究
//	@Produce	json
//	@Param		accessionVersionId						query		string	false	"accession.version"
//	@Param		browsable								query		bool	false	"是否可浏览"
//	@Param		taxonomy.taxonomyId						query		int		false	"NCBI 分类号"
//	@Param		analyses.type							query		string	false	"分析类型"
//	@Param		analyses.referenceSequences.name		query		string	false	"参考序列名称"
//	@Param		analyses.referenceSequences.patch		query		string	false	"参考序列补丁"
//	@Success	200										{object}	types.StudyListResponse
//	@Failure	400										{object}	types.ErrorResponse
//	@Router		/api/v1/studies/search [get]
func SearchStudies(c *gin.Context) {
	p, ok := pageOf(c, service.StudySortable)
	if !ok {
		return
	}

	f := service.StudyFilter{
		AccessionVersionID: c.Query("accessionVersionId"),
		AnalysisType:       c.Query("analyses.type"),
		ReferenceName:      c.Query("analyses.referenceSequences.name"),
		ReferencePatch:     c.Query("analyses.referenceSequences.patch"),
	}

	if raw := c.Query("browsable"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			Fail(c, errs.Field("browsable", "must be true or false"))

			return
		}

		f.Browsable = &b
	}

	if raw := c.Query("taxonomy.taxonomyId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			Fail(c, errs.Field("taxonomy.taxonomyId", "must be a number"))

			return
		}

		f.TaxonomyID = &id
	}

	out, err := catalog(c).Studies().Search(c.Request.Context(), f, p)
	reply(c, http.StatusOK, out, err)
}

// SearchStudiesByAccession 返回 accession 下最新的可见版本.
//
//	@Summary	按 accession 查询研究
//	@Tags		研究
//	@Produce	json
//	@Param		accession	query		string	true	"accession"
//	@Success	200			{object}	types.StudyResponse
//	@Failure	404			{object}	types.ErrorResponse
//	@Router		/api/v1/studies/search/accession [get]
func SearchStudiesByAccession(c *gin.Context) {
	out, err := catalog(c).Studies().ByAccession(c.Request.Context(), c.Query("accession"))
	reply(c, http.StatusOK, out, err)
}

// SearchStudiesByReleaseDate 按发布日期闭区间查询.
//
//	@Summary	按发布日期查询研究
//	@Tags		研究
//	@Produce	json
//	@Param		from	query		string	false	"起始日期 yyyy-mm-dd"
//	@Param		to		query		string	false	"结束日期 yyyy-mm-dd"
//	@Success	200		{object}	types.StudyListResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Router		/api/v1/studies/search/release-date [get]
func SearchStudiesByReleaseDate(c *gin.Context) {
	p, ok := pageOf(c, service.StudySortable)
	if !ok {
		return
	}

	out, err := catalog(c).Studies().ByReleaseDate(c.Request.Context(), c.Query("from"), c.Query("to"), p)
	reply(c, http.StatusOK, out, err)
}

// SearchStudiesByTaxonomyID 按分类号及其下级分类查询.
//
//	@Summary	按分类号查询研究
//	@Tags		研究
//	@Produce	json
//	@Param		id	query		int	true	"NCBI 分类号"
//	@Success	200	{object}	types.StudyListResponse
//	@Failure	400	{object}	types.ErrorResponse
//	@Router		/api/v1/studies/search/taxonomy-id [get]
func SearchStudiesByTaxonomyID(c *gin.Context) {
	p, ok := pageOf(c, service.StudySortable)
	if !ok {
		return
	}

	out, err := catalog(c).Studies().ByTaxonomyID(c.Request.Context(), c.Query("id"), p)
	reply(c, http.StatusOK, out, err)
}

// SearchStudiesByTaxonomyName 按分类名称及其下级分类查询.
//
//	@Summary	按分类名称查询研究
//	@Tags		研究
//	@Produce	json
//	@Param		name	query		string	true	"分类名称"
//	@Success	200		{object}	types.StudyListResponse
//	@Router		/api/v1/studies/search/taxonomy-name [get]
func SearchStudiesByTaxonomyName(c *gin.Context) {
	p, ok := pageOf(c, service.StudySortable)
	if !ok {
		return
	}

	out, err := catalog(c).Studies().ByTaxonomyName(c.Request.Context(), c.Query("name"), p)
	reply(c, http.StatusOK, out, err)
}

// SearchStudiesByText 名称或描述的全文匹配.
//
//	@Summary	文本搜索研究
//	@Tags		研究
//	@Produce	json
//	@Param		searchTerm	query		string	true	"关键字"
//	@Success	200			{object}	types.StudyListResponse
//	@Router		/api/v1/studies/search/text [get]
func SearchStudiesByText(c *gin.Context) {
	p, ok := pageOf(c, service.StudySortable)
	if !ok {
		return
	}

	out, err := catalog(c).Studies().ByText(c.Request.Context(), c.Query("searchTerm"), p)
	reply(c, http.StatusOK, out, err)
}

package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/types"
)

// CreateFile 登记数据文件.
//
//	@Summary	创建文件
//	@Tags		文件
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.FileCreateRequest	true	"文件"
//	@Success	201		{object}	types.FileResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	409		{object}	types.ErrorResponse
//	@Router		/api/v1/files [post]
func CreateFile(c *gin.Context) {
	var req types.FileCreateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).Files().Create(c.Request.Context(), &req)
	reply(c, http.StatusCreated, out, err)
}

// ListFiles 文件列表.
//
//	@Summary	文件列表
//	@Tags		文件
//	@Produce	json
//	@Success	200	{object}	types.FileListResponse
//	@Router		/api/v1/files [get]
func ListFiles(c *gin.Context) {
	p, ok := pageOf(c, service.FileSortable)
	if !ok {
		return
	}

	out, err := catalog(c).Files().List(c.Request.Context(), p)
	reply(c, http.StatusOK, out, err)
}

// GetFile 文件详情.
//
//	@Summary	文件详情
//	@Tags		文件
//	@Produce	json
//	@Param		id	path		string	true	"数字 id 或 accession.version"
//	@Success	200	{object}	types.FileResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/files/{id} [get]
func GetFile(c *gin.Context) {
	out, err := catalog(c).Files().Get(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// UpdateFile 部分更新文件.
//
//	@Summary	更新文件
//	@Tags		文件
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"数字 id 或 accession.version"
//	@Param		body	body		types.FileUpdateRequest	true	"变更字段"
//	@Success	200		{object}	types.FileResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/api/v1/files/{id} [patch]
func UpdateFile(c *gin.Context) {
	var req types.FileUpdateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).Files().Update(c.Request.Context(), c.Param("id"), &req)
	reply(c, http.StatusOK, out, err)
}

// CreateWebResource 登记网络资源.
//
//	@Summary	创建网络资源
//	@Tags		网络资源
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.WebResourceCreateRequest	true	"网络资源"
//	@Success	201		{object}	types.WebResourceResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Router		/api/v1/webResources [post]
func CreateWebResource(c *gin.Context) {
	var req types.WebResourceCreateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).WebResources().Create(c.Request.Context(), &req)
	reply(c, http.StatusCreated, out, err)
}

// ListWebResources 网络资源列表.
//
//	@Summary	网络资源列表
//	@Tags		网络资源
//	@Produce	json
//	@Success	200	{object}	types.WebResourceListResponse
//	@Router		/api/v1/webResources [get]
func ListWebResources(c *gin.Context) {
	p, ok := pageOf(c, service.WebResourceSortable)
	if !ok {
		return
	}

	out, err := catalog(c).WebResources().List(c.Request.Context(), p)
	reply(c, http.StatusOK, out, err)
}

// GetWebResource 网络资源详情.
//
//	@Summary	网络资源详情
//	@Tags		网络资源
//	@Produce	json
//	@Param		id	path		int	true	"网络资源 id"
//	@Success	200	{object}	types.WebResourceResponse
//	@Failure	404	{object}	types.ErrorResponse
//	@Router		/api/v1/webResources/{id} [get]
func GetWebResource(c *gin.Context) {
	out, err := catalog(c).WebResources().Get(c.Request.Context(), c.Param("id"))
	reply(c, http.StatusOK, out, err)
}

// UpdateWebResource 部分更新网络资源.
//
//	@Summary	更新网络资源
//	@Tags		网络资源
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int								true	"网络资源 id"
//	@Param		body	body		types.WebResourceUpdateRequest	true	"变更字段"
//	@Success	200		{object}	types.WebResourceResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/api/v1/webResources/{id} [patch]
func UpdateWebResource(c *gin.Context) {
	var req types.WebResourceUpdateRequest
	if !bind(c, &req) {
		return
	}

	out, err := catalog(c).WebResources().Update(c.Request.Context(), c.Param("id"), &req)
	reply(c, http.StatusOK, out, err)
}

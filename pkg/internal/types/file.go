package types

import (
	"time"

	"github.com/yeisme/genovault/pkg/internal/model"
)

// FileCreateRequest 登记数据文件.
type FileCreateRequest struct {
	AccessionVersionID *AccessionVersionID   `json:"accessionVersionId"`
	Hash               string                `json:"hash"               rule:"required,max=128"`
	Name               string                `json:"name"               rule:"required,max=1024"`
	Size               int64                 `json:"size"               rule:"min=0"`
	Type               model.FileType        `json:"type"               rule:"required,enum"`
	ChecksumMethod     *model.ChecksumMethod `json:"checksumMethod"     rule:"omitempty,enum"`
}

// FileUpdateRequest 部分更新数据文件.
type FileUpdateRequest struct {
	AccessionVersionID *AccessionVersionID   `json:"accessionVersionId"`
	Hash               *string               `json:"hash"               rule:"omitempty,min=1,max=128"`
	Name               *string               `json:"name"               rule:"omitempty,min=1,max=1024"`
	Size               *int64                `json:"size"               rule:"omitempty,min=0"`
	Type               *model.FileType       `json:"type"               rule:"omitempty,enum"`
	ChecksumMethod     *model.ChecksumMethod `json:"checksumMethod"     rule:"omitempty,enum"`
}

// FileResponse 数据文件详情.
type FileResponse struct {
	ID                 uint                  `json:"id"`
	AccessionVersionID *AccessionVersionView `json:"accessionVersionId,omitempty"`
	Hash               string                `json:"hash"`
	Name               string                `json:"name"`
	Size               int64                 `json:"size"`
	Type               model.FileType        `json:"type"`
	ChecksumMethod     model.ChecksumMethod  `json:"checksumMethod"`
	CreatedDate        time.Time             `json:"createdDate"`
	LastModifiedDate   time.Time             `json:"lastModifiedDate"`
}

// FileListResponse 数据文件列表.
type FileListResponse struct {
	Files []FileResponse `json:"files"`
	Page  *PageInfo      `json:"page,omitempty"`
}

// NewFileResponse 模型转响应.
func NewFileResponse(f *model.File) FileResponse {
	return FileResponse{
		ID:                 f.ID,
		AccessionVersionID: NewAccessionVersionView(f.Accession, f.Version),
		Hash:               f.Hash,
		Name:               f.Name,
		Size:               f.Size,
		Type:               f.Type,
		ChecksumMethod:     f.ChecksumMethod,
		CreatedDate:        f.CreatedDate,
		LastModifiedDate:   f.LastModifiedDate,
	}
}

// NewFileList 转换列表.
func NewFileList(rows []model.File, page *PageInfo) FileListResponse {
	out := FileListResponse{Files: make([]FileResponse, 0, len(rows)), Page: page}
	for i := range rows {
		out.Files = append(out.Files, NewFileResponse(&rows[i]))
	}

	return out
}

// WebResourceCreateRequest 创建网络资源.
type WebResourceCreateRequest struct {
	Type        model.WebResourceType `json:"type"        rule:"required,enum"`
	ResourceURL string                `json:"resourceUrl" rule:"required,weburl"`
}

// WebResourceUpdateRequest 部分更新网络资源.
type WebResourceUpdateRequest struct {
	Type        *model.WebResourceType `json:"type"        rule:"omitempty,enum"`
	ResourceURL *string                `json:"resourceUrl" rule:"omitempty,weburl"`
}

// WebResourceResponse 网络资源详情.
type WebResourceResponse struct {
	ID               uint                  `json:"id"`
	Type             model.WebResourceType `json:"type"`
	ResourceURL      string                `json:"resourceUrl"`
	CreatedDate      time.Time             `json:"createdDate"`
	LastModifiedDate time.Time             `json:"lastModifiedDate"`
}

// WebResourceListResponse 网络资源列表.
type WebResourceListResponse struct {
	WebResources []WebResourceResponse `json:"webResources"`
	Page         *PageInfo             `json:"page,omitempty"`
}

// NewWebResourceResponse 模型转响应.
func NewWebResourceResponse(w *model.WebResource) WebResourceResponse {
	return WebResourceResponse{
		ID:               w.ID,
		Type:             w.Type,
		ResourceURL:      w.ResourceURL,
		CreatedDate:      w.CreatedDate,
		LastModifiedDate: w.LastModifiedDate,
	}
}

// NewWebResourceList 转换列表.
func NewWebResourceList(rows []model.WebResource, page *PageInfo) WebResourceListResponse {
	out := WebResourceListResponse{WebResources: make([]WebResourceResponse, 0, len(rows)), Page: page}
	for i := range rows {
		out.WebResources = append(out.WebResources, NewWebResourceResponse(&rows[i]))
	}

	return out
}

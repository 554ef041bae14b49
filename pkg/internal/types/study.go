package types

import (
	"time"

	"github.com/yeisme/genovault/pkg/internal/model"
)

// StudyCreateRequest 创建研究.
type StudyCreateRequest struct {
	AccessionVersionID *AccessionVersionID `json:"accessionVersionId"`
	Name               string              `json:"name"               rule:"required,max=255"`
	Description        string              `json:"description"`
	Center             string              `json:"center"             rule:"max=255"`
	Taxonomy           *uint               `json:"taxonomy"           rule:"required"`
	ReleaseDate        *model.Date         `json:"releaseDate"        rule:"required"`
	Deprecated         bool                `json:"deprecated"`
	Browsable          bool                `json:"browsable"`
	// ChildStudies 关联研究，无法解析的 id 会被忽略.
	ChildStudies []uint `json:"childStudies"`
}

// StudyUpdateRequest 部分更新研究，缺省字段保持不变，列表字段整体替换.
type StudyUpdateRequest struct {
	AccessionVersionID *AccessionVersionID `json:"accessionVersionId"`
	Name               *string             `json:"name"               rule:"omitempty,min=1,max=255"`
	Description        *string             `json:"description"`
	Center             *string             `json:"center"             rule:"omitempty,max=255"`
	Taxonomy           *uint               `json:"taxonomy"`
	ReleaseDate        *model.Date         `json:"releaseDate"`
	Deprecated         *bool               `json:"deprecated"`
	Browsable          *bool               `json:"browsable"`
	ChildStudies       *[]uint             `json:"childStudies"`
}

// StudyResponse 研究详情，deprecated 从不输出.
type StudyResponse struct {
	ID                 uint                  `json:"id"`
	AccessionVersionID *AccessionVersionView `json:"accessionVersionId,omitempty"`
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	Center             string                `json:"center"`
	Taxonomy           uint                  `json:"taxonomy"`
	ReleaseDate        model.Date            `json:"releaseDate"`
	Browsable          bool                  `json:"browsable"`
	CreatedDate        time.Time             `json:"createdDate"`
	LastModifiedDate   time.Time             `json:"lastModifiedDate"`
}

// StudyListResponse 研究列表.
type StudyListResponse struct {
	Studies []StudyResponse `json:"studies"`
	Page    *PageInfo       `json:"page,omitempty"`
}

// NewStudyResponse 模型转响应.
func NewStudyResponse(s *model.Study) StudyResponse {
	return StudyResponse{
		ID:                 s.ID,
		AccessionVersionID: NewAccessionVersionView(s.Accession, s.Version),
		Name:               s.Name,
		Description:        s.Description,
		Center:             s.Center,
		Taxonomy:           s.TaxonomyID,
		ReleaseDate:        s.ReleaseDate,
		Browsable:          s.Browsable,
		CreatedDate:        s.CreatedDate,
		LastModifiedDate:   s.LastModifiedDate,
	}
}

// NewStudyList 转换列表，page 为 nil 时不输出分页信息.
func NewStudyList(rows []model.Study, page *PageInfo) StudyListResponse {
	out := StudyListResponse{Studies: make([]StudyResponse, 0, len(rows)), Page: page}
	for i := range rows {
		out.Studies = append(out.Studies, NewStudyResponse(&rows[i]))
	}

	return out
}

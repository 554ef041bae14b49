package types

import (
	"time"

	"github.com/yeisme/genovault/pkg/internal/model"
)

// AnalysisCreateRequest 创建分析.
type AnalysisCreateRequest struct {
	AccessionVersionID *AccessionVersionID `json:"accessionVersionId"`
	Name               string              `json:"name"               rule:"required,max=255"`
	Description        string              `json:"description"`
	Study              *uint               `json:"study"              rule:"required"`
	ReferenceSequences []uint              `json:"referenceSequences"`
	Technology         model.Technology    `json:"technology"         rule:"required,enum"`
	Type               model.AnalysisType  `json:"type"               rule:"required,enum"`
	Platform           string              `json:"platform"           rule:"required,max=255"`
	Files              []uint              `json:"files"`
}

// AnalysisUpdateRequest 部分更新分析.
type AnalysisUpdateRequest struct {
	AccessionVersionID *AccessionVersionID `json:"accessionVersionId"`
	Name               *string             `json:"name"               rule:"omitempty,min=1,max=255"`
	Description        *string             `json:"description"`
	Study              *uint               `json:"study"`
	ReferenceSequences *[]uint             `json:"referenceSequences"`
	Technology         *model.Technology   `json:"technology"         rule:"omitempty,enum"`
	Type               *model.AnalysisType `json:"type"               rule:"omitempty,enum"`
	Platform           *string             `json:"platform"           rule:"omitempty,min=1,max=255"`
	Files              *[]uint             `json:"files"`
}

// AnalysisResponse 分析详情.
type AnalysisResponse struct {
	ID                 uint                  `json:"id"`
	AccessionVersionID *AccessionVersionView `json:"accessionVersionId,omitempty"`
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	Study              uint                  `json:"study"`
	ReferenceSequences []uint                `json:"referenceSequences"`
	Technology         model.Technology      `json:"technology"`
	Type               model.AnalysisType    `json:"type"`
	Platform           string                `json:"platform"`
	Files              []uint                `json:"files"`
	CreatedDate        time.Time             `json:"createdDate"`
	LastModifiedDate   time.Time             `json:"lastModifiedDate"`
}

// AnalysisListResponse 分析列表.
type AnalysisListResponse struct {
	Analyses []AnalysisResponse `json:"analyses"`
	Page     *PageInfo          `json:"page,omitempty"`
}

// NewAnalysisResponse 模型转响应，关联 id 由调用方加载.
func NewAnalysisResponse(a *model.Analysis, refs, files []uint) AnalysisResponse {
	if refs == nil {
		refs = []uint{}
	}

	if files == nil {
		files = []uint{}
	}

	return AnalysisResponse{
		ID:                 a.ID,
		AccessionVersionID: NewAccessionVersionView(a.Accession, a.Version),
		Name:               a.Name,
		Description:        a.Description,
		Study:              a.StudyID,
		ReferenceSequences: refs,
		Technology:         a.Technology,
		Type:               a.Type,
		Platform:           a.Platform,
		Files:              files,
		CreatedDate:        a.CreatedDate,
		LastModifiedDate:   a.LastModifiedDate,
	}
}

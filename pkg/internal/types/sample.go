package types

import (
	"time"

	"github.com/yeisme/genovault/pkg/internal/model"
)

// SampleCreateRequest 创建样本.
type SampleCreateRequest struct {
	AccessionVersionID *AccessionVersionID `json:"accessionVersionId"`
	Name               string              `json:"name"               rule:"required,max=255"`
	Taxonomies         []uint              `json:"taxonomies"`
}

// SampleUpdateRequest 部分更新样本.
type SampleUpdateRequest struct {
	AccessionVersionID *AccessionVersionID `json:"accessionVersionId"`
	Name               *string             `json:"name"               rule:"omitempty,min=1,max=255"`
	Taxonomies         *[]uint             `json:"taxonomies"`
}

// SampleResponse 样本详情.
type SampleResponse struct {
	ID                 uint                  `json:"id"`
	AccessionVersionID *AccessionVersionView `json:"accessionVersionId,omitempty"`
	Name               string                `json:"name"`
	Taxonomies         []uint                `json:"taxonomies"`
	CreatedDate        time.Time             `json:"createdDate"`
	LastModifiedDate   time.Time             `json:"lastModifiedDate"`
}

// SampleListResponse 样本列表.
type SampleListResponse struct {
	Samples []SampleResponse `json:"samples"`
	Page    *PageInfo        `json:"page,omitempty"`
}

// NewSampleResponse 模型转响应.
func NewSampleResponse(s *model.Sample, taxonomies []uint) SampleResponse {
	if taxonomies == nil {
		taxonomies = []uint{}
	}

	return SampleResponse{
		ID:                 s.ID,
		AccessionVersionID: NewAccessionVersionView(s.Accession, s.Version),
		Name:               s.Name,
		Taxonomies:         taxonomies,
		CreatedDate:        s.CreatedDate,
		LastModifiedDate:   s.LastModifiedDate,
	}
}

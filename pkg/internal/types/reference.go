package types

import (
	"time"

	"github.com/yeisme/genovault/pkg/internal/model"
)

// ReferenceSequenceCreateRequest 创建参考序列.
type ReferenceSequenceCreateRequest struct {
	Name       string                      `json:"name"       rule:"required,max=255"`
	Patch      string                      `json:"patch"      rule:"max=64"`
	Accessions []string                    `json:"accessions" rule:"dive,required,max=255"`
	Type       model.ReferenceSequenceType `json:"type"       rule:"required,enum"`
}

// ReferenceSequenceUpdateRequest 部分更新参考序列.
type ReferenceSequenceUpdateRequest struct {
	Name       *string                      `json:"name"       rule:"omitempty,min=1,max=255"`
	Patch      *string                      `json:"patch"      rule:"omitempty,max=64"`
	Accessions *[]string                    `json:"accessions" rule:"omitempty,dive,required,max=255"`
	Type       *model.ReferenceSequenceType `json:"type"       rule:"omitempty,enum"`
}

// ReferenceSequenceResponse 参考序列详情.
type ReferenceSequenceResponse struct {
	ID               uint                        `json:"id"`
	Name             string                      `json:"name"`
	Patch            string                      `json:"patch"`
	Accessions       []string                    `json:"accessions"`
	Type             model.ReferenceSequenceType `json:"type"`
	CreatedDate      time.Time                   `json:"createdDate"`
	LastModifiedDate time.Time                   `json:"lastModifiedDate"`
}

// ReferenceSequenceListResponse 参考序列列表.
type ReferenceSequenceListResponse struct {
	ReferenceSequences []ReferenceSequenceResponse `json:"referenceSequences"`
	Page               *PageInfo                   `json:"page,omitempty"`
}

// NewReferenceSequenceResponse 模型转响应.
func NewReferenceSequenceResponse(r *model.ReferenceSequence) ReferenceSequenceResponse {
	acc := []string(r.Accessions)
	if acc == nil {
		acc = []string{}
	}

	return ReferenceSequenceResponse{
		ID:               r.ID,
		Name:             r.Name,
		Patch:            r.Patch,
		Accessions:       acc,
		Type:             r.Type,
		CreatedDate:      r.CreatedDate,
		LastModifiedDate: r.LastModifiedDate,
	}
}

// NewReferenceSequenceList 转换列表.
func NewReferenceSequenceList(rows []model.ReferenceSequence, page *PageInfo) ReferenceSequenceListResponse {
	out := ReferenceSequenceListResponse{
		ReferenceSequences: make([]ReferenceSequenceResponse, 0, len(rows)),
		Page:               page,
	}
	for i := range rows {
		out.ReferenceSequences = append(out.ReferenceSequences, NewReferenceSequenceResponse(&rows[i]))
	}

	return out
}

// TaxonomyCreateRequest 创建分类.
type TaxonomyCreateRequest struct {
	TaxonomyID *int64 `json:"taxonomyId" rule:"required,min=1"`
	Name       string `json:"name"       rule:"required,max=255"`
	Ancestors  []uint `json:"ancestors"`
}

// TaxonomyResponse 分类详情，Ancestors 为直接祖先.
type TaxonomyResponse struct {
	ID               uint      `json:"id"`
	TaxonomyID       int64     `json:"taxonomyId"`
	Name             string    `json:"name"`
	Ancestors        []uint    `json:"ancestors"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
}

// TaxonomyListResponse 分类列表.
type TaxonomyListResponse struct {
	Taxonomies []TaxonomyResponse `json:"taxonomies"`
	Page       *PageInfo          `json:"page,omitempty"`
}

// NewTaxonomyResponse 模型转响应.
func NewTaxonomyResponse(t *model.Taxonomy, ancestors []uint) TaxonomyResponse {
	if ancestors == nil {
		ancestors = []uint{}
	}

	return TaxonomyResponse{
		ID:               t.ID,
		TaxonomyID:       t.TaxonomyID,
		Name:             t.Name,
		Ancestors:        ancestors,
		CreatedDate:      t.CreatedDate,
		LastModifiedDate: t.LastModifiedDate,
	}
}

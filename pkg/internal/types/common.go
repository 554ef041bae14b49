// Package types 定义 HTTP 接口的请求与响应结构.
// 请求结构只包含客户端可写的字段，审计时间戳不会被绑定.
package types

import (
	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/identity"
	"github.com/yeisme/genovault/pkg/internal/query"
)

// AccessionVersionID 请求中的外部标识.
type AccessionVersionID struct {
	Accession *string `json:"accession" rule:"required,size255"`
	Version   *int    `json:"version"   rule:"required,min=1"`
}

// Value 转为已校验的标识，调用前必须通过结构校验.
func (a *AccessionVersionID) Value() *identity.AccessionVersion {
	if a == nil || a.Accession == nil || a.Version == nil {
		return nil
	}

	return &identity.AccessionVersion{Accession: *a.Accession, Version: *a.Version}
}

// AccessionVersionView 响应中的外部标识.
type AccessionVersionView struct {
	Accession string `json:"accession"`
	Version   int    `json:"version"`
}

// NewAccessionVersionView 两个字段都存在时才输出标识.
func NewAccessionVersionView(acc *string, ver *int) *AccessionVersionView {
	if acc == nil || ver == nil {
		return nil
	}

	return &AccessionVersionView{Accession: *acc, Version: *ver}
}

// ErrorResponse 统一错误响应.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Exception string            `json:"exception"`
	IDs       []string          `json:"ids,omitempty"`
	Errors    []errs.FieldError `json:"errors,omitempty"`
}

// PageInfo 分页信息.
type PageInfo = query.PageInfo

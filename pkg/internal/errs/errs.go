// Package errs 定义目录服务的封闭错误类型集合.
// 每个错误都携带一个 Kind，HTTP 层只依据 Kind 选择状态码.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind 错误类别.
type Kind int

const (
	KindUnknown Kind = iota
	KindMalformedIdentifier
	KindInvalidReference
	KindInvalidReferenceType
	KindAnalysisWithoutReferenceSequence
	KindSampleWithoutTaxonomy
	KindNotFound
	KindFieldValidation
	KindDuplicateIdentity
	KindConflict
)

var kindNames = map[Kind]string{
	KindUnknown:                          "InternalError",
	KindMalformedIdentifier:              "MalformedIdentifierError",
	KindInvalidReference:                 "InvalidReferenceError",
	KindInvalidReferenceType:             "InvalidReferenceTypeError",
	KindAnalysisWithoutReferenceSequence: "AnalysisWithoutReferenceSequenceError",
	KindSampleWithoutTaxonomy:            "SampleWithoutTaxonomyError",
	KindNotFound:                         "NotFoundError",
	KindFieldValidation:                  "FieldValidationError",
	KindDuplicateIdentity:                "DuplicateIdentityError",
	KindConflict:                         "ConflictError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return kindNames[KindUnknown]
}

const (
	// MsgMalformedIdentifier 标识符格式错误时的提示.
	MsgMalformedIdentifier = "Please provide an ID in the form accession.version"
	// MsgInvalidReferenceType 多个参考序列中存在非 GENE 类型时的提示.
	MsgInvalidReferenceType = "Invalid type of reference sequences. " +
		"When multiple reference sequence URLs are provided, all of them should point to gene sequences."
	MsgAnalysisWithoutReferenceSequence = "An analysis must have at least one reference sequence"
	MsgSampleWithoutTaxonomy            = "A sample must have at least one taxonomy"
	MsgFieldValidation                  = "Validation failed"
)

// FieldError 单个字段的校验失败，Property 为 JSON 路径，如 accessionVersionId.version.
type FieldError struct {
	Property string `json:"property"`
	Message  string `json:"message"`
}

// Error 目录服务错误.
type Error struct {
	Kind    Kind
	Message string
	// IDs 与错误相关的实体标识，例如无法解析的引用.
	IDs    []string
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 按 Kind 比较，使 errors.Is(err, &Error{Kind: KindNotFound}) 可用.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf 返回错误链上第一个 *Error 的 Kind，不存在时为 KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// As 取出错误链上的 *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)

	return e, ok
}

// IsNotFound 判断是否为未找到.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict 判断是否为可重试的并发冲突.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

func MalformedIdentifier(raw string) *Error {
	return &Error{Kind: KindMalformedIdentifier, Message: MsgMalformedIdentifier, IDs: []string{raw}}
}

// MalformedDate 日期参数缺失或不是 yyyy-mm-dd，归入标识符格式错误.
// property 为查询参数名，原始值记在 IDs 中.
func MalformedDate(property, raw, message string) *Error {
	e := &Error{
		Kind:    KindMalformedIdentifier,
		Message: message,
		Fields:  []FieldError{{Property: property, Message: message}},
	}

	if raw != "" {
		e.IDs = []string{raw}
	}

	return e
}

// InvalidReference 报告无法解析的引用，ids 按输入顺序列出.
func InvalidReference(entity string, ids ...string) *Error {
	return &Error{
		Kind:    KindInvalidReference,
		Message: fmt.Sprintf("Invalid reference to %s: %s", entity, strings.Join(ids, ", ")),
		IDs:     ids,
	}
}

func InvalidReferenceType(ids ...string) *Error {
	return &Error{Kind: KindInvalidReferenceType, Message: MsgInvalidReferenceType, IDs: ids}
}

func AnalysisWithoutReferenceSequence() *Error {
	return &Error{Kind: KindAnalysisWithoutReferenceSequence, Message: MsgAnalysisWithoutReferenceSequence}
}

func SampleWithoutTaxonomy() *Error {
	return &Error{Kind: KindSampleWithoutTaxonomy, Message: MsgSampleWithoutTaxonomy}
}

// NotFound 对不存在与不可见的实体使用同一错误.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id), IDs: []string{id}}
}

func FieldValidation(fields ...FieldError) *Error {
	msg := MsgFieldValidation
	if len(fields) == 1 {
		msg = fields[0].Message
	}

	return &Error{Kind: KindFieldValidation, Message: msg, Fields: fields}
}

// Field 构造单字段校验错误.
func Field(property, message string) *Error {
	return FieldValidation(FieldError{Property: property, Message: message})
}

func DuplicateIdentity(entity, accession string, version int) *Error {
	id := fmt.Sprintf("%s.%d", accession, version)

	return &Error{
		Kind:    KindDuplicateIdentity,
		Message: fmt.Sprintf("%s with accession version %s already exists", entity, id),
		IDs:     []string{id},
	}
}

func Conflict(entity, id string, cause error) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: fmt.Sprintf("%s %s was modified concurrently", entity, id),
		IDs:     []string{id},
		Err:     cause,
	}
}

// DuplicateKey 非 accession 的唯一键冲突，如分类的 taxonomyId.
func DuplicateKey(entity, property, value string) *Error {
	return &Error{
		Kind:    KindDuplicateIdentity,
		Message: fmt.Sprintf("%s with %s %s already exists", entity, property, value),
		IDs:     []string{value},
	}
}

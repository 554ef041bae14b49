// Package identity 解析与定位 accession.version 形式的实体标识.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/internal/errs"
)

// MaxAccessionLength accession 的最大长度.
const MaxAccessionLength = 255

// AccessionVersion 实体的外部标识.
type AccessionVersion struct {
	Accession string `json:"accession"`
	Version   int    `json:"version"`
}

func (a AccessionVersion) String() string {
	return a.Accession + "." + strconv.Itoa(a.Version)
}

// Parse 按最后一个 "." 拆分，accession 本身可以包含 ".".
func Parse(s string) (AccessionVersion, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return AccessionVersion{}, errs.MalformedIdentifier(s)
	}

	acc, raw := s[:i], s[i+1:]
	if len(acc) > MaxAccessionLength {
		return AccessionVersion{}, errs.MalformedIdentifier(s)
	}

	for _, r := range raw {
		if r < '0' || r > '9' {
			return AccessionVersion{}, errs.MalformedIdentifier(s)
		}
	}

	ver, err := strconv.Atoi(raw)
	if err != nil || ver < 1 {
		return AccessionVersion{}, errs.MalformedIdentifier(s)
	}

	return AccessionVersion{Accession: acc, Version: ver}, nil
}

// Ref 路径参数的解析结果：数字主键或 accession.version 二选一.
type Ref struct {
	ID  uint
	AV  *AccessionVersion
	Raw string
}

// ParseRef 解析路径中的实体引用.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, errs.MalformedIdentifier(s)
	}

	if id, err := strconv.ParseUint(s, 10, 64); err == nil {
		if id == 0 {
			return Ref{}, errs.NotFound("entity", s)
		}

		return Ref{ID: uint(id), Raw: s}, nil
	}

	av, err := Parse(s)
	if err != nil {
		return Ref{}, err
	}

	return Ref{AV: &av, Raw: s}, nil
}

// Scope 返回按引用过滤的查询条件.
func (r Ref) Scope(db *gorm.DB) *gorm.DB {
	if r.AV != nil {
		return db.Where("accession = ? AND version = ?", r.AV.Accession, r.AV.Version)
	}

	return db.Where("id = ?", r.ID)
}

// Find 按引用加载实体，scopes 通常包含可见性过滤.
func Find[T any](ctx context.Context, db *gorm.DB, entity string, ref Ref,
	scopes ...func(*gorm.DB) *gorm.DB) (*T, error) {
	var out T

	err := db.WithContext(ctx).Scopes(scopes...).Scopes(ref.Scope).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound(entity, ref.Raw)
	}

	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w", entity, ref.Raw, err)
	}

	return &out, nil
}

// ResolveLatest 返回 accession 下版本号最大的可见实体；全部版本不可见时与不存在相同.
func ResolveLatest[T any](ctx context.Context, db *gorm.DB, entity, accession string,
	scopes ...func(*gorm.DB) *gorm.DB) (*T, error) {
	if strings.TrimSpace(accession) == "" {
		return nil, errs.Field("accession", "may not be null")
	}

	var out T

	err := db.WithContext(ctx).
		Scopes(scopes...).
		Where("accession = ?", accession).
		Order("version DESC").
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound(entity, accession)
	}

	if err != nil {
		return nil, fmt.Errorf("resolve latest %s %s: %w", entity, accession, err)
	}

	return &out, nil
}

// Exists 判断同类实体中是否已存在该标识，excludeID 非 0 时排除自身.
func Exists(ctx context.Context, db *gorm.DB, model any, av AccessionVersion, excludeID uint) (bool, error) {
	var n int64

	q := db.WithContext(ctx).Model(model).Where("accession = ? AND version = ?", av.Accession, av.Version)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check identity %s: %w", av, err)
	}

	return n > 0, nil
}

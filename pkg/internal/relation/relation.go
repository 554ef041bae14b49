// Package relation 在写事务内校验实体之间的关联：存在性、基数与类型一致性.
// 任意规则失败都会使整个写入回滚，不会留下部分更新的关联.
package relation

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/identity"
	"github.com/yeisme/genovault/pkg/internal/model"
)

// Change 一次写入涉及的关联字段，nil 表示本次写入不触及该字段.
type Change struct {
	// Model 被写入的实体模型，用于标识唯一性检查，如 &model.Study{}.
	Model    any
	Entity   string
	EntityID uint
	Identity *identity.AccessionVersion

	ReferenceSequences *[]uint
	Taxonomies         *[]uint
	Study              *uint
	Taxonomy           *uint
	Files              *[]uint
	Ancestors          *[]uint
}

// Rule 一条在事务内执行的校验规则.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, tx *gorm.DB, c Change) error
}

// Engine 按注册顺序执行规则，遇到第一个失败即停止.
type Engine struct {
	rules    []Rule
	onReject func(rule string, err error)
}

// NewEngine 创建空引擎.
func NewEngine() *Engine {
	return &Engine{}
}

// NewDefaultEngine 注册目录使用的全部规则.
func NewDefaultEngine() *Engine {
	e := NewEngine()
	e.Register(IdentityRule{})
	e.Register(StudyRule{})
	e.Register(StudyTaxonomyRule{})
	e.Register(ReferenceSequencesRule{})
	e.Register(TaxonomiesRule{})
	e.Register(FilesRule{})
	e.Register(AncestorsRule{})

	return e
}

// Register 追加规则.
func (e *Engine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// OnReject 设置规则拒绝时的回调，用于指标统计.
func (e *Engine) OnReject(fn func(rule string, err error)) {
	e.onReject = fn
}

// Evaluate 执行全部规则.
func (e *Engine) Evaluate(ctx context.Context, tx *gorm.DB, c Change) error {
	for _, r := range e.rules {
		if err := r.Evaluate(ctx, tx, c); err != nil {
			if e.onReject != nil {
				e.onReject(r.Name(), err)
			}

			return err
		}
	}

	return nil
}

// Normalize 去掉 0 与重复 id，保持首次出现的顺序.
func Normalize(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))

	for _, id := range ids {
		if id == 0 {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

// missing 返回 ids 中在表内不存在的 id，保持输入顺序.
func missing(ctx context.Context, tx *gorm.DB, m any, ids []uint) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	if err := tx.WithContext(ctx).Model(m).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("resolve references: %w", err)
	}

	var out []string

	for _, id := range ids {
		if !slices.Contains(found, id) {
			out = append(out, strconv.FormatUint(uint64(id), 10))
		}
	}

	return out, nil
}

// IdentityRule 同类实体中 (accession, version) 唯一.
type IdentityRule struct{}

func (IdentityRule) Name() string { return "identity_unique" }

func (IdentityRule) Evaluate(ctx context.Context, tx *gorm.DB, c Change) error {
	if c.Identity == nil || c.Model == nil {
		return nil
	}

	exists, err := identity.Exists(ctx, tx, c.Model, *c.Identity, c.EntityID)
	if err != nil {
		return err
	}

	if exists {
		return errs.DuplicateIdentity(c.Entity, c.Identity.Accession, c.Identity.Version)
	}

	return nil
}

// StudyRule 分析必须指向存在的研究.
type StudyRule struct{}

func (StudyRule) Name() string { return "analysis_study" }

func (StudyRule) Evaluate(ctx context.Context, tx *gorm.DB, c Change) error {
	if c.Study == nil {
		return nil
	}

	miss, err := missing(ctx, tx, &model.Study{}, []uint{*c.Study})
	if err != nil {
		return err
	}

	if len(miss) > 0 || *c.Study == 0 {
		return errs.InvalidReference("study", strconv.FormatUint(uint64(*c.Study), 10))
	}

	return nil
}

// StudyTaxonomyRule 研究必须指向存在的分类.
type StudyTaxonomyRule struct{}

func (StudyTaxonomyRule) Name() string { return "study_taxonomy" }

func (StudyTaxonomyRule) Evaluate(ctx context.Context, tx *gorm.DB, c Change) error {
	if c.Taxonomy == nil {
		return nil
	}

	miss, err := missing(ctx, tx, &model.Taxonomy{}, []uint{*c.Taxonomy})
	if err != nil {
		return err
	}

	if len(miss) > 0 || *c.Taxonomy == 0 {
		return errs.InvalidReference("taxonomy", strconv.FormatUint(uint64(*c.Taxonomy), 10))
	}

	return nil
}

// ReferenceSequencesRule 分析至少有一个参考序列；多于一个时必须全部为 GENE.
type ReferenceSequencesRule struct{}

func (ReferenceSequencesRule) Name() string { return "analysis_reference_sequences" }

func (ReferenceSequencesRule) Evaluate(ctx context.Context, tx *gorm.DB, c Change) error {
	if c.ReferenceSequences == nil {
		return nil
	}

	ids := Normalize(*c.ReferenceSequences)
	if len(ids) == 0 {
		return errs.AnalysisWithoutReferenceSequence()
	}

	var refs []model.ReferenceSequence
	if err := tx.WithContext(ctx).Where("id IN ?", ids).Find(&refs).Error; err != nil {
		return fmt.Errorf("load reference sequences: %w", err)
	}

	types := make(map[uint]model.ReferenceSequenceType, len(refs))
	for _, r := range refs {
		types[r.ID] = r.Type
	}

	var unresolved []string

	for _, id := range ids {
		if _, ok := types[id]; !ok {
			unresolved = append(unresolved, strconv.FormatUint(uint64(id), 10))
		}
	}

	if len(unresolved) > 0 {
		return errs.InvalidReference("reference sequence", unresolved...)
	}

	if len(ids) == 1 {
		return nil
	}

	var offending []string

	for _, id := range ids {
		if types[id] != model.ReferenceGene {
			offending = append(offending, strconv.FormatUint(uint64(id), 10))
		}
	}

	if len(offending) > 0 {
		return errs.InvalidReferenceType(offending...)
	}

	return nil
}

// TaxonomiesRule 样本至少关联一个存在的分类.
type TaxonomiesRule struct{}

func (TaxonomiesRule) Name() string { return "sample_taxonomies" }

func (TaxonomiesRule) Evaluate(ctx context.Context, tx *gorm.DB, c Change) error {
	if c.Taxonomies == nil {
		return nil
	}

	ids := Normalize(*c.Taxonomies)
	if len(ids) == 0 {
		return errs.SampleWithoutTaxonomy()
	}

	miss, err := missing(ctx, tx, &model.Taxonomy{}, ids)
	if err != nil {
		return err
	}

	if len(miss) > 0 {
		return errs.InvalidReference("taxonomy", miss...)
	}

	return nil
}

// FilesRule 分析引用的文件必须存在，允许为空.
type FilesRule struct{}

func (FilesRule) Name() string { return "analysis_files" }

func (FilesRule) Evaluate(ctx context.Context, tx *gorm.DB, c Change) error {
	if c.Files == nil {
		return nil
	}

	miss, err := missing(ctx, tx, &model.File{}, Normalize(*c.Files))
	if err != nil {
		return err
	}

	if len(miss) > 0 {
		return errs.InvalidReference("file", miss...)
	}

	return nil
}

// AncestorsRule 分类的祖先必须存在且不能是自身.
type AncestorsRule struct{}

func (AncestorsRule) Name() string { return "taxonomy_ancestors" }

func (AncestorsRule) Evaluate(ctx context.Context, tx *gorm.DB, c Change) error {
	if c.Ancestors == nil {
		return nil
	}

	ids := Normalize(*c.Ancestors)
	if c.EntityID != 0 && slices.Contains(ids, c.EntityID) {
		return errs.InvalidReference("taxonomy", strconv.FormatUint(uint64(c.EntityID), 10))
	}

	miss, err := missing(ctx, tx, &model.Taxonomy{}, ids)
	if err != nil {
		return err
	}

	if len(miss) > 0 {
		return errs.InvalidReference("taxonomy", miss...)
	}

	return nil
}

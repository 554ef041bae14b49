// Package linkgraph 维护研究之间的对称关联.
//
// Link 用解析后的目标集合替换发起方的关联：每个目标获得指向发起方与其它目标的反向边，
// 被移出集合的研究同时删除指向发起方的边，因此任意时刻 A 关联 B 当且仅当 B 关联 A.
// 不存在的目标被静默丢弃.
package linkgraph

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/relation"
)

// Maintainer 关联维护器.
type Maintainer struct {
	// lockRows 为 true 时在读取修订号时加 FOR UPDATE，SQLite 不支持.
	lockRows bool
}

// New 创建维护器.
func New(lockRows bool) *Maintainer {
	return &Maintainer{lockRows: lockRows}
}

// Result 一次链接的结果.
type Result struct {
	// Linked 发起方最终的关联集合.
	Linked []uint
	// Dropped 输入中无法解析而被丢弃的目标.
	Dropped []uint
	// Touched 修订号被递增的研究.
	Touched []uint
}

type revision struct {
	ID       uint
	Revision int64
}

// Link 必须在事务内调用，冲突时返回 errs.KindConflict，由调用方重试整个事务.
func (m *Maintainer) Link(ctx context.Context, tx *gorm.DB, actingID uint, targets []uint) (Result, error) {
	tx = tx.WithContext(ctx)
	wanted := slices.DeleteFunc(relation.Normalize(targets), func(id uint) bool { return id == actingID })

	resolved, err := existing(tx, wanted)
	if err != nil {
		return Result{}, err
	}

	var res Result

	for _, id := range wanted {
		if slices.Contains(resolved, id) {
			res.Linked = append(res.Linked, id)
		} else {
			res.Dropped = append(res.Dropped, id)
		}
	}

	var previous []uint
	if err := tx.Model(&model.StudyLink{}).Where("study_id = ?", actingID).Pluck("linked_study_id", &previous).Error; err != nil {
		return Result{}, fmt.Errorf("load links of study %d: %w", actingID, err)
	}

	removed := make([]uint, 0, len(previous))

	for _, id := range previous {
		if !slices.Contains(res.Linked, id) {
			removed = append(removed, id)
		}
	}

	res.Touched = relation.Normalize(append(append([]uint{actingID}, res.Linked...), removed...))
	slices.Sort(res.Touched)

	revs, err := m.readRevisions(tx, res.Touched)
	if err != nil {
		return Result{}, err
	}

	// 发起方的集合整体替换
	if err := tx.Where("study_id = ?", actingID).Delete(&model.StudyLink{}).Error; err != nil {
		return Result{}, fmt.Errorf("clear links of study %d: %w", actingID, err)
	}

	// 被移出的研究删除反向边
	if len(removed) > 0 {
		if err := tx.Where("study_id IN ? AND linked_study_id = ?", removed, actingID).
			Delete(&model.StudyLink{}).Error; err != nil {
			return Result{}, fmt.Errorf("clear back-links of study %d: %w", actingID, err)
		}
	}

	edges := make([]model.StudyLink, 0, len(res.Linked)*(len(res.Linked)+1))
	group := append([]uint{actingID}, res.Linked...)

	for _, a := range group {
		for _, b := range group {
			if a != b {
				edges = append(edges, model.StudyLink{StudyID: a, LinkedStudyID: b})
			}
		}
	}

	if len(edges) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error; err != nil {
			return Result{}, fmt.Errorf("write links of study %d: %w", actingID, err)
		}
	}

	if err := bumpRevisions(tx, revs); err != nil {
		return Result{}, err
	}

	return res, nil
}

func existing(tx *gorm.DB, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	if err := tx.Model(&model.Study{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("resolve linked studies: %w", err)
	}

	return found, nil
}

func (m *Maintainer) readRevisions(tx *gorm.DB, ids []uint) ([]revision, error) {
	q := tx.Model(&model.Study{}).Select("id", "revision").Where("id IN ?", ids).Order("id")
	if m.lockRows {
		q = q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var revs []revision
	if err := q.Find(&revs).Error; err != nil {
		return nil, fmt.Errorf("read study revisions: %w", err)
	}

	return revs, nil
}

func bumpRevisions(tx *gorm.DB, revs []revision) error {
	for _, r := range revs {
		res := tx.Model(&model.Study{}).
			Where("id = ? AND revision = ?", r.ID, r.Revision).
			Update("revision", gorm.Expr("revision + 1"))
		if res.Error != nil {
			return fmt.Errorf("bump revision of study %d: %w", r.ID, res.Error)
		}

		if res.RowsAffected == 0 {
			return errs.Conflict("study", strconv.FormatUint(uint64(r.ID), 10), nil)
		}
	}

	return nil
}

// LinkedIDs 返回研究的全部关联 id（不做可见性过滤），按 id 升序.
func LinkedIDs(ctx context.Context, db *gorm.DB, studyID uint) ([]uint, error) {
	var ids []uint

	err := db.WithContext(ctx).Model(&model.StudyLink{}).
		Where("study_id = ?", studyID).
		Order("linked_study_id").
		Pluck("linked_study_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load links of study %d: %w", studyID, err)
	}

	return ids, nil
}

// Linked 返回可见的关联研究，visible 为可见性过滤条件.
func Linked(ctx context.Context, db *gorm.DB, studyID uint, visible func(*gorm.DB) *gorm.DB) ([]model.Study, error) {
	var out []model.Study

	err := db.WithContext(ctx).
		Model(&model.Study{}).
		Joins("JOIN study_links ON study_links.linked_study_id = studies.id").
		Where("study_links.study_id = ?", studyID).
		Scopes(visible).
		Order("studies.id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list linked studies of %d: %w", studyID, err)
	}

	return out, nil
}

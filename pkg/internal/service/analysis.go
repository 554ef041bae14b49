package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/identity"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/query"
	"github.com/yeisme/genovault/pkg/internal/relation"
	"github.com/yeisme/genovault/pkg/internal/types"
	"github.com/yeisme/genovault/pkg/queue"
)

const entityAnalysis = "analysis"

// AnalysisSortable 分析列表允许的排序字段.
var AnalysisSortable = map[string]string{
	"id":       "analyses.id",
	"name":     "analyses.name",
	"platform": "analyses.platform",
}

type AnalysisService struct {
	*Catalog
}

func NewAnalysisService(ctx context.Context) *AnalysisService {
	return &AnalysisService{Catalog: FromContext(ctx)}
}

// Analyses 返回分析服务.
func (c *Catalog) Analyses() *AnalysisService { return &AnalysisService{Catalog: c} }

// Create 创建分析并写入参考序列与文件关联.
func (s *AnalysisService) Create(ctx context.Context, req *types.AnalysisCreateRequest) (*types.AnalysisResponse, error) {
	row := model.Analysis{
		Name:        req.Name,
		Description: req.Description,
		StudyID:     *req.Study,
		Technology:  req.Technology,
		Type:        req.Type,
		Platform:    req.Platform,
	}

	av := req.AccessionVersionID.Value()
	if av != nil {
		row.Accession, row.Version = &av.Accession, &av.Version
	}

	refs := req.ReferenceSequences
	files := req.Files

	err := s.inTx(ctx, entityAnalysis, "create", func(tx *gorm.DB) error {
		row.ID = 0

		change := relation.Change{
			Model:              &model.Analysis{},
			Entity:             entityAnalysis,
			Identity:           av,
			Study:              req.Study,
			ReferenceSequences: &refs,
			Files:              &files,
		}
		if err := s.rules.Evaluate(ctx, tx, change); err != nil {
			return err
		}

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create analysis: %w", err)
		}

		if err := replaceAnalysisRefs(tx, row.ID, refs); err != nil {
			return err
		}

		return replaceAnalysisFiles(tx, row.ID, files)
	})
	if err != nil {
		return nil, err
	}

	normalized := relation.Normalize(refs)

	s.emit(ctx, queue.TopicAnalysisCreated, func(e *queue.Emitter, h ...queue.HeaderOption) error {
		p := queue.AnalysisCreatedPayload{ID: row.ID, Study: row.StudyID, ReferenceSequences: normalized}
		if av != nil {
			p.Accession, p.Version = av.Accession, av.Version
		}

		return e.AnalysisCreated(p, h...)
	})

	out := types.NewAnalysisResponse(&row, normalized, relation.Normalize(files))

	return &out, nil
}

// Get 按 id 或 accession.version 获取分析.
func (s *AnalysisService) Get(ctx context.Context, raw string) (*types.AnalysisResponse, error) {
	row, err := s.find(ctx, s.db, raw)
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, []model.Analysis{*row}, nil)
	if err != nil {
		return nil, err
	}

	return &views.Analyses[0], nil
}

func (s *AnalysisService) find(ctx context.Context, db *gorm.DB, raw string, scopes ...func(*gorm.DB) *gorm.DB) (*model.Analysis, error) {
	ref, err := identity.ParseRef(raw)
	if err != nil {
		return nil, notFoundAs(entityAnalysis, err)
	}

	return identity.Find[model.Analysis](ctx, db, entityAnalysis, ref, scopes...)
}

// List 分页列出分析.
func (s *AnalysisService) List(ctx context.Context, p query.Page) (*types.AnalysisListResponse, error) {
	return s.list(ctx, p)
}

// Search type 与 technology 精确匹配（需为合法枚举），platform 忽略大小写.
func (s *AnalysisService) Search(ctx context.Context, typ, technology, platform string, p query.Page) (*types.AnalysisListResponse, error) {
	var filters []query.Filter

	if typ != "" {
		t := model.AnalysisType(strings.ToUpper(typ))
		if !t.Valid() {
			return nil, errs.Field("type", "invalid value "+typ)
		}

		filters = append(filters, query.Eq("analyses.type", t))
	}

	if technology != "" {
		t := model.Technology(strings.ToUpper(technology))
		if !t.Valid() {
			return nil, errs.Field("technology", "invalid value "+technology)
		}

		filters = append(filters, query.Eq("analyses.technology", t))
	}

	if platform != "" {
		filters = append(filters, query.IEq("analyses.platform", platform))
	}

	return s.list(ctx, p, filters...)
}

func (s *AnalysisService) list(ctx context.Context, p query.Page, filters ...query.Filter) (*types.AnalysisListResponse, error) {
	rows, info, err := page[model.Analysis](ctx, s.db, p, "analyses.id", filters...)
	if err != nil {
		return nil, err
	}

	return s.views(ctx, rows, &info)
}

// Update 部分更新分析，列表字段整体替换.
func (s *AnalysisService) Update(ctx context.Context, raw string, req *types.AnalysisUpdateRequest) (*types.AnalysisResponse, error) {
	var row *model.Analysis

	av := req.AccessionVersionID.Value()

	err := s.inTx(ctx, entityAnalysis, "update", func(tx *gorm.DB) error {
		var err error

		row, err = s.find(ctx, tx, raw, s.lockFor)
		if err != nil {
			return err
		}

		change := relation.Change{
			Model:              &model.Analysis{},
			Entity:             entityAnalysis,
			EntityID:           row.ID,
			Identity:           av,
			Study:              req.Study,
			ReferenceSequences: req.ReferenceSequences,
			Files:              req.Files,
		}
		if err := s.rules.Evaluate(ctx, tx, change); err != nil {
			return err
		}

		if err := tx.Model(row).Updates(analysisUpdates(req, av)).Error; err != nil {
			return fmt.Errorf("update analysis %d: %w", row.ID, err)
		}

		if req.ReferenceSequences != nil {
			if err := replaceAnalysisRefs(tx, row.ID, *req.ReferenceSequences); err != nil {
				return err
			}
		}

		if req.Files != nil {
			if err := replaceAnalysisFiles(tx, row.ID, *req.Files); err != nil {
				return err
			}
		}

		return tx.Take(row, row.ID).Error
	})
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, []model.Analysis{*row}, nil)
	if err != nil {
		return nil, err
	}

	return &views.Analyses[0], nil
}

func analysisUpdates(req *types.AnalysisUpdateRequest, av *identity.AccessionVersion) map[string]any {
	u := map[string]any{}

	if av != nil {
		u["accession"], u["version"] = av.Accession, av.Version
	}

	if req.Name != nil {
		u["name"] = *req.Name
	}

	if req.Description != nil {
		u["description"] = *req.Description
	}

	if req.Study != nil {
		u["study_id"] = *req.Study
	}

	if req.Technology != nil {
		u["technology"] = *req.Technology
	}

	if req.Type != nil {
		u["type"] = *req.Type
	}

	if req.Platform != nil {
		u["platform"] = *req.Platform
	}

	return u
}

// ReferenceSequences 返回分析的参考序列，保持写入顺序.
func (s *AnalysisService) ReferenceSequences(ctx context.Context, raw string) (*types.ReferenceSequenceListResponse, error) {
	row, err := s.find(ctx, s.db, raw)
	if err != nil {
		return nil, err
	}

	var refs []model.ReferenceSequence

	err = s.db.WithContext(ctx).
		Joins("JOIN analysis_reference_sequences ars ON ars.reference_sequence_id = reference_sequences.id").
		Where("ars.analysis_id = ?", row.ID).
		Order("ars.position").
		Find(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("list reference sequences of analysis %d: %w", row.ID, err)
	}

	out := types.NewReferenceSequenceList(refs, nil)

	return &out, nil
}

// RemoveReferenceSequence 移除单个参考序列，剩余集合仍须满足基数与类型规则.
func (s *AnalysisService) RemoveReferenceSequence(ctx context.Context, raw string, refID uint) error {
	return s.inTx(ctx, entityAnalysis, "remove_reference_sequence", func(tx *gorm.DB) error {
		row, err := s.find(ctx, tx, raw, s.lockFor)
		if err != nil {
			return err
		}

		current, err := analysisRefIDs(tx, row.ID)
		if err != nil {
			return err
		}

		remaining := make([]uint, 0, len(current))
		found := false

		for _, id := range current {
			if id == refID {
				found = true
				continue
			}

			remaining = append(remaining, id)
		}

		if !found {
			return errs.NotFound("reference sequence", strconv.FormatUint(uint64(refID), 10))
		}

		if err := s.rules.Evaluate(ctx, tx, relation.Change{Entity: entityAnalysis, EntityID: row.ID, ReferenceSequences: &remaining}); err != nil {
			return err
		}

		if err := tx.Where("analysis_id = ? AND reference_sequence_id = ?", row.ID, refID).
			Delete(&model.AnalysisReferenceSequence{}).Error; err != nil {
			return fmt.Errorf("remove reference sequence %d from analysis %d: %w", refID, row.ID, err)
		}

		return touch(tx, row)
	})
}

// views 批量加载关联 id 并转为响应.
func (s *AnalysisService) views(ctx context.Context, rows []model.Analysis, info *query.PageInfo) (*types.AnalysisListResponse, error) {
	out := &types.AnalysisListResponse{Analyses: make([]types.AnalysisResponse, 0, len(rows)), Page: info}
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	var refLinks []model.AnalysisReferenceSequence
	if err := s.db.WithContext(ctx).Where("analysis_id IN ?", ids).Order("analysis_id, position").Find(&refLinks).Error; err != nil {
		return nil, fmt.Errorf("load analysis reference sequences: %w", err)
	}

	var fileLinks []model.AnalysisFile
	if err := s.db.WithContext(ctx).Where("analysis_id IN ?", ids).Order("analysis_id, file_id").Find(&fileLinks).Error; err != nil {
		return nil, fmt.Errorf("load analysis files: %w", err)
	}

	refs := map[uint][]uint{}
	for _, l := range refLinks {
		refs[l.AnalysisID] = append(refs[l.AnalysisID], l.ReferenceSequenceID)
	}

	files := map[uint][]uint{}
	for _, l := range fileLinks {
		files[l.AnalysisID] = append(files[l.AnalysisID], l.FileID)
	}

	for i := range rows {
		out.Analyses = append(out.Analyses, types.NewAnalysisResponse(&rows[i], refs[rows[i].ID], files[rows[i].ID]))
	}

	return out, nil
}

func analysisRefIDs(tx *gorm.DB, analysisID uint) ([]uint, error) {
	var ids []uint

	err := tx.Model(&model.AnalysisReferenceSequence{}).
		Where("analysis_id = ?", analysisID).
		Order("position").
		Pluck("reference_sequence_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load reference sequences of analysis %d: %w", analysisID, err)
	}

	return ids, nil
}

func replaceAnalysisRefs(tx *gorm.DB, analysisID uint, refs []uint) error {
	if err := tx.Where("analysis_id = ?", analysisID).Delete(&model.AnalysisReferenceSequence{}).Error; err != nil {
		return fmt.Errorf("clear reference sequences of analysis %d: %w", analysisID, err)
	}

	ids := relation.Normalize(refs)
	if len(ids) == 0 {
		return nil
	}

	rows := make([]model.AnalysisReferenceSequence, 0, len(ids))
	for i, id := range ids {
		rows = append(rows, model.AnalysisReferenceSequence{AnalysisID: analysisID, ReferenceSequenceID: id, Position: i})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("write reference sequences of analysis %d: %w", analysisID, err)
	}

	return nil
}

func replaceAnalysisFiles(tx *gorm.DB, analysisID uint, files []uint) error {
	if err := tx.Where("analysis_id = ?", analysisID).Delete(&model.AnalysisFile{}).Error; err != nil {
		return fmt.Errorf("clear files of analysis %d: %w", analysisID, err)
	}

	return attachFiles(tx, analysisID, relation.Normalize(files))
}

// attachFiles 追加文件关联，已存在的关联保持不变.
func attachFiles(tx *gorm.DB, analysisID uint, files []uint) error {
	if len(files) == 0 {
		return nil
	}

	rows := make([]model.AnalysisFile, 0, len(files))
	for _, id := range files {
		rows = append(rows, model.AnalysisFile{AnalysisID: analysisID, FileID: id})
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("write files of analysis %d: %w", analysisID, err)
	}

	return nil
}

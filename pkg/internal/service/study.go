package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/identity"
	"github.com/yeisme/genovault/pkg/internal/linkgraph"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/query"
	"github.com/yeisme/genovault/pkg/internal/relation"
	"github.com/yeisme/genovault/pkg/internal/types"
	"github.com/yeisme/genovault/pkg/metrics"
	"github.com/yeisme/genovault/pkg/queue"
)

const entityStudy = "study"

// StudySortable 研究列表允许的排序字段.
var StudySortable = map[string]string{
	"id":          "studies.id",
	"name":        "studies.name",
	"releaseDate": "studies.release_date",
	"center":      "studies.center",
}

type StudyService struct {
	*Catalog
}

func NewStudyService(ctx context.Context) *StudyService {
	return &StudyService{Catalog: FromContext(ctx)}
}

// Studies 返回研究服务.
func (c *Catalog) Studies() *StudyService { return &StudyService{Catalog: c} }

// Create 创建研究，childStudies 中无法解析的 id 被忽略.
func (s *StudyService) Create(ctx context.Context, req *types.StudyCreateRequest) (*types.StudyResponse, error) {
	row := model.Study{
		Name:        req.Name,
		Description: req.Description,
		Center:      req.Center,
		TaxonomyID:  *req.Taxonomy,
		ReleaseDate: *req.ReleaseDate,
		Deprecated:  req.Deprecated,
		Browsable:   req.Browsable,
	}

	av := req.AccessionVersionID.Value()
	if av != nil {
		row.Accession, row.Version = &av.Accession, &av.Version
	}

	var linked linkgraph.Result

	err := s.inTx(ctx, entityStudy, "create", func(tx *gorm.DB) error {
		row.ID, row.Revision = 0, 0

		change := relation.Change{Model: &model.Study{}, Entity: entityStudy, Identity: av, Taxonomy: req.Taxonomy}
		if err := s.rules.Evaluate(ctx, tx, change); err != nil {
			return err
		}

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create study: %w", err)
		}

		if len(req.ChildStudies) == 0 {
			return nil
		}

		var err error

		linked, err = s.links.Link(ctx, tx, row.ID, req.ChildStudies)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.emitStudy(ctx, queue.TopicStudyCreated, &row)

	if len(req.ChildStudies) > 0 {
		s.emitLinked(ctx, &row, linked)
	}

	out := types.NewStudyResponse(&row)

	return &out, nil
}

// Get 按 id 或 accession.version 获取可见研究.
func (s *StudyService) Get(ctx context.Context, raw string) (*types.StudyResponse, error) {
	row, err := s.visibleStudy(ctx, raw)
	if err != nil {
		return nil, err
	}

	out := types.NewStudyResponse(row)

	return &out, nil
}

func (s *StudyService) visibleStudy(ctx context.Context, raw string) (*model.Study, error) {
	ref, err := identity.ParseRef(raw)
	if err != nil {
		return nil, notFoundAs(entityStudy, err)
	}

	return identity.Find[model.Study](ctx, s.db, entityStudy, ref, s.visible.Scope)
}

// List 分页列出可见研究.
func (s *StudyService) List(ctx context.Context, p query.Page) (*types.StudyListResponse, error) {
	return s.search(ctx, p)
}

// Update 部分更新研究；不可见的研究同样可以更新，以便撤销弃用或调整发布日期.
// 更新后研究仍不可见时返回 nil 响应，调用方不得回显其内容.
func (s *StudyService) Update(ctx context.Context, raw string, req *types.StudyUpdateRequest) (*types.StudyResponse, error) {
	ref, err := identity.ParseRef(raw)
	if err != nil {
		return nil, notFoundAs(entityStudy, err)
	}

	var (
		row    *model.Study
		linked linkgraph.Result
	)

	av := req.AccessionVersionID.Value()

	err = s.inTx(ctx, entityStudy, "update", func(tx *gorm.DB) error {
		var err error

		row, err = identity.Find[model.Study](ctx, tx, entityStudy, ref, s.lockFor)
		if err != nil {
			return err
		}

		change := relation.Change{Model: &model.Study{}, Entity: entityStudy, EntityID: row.ID, Identity: av, Taxonomy: req.Taxonomy}
		if err := s.rules.Evaluate(ctx, tx, change); err != nil {
			return err
		}

		updates := studyUpdates(req, av)
		if len(updates) > 0 {
			updates["revision"] = row.Revision + 1

			res := tx.Model(row).Where("revision = ?", row.Revision).Updates(updates)
			if res.Error != nil {
				return fmt.Errorf("update study %d: %w", row.ID, res.Error)
			}

			if res.RowsAffected == 0 {
				return errs.Conflict(entityStudy, strconv.FormatUint(uint64(row.ID), 10), nil)
			}
		}

		if req.ChildStudies != nil {
			if linked, err = s.links.Link(ctx, tx, row.ID, *req.ChildStudies); err != nil {
				return err
			}
		}

		return tx.Take(row, row.ID).Error
	})
	if err != nil {
		return nil, err
	}

	s.emitStudy(ctx, queue.TopicStudyUpdated, row)

	if req.ChildStudies != nil {
		s.emitLinked(ctx, row, linked)
	}

	if !s.visible.Study(row) {
		return nil, nil
	}

	out := types.NewStudyResponse(row)

	return &out, nil
}

func studyUpdates(req *types.StudyUpdateRequest, av *identity.AccessionVersion) map[string]any {
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

	if req.Center != nil {
		u["center"] = *req.Center
	}

	if req.Taxonomy != nil {
		u["taxonomy_id"] = *req.Taxonomy
	}

	if req.ReleaseDate != nil {
		u["release_date"] = *req.ReleaseDate
	}

	if req.Deprecated != nil {
		u["deprecated"] = *req.Deprecated
	}

	if req.Browsable != nil {
		u["browsable"] = *req.Browsable
	}

	return u
}

// LinkedStudies 返回可见研究的可见关联研究.
func (s *StudyService) LinkedStudies(ctx context.Context, raw string) (*types.StudyListResponse, error) {
	row, err := s.visibleStudy(ctx, raw)
	if err != nil {
		return nil, err
	}

	rows, err := linkgraph.Linked(ctx, s.db, row.ID, s.visible.Scope)
	if err != nil {
		return nil, err
	}

	out := types.NewStudyList(rows, nil)

	return &out, nil
}

// Analyses 返回研究下的分析，研究不可见时返回未找到.
func (s *StudyService) Analyses(ctx context.Context, raw string) (*types.AnalysisListResponse, error) {
	row, err := s.visibleStudy(ctx, raw)
	if err != nil {
		return nil, err
	}

	var rows []model.Analysis
	if err := s.db.WithContext(ctx).Where("study_id = ?", row.ID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list analyses of study %d: %w", row.ID, err)
	}

	return s.Catalog.Analyses().views(ctx, rows, nil)
}

// Relink 替换研究的关联集合，供批处理使用.
func (s *StudyService) Relink(ctx context.Context, id uint, targets []uint) ([]uint, error) {
	var res linkgraph.Result

	err := s.inTx(ctx, entityStudy, "link", func(tx *gorm.DB) error {
		var err error

		res, err = s.links.Link(ctx, tx, id, targets)

		return err
	})
	if err != nil {
		return nil, err
	}

	var row model.Study
	if err := s.db.WithContext(ctx).Take(&row, id).Error; err == nil {
		s.emitLinked(ctx, &row, res)
	}

	return res.Linked, nil
}

func (s *StudyService) emitStudy(ctx context.Context, topic string, row *model.Study) {
	p := queue.StudyChangedPayload{
		Study:       studyRef(row),
		Name:        row.Name,
		ReleaseDate: row.ReleaseDate.String(),
		Visible:     s.visible.Study(row),
	}

	s.emit(ctx, topic, func(e *queue.Emitter, h ...queue.HeaderOption) error {
		if topic == queue.TopicStudyCreated {
			return e.StudyCreated(p, h...)
		}

		return e.StudyUpdated(p, h...)
	})
}

func (s *StudyService) emitLinked(ctx context.Context, row *model.Study, res linkgraph.Result) {
	metrics.LinkSetSize.Observe(float64(len(res.Linked)))

	s.emit(ctx, queue.TopicStudyLinked, func(e *queue.Emitter, h ...queue.HeaderOption) error {
		return e.StudyLinked(queue.StudyLinkedPayload{Study: studyRef(row), Linked: res.Linked, Dropped: res.Dropped}, h...)
	})
}

func studyRef(row *model.Study) queue.StudyRef {
	ref := queue.StudyRef{ID: row.ID}
	if row.Accession != nil && row.Version != nil {
		ref.Accession, ref.Version = *row.Accession, *row.Version
	}

	return ref
}

// notFoundAs 路径中数字 id 为 0 时补上实体名.
func notFoundAs(entity string, err error) error {
	var e *errs.Error
	if errors.As(err, &e) && e.Kind == errs.KindNotFound && len(e.IDs) == 1 {
		return errs.NotFound(entity, e.IDs[0])
	}

	return err
}

// AnnounceReleases 为发布日期恰好是今天且未弃用的研究发布 gv.study.released，返回通知数量.
func (s *StudyService) AnnounceReleases(ctx context.Context) (int, error) {
	today := model.NewDate(s.visible.Now())

	var rows []model.Study

	err := s.db.WithContext(ctx).
		Where("deprecated = ? AND release_date = ?", false, today).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("list studies released on %s: %w", today, err)
	}

	for i := range rows {
		p := queue.StudyReleasedPayload{Study: studyRef(&rows[i]), ReleaseDate: rows[i].ReleaseDate.String()}

		s.emit(ctx, queue.TopicStudyReleased, func(e *queue.Emitter, h ...queue.HeaderOption) error {
			return e.StudyReleased(p, h...)
		})
	}

	return len(rows), nil
}

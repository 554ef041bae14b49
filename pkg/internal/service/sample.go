package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/identity"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/query"
	"github.com/yeisme/genovault/pkg/internal/relation"
	"github.com/yeisme/genovault/pkg/internal/taxonomy"
	"github.com/yeisme/genovault/pkg/internal/types"
)

const entitySample = "sample"

// SampleSortable 样本列表允许的排序字段.
var SampleSortable = map[string]string{
	"id":   "samples.id",
	"name": "samples.name",
}

type SampleService struct {
	*Catalog
}

func NewSampleService(ctx context.Context) *SampleService {
	return &SampleService{Catalog: FromContext(ctx)}
}

// Samples 返回样本服务.
func (c *Catalog) Samples() *SampleService { return &SampleService{Catalog: c} }

// Create 创建样本，至少关联一个分类.
func (s *SampleService) Create(ctx context.Context, req *types.SampleCreateRequest) (*types.SampleResponse, error) {
	row := model.Sample{Name: req.Name}

	av := req.AccessionVersionID.Value()
	if av != nil {
		row.Accession, row.Version = &av.Accession, &av.Version
	}

	taxa := req.Taxonomies

	err := s.inTx(ctx, entitySample, "create", func(tx *gorm.DB) error {
		row.ID = 0

		change := relation.Change{Model: &model.Sample{}, Entity: entitySample, Identity: av, Taxonomies: &taxa}
		if err := s.rules.Evaluate(ctx, tx, change); err != nil {
			return err
		}

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create sample: %w", err)
		}

		return replaceSampleTaxonomies(tx, row.ID, taxa)
	})
	if err != nil {
		return nil, err
	}

	out := types.NewSampleResponse(&row, relation.Normalize(taxa))

	return &out, nil
}

// Get 按 id 或 accession.version 获取样本.
func (s *SampleService) Get(ctx context.Context, raw string) (*types.SampleResponse, error) {
	row, err := s.find(ctx, s.db, raw)
	if err != nil {
		return nil, err
	}

	list, err := s.views(ctx, []model.Sample{*row}, nil)
	if err != nil {
		return nil, err
	}

	return &list.Samples[0], nil
}

func (s *SampleService) find(ctx context.Context, db *gorm.DB, raw string, scopes ...func(*gorm.DB) *gorm.DB) (*model.Sample, error) {
	ref, err := identity.ParseRef(raw)
	if err != nil {
		return nil, notFoundAs(entitySample, err)
	}

	return identity.Find[model.Sample](ctx, db, entitySample, ref, scopes...)
}

// List 分页列出样本.
func (s *SampleService) List(ctx context.Context, p query.Page) (*types.SampleListResponse, error) {
	return s.list(ctx, p)
}

// Search 按分类名称或 NCBI 分类号搜索样本，包含后代分类.
func (s *SampleService) Search(ctx context.Context, taxonomyName, taxonomyID string, p query.Page) (*types.SampleListResponse, error) {
	var filters []query.Filter

	if taxonomyName != "" {
		roots, err := taxonomy.IDsByName(ctx, s.db, taxonomyName)
		if err != nil {
			return nil, err
		}

		f, err := s.taxonomyFilter(ctx, roots)
		if err != nil {
			return nil, err
		}

		filters = append(filters, f)
	}

	if taxonomyID != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(taxonomyID), 10, 64)
		if err != nil || id < 1 {
			return nil, errs.Field("taxonomies.taxonomyId", "must be greater than or equal to 1")
		}

		roots, err := taxonomy.IDsByTaxonomyID(ctx, s.db, id)
		if err != nil {
			return nil, err
		}

		f, err := s.taxonomyFilter(ctx, roots)
		if err != nil {
			return nil, err
		}

		filters = append(filters, f)
	}

	return s.list(ctx, p, filters...)
}

func (s *SampleService) taxonomyFilter(ctx context.Context, roots []uint) (query.Filter, error) {
	ids, err := taxonomy.Descendants(ctx, s.db, roots)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return query.In[uint]("samples.id", nil), nil
	}

	return query.Exists(s.db.Table("sample_taxonomies").Select("1").
		Where("sample_taxonomies.sample_id = samples.id AND sample_taxonomies.taxonomy_id IN ?", ids)), nil
}

func (s *SampleService) list(ctx context.Context, p query.Page, filters ...query.Filter) (*types.SampleListResponse, error) {
	rows, info, err := page[model.Sample](ctx, s.db, p, "samples.id", filters...)
	if err != nil {
		return nil, err
	}

	return s.views(ctx, rows, &info)
}

// Update 部分更新样本，taxonomies 整体替换.
func (s *SampleService) Update(ctx context.Context, raw string, req *types.SampleUpdateRequest) (*types.SampleResponse, error) {
	var row *model.Sample

	av := req.AccessionVersionID.Value()

	err := s.inTx(ctx, entitySample, "update", func(tx *gorm.DB) error {
		var err error

		row, err = s.find(ctx, tx, raw, s.lockFor)
		if err != nil {
			return err
		}

		change := relation.Change{Model: &model.Sample{}, Entity: entitySample, EntityID: row.ID, Identity: av, Taxonomies: req.Taxonomies}
		if err := s.rules.Evaluate(ctx, tx, change); err != nil {
			return err
		}

		u := map[string]any{}
		if av != nil {
			u["accession"], u["version"] = av.Accession, av.Version
		}

		if req.Name != nil {
			u["name"] = *req.Name
		}

		if err := tx.Model(row).Updates(u).Error; err != nil {
			return fmt.Errorf("update sample %d: %w", row.ID, err)
		}

		if req.Taxonomies != nil {
			if err := replaceSampleTaxonomies(tx, row.ID, *req.Taxonomies); err != nil {
				return err
			}
		}

		return tx.Take(row, row.ID).Error
	})
	if err != nil {
		return nil, err
	}

	list, err := s.views(ctx, []model.Sample{*row}, nil)
	if err != nil {
		return nil, err
	}

	return &list.Samples[0], nil
}

// Taxonomies 返回样本的分类，保持写入顺序.
func (s *SampleService) Taxonomies(ctx context.Context, raw string) (*types.TaxonomyListResponse, error) {
	row, err := s.find(ctx, s.db, raw)
	if err != nil {
		return nil, err
	}

	var taxa []model.Taxonomy

	err = s.db.WithContext(ctx).
		Joins("JOIN sample_taxonomies st ON st.taxonomy_id = taxonomies.id").
		Where("st.sample_id = ?", row.ID).
		Order("st.position").
		Find(&taxa).Error
	if err != nil {
		return nil, fmt.Errorf("list taxonomies of sample %d: %w", row.ID, err)
	}

	return s.Catalog.Taxonomies().views(ctx, taxa, nil)
}

// RemoveTaxonomy 移除单个分类，最后一个分类不能移除.
func (s *SampleService) RemoveTaxonomy(ctx context.Context, raw string, taxonomyID uint) error {
	return s.inTx(ctx, entitySample, "remove_taxonomy", func(tx *gorm.DB) error {
		row, err := s.find(ctx, tx, raw, s.lockFor)
		if err != nil {
			return err
		}

		var current []uint
		if err := tx.Model(&model.SampleTaxonomy{}).Where("sample_id = ?", row.ID).
			Order("position").Pluck("taxonomy_id", &current).Error; err != nil {
			return fmt.Errorf("load taxonomies of sample %d: %w", row.ID, err)
		}

		remaining := make([]uint, 0, len(current))
		found := false

		for _, id := range current {
			if id == taxonomyID {
				found = true
				continue
			}

			remaining = append(remaining, id)
		}

		if !found {
			return errs.NotFound("taxonomy", strconv.FormatUint(uint64(taxonomyID), 10))
		}

		if err := s.rules.Evaluate(ctx, tx, relation.Change{Entity: entitySample, EntityID: row.ID, Taxonomies: &remaining}); err != nil {
			return err
		}

		if err := tx.Where("sample_id = ? AND taxonomy_id = ?", row.ID, taxonomyID).
			Delete(&model.SampleTaxonomy{}).Error; err != nil {
			return fmt.Errorf("remove taxonomy %d from sample %d: %w", taxonomyID, row.ID, err)
		}

		return touch(tx, row)
	})
}

func (s *SampleService) views(ctx context.Context, rows []model.Sample, info *query.PageInfo) (*types.SampleListResponse, error) {
	out := &types.SampleListResponse{Samples: make([]types.SampleResponse, 0, len(rows)), Page: info}
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	var links []model.SampleTaxonomy
	if err := s.db.WithContext(ctx).Where("sample_id IN ?", ids).Order("sample_id, position").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("load sample taxonomies: %w", err)
	}

	taxa := map[uint][]uint{}
	for _, l := range links {
		taxa[l.SampleID] = append(taxa[l.SampleID], l.TaxonomyID)
	}

	for i := range rows {
		out.Samples = append(out.Samples, types.NewSampleResponse(&rows[i], taxa[rows[i].ID]))
	}

	return out, nil
}

func replaceSampleTaxonomies(tx *gorm.DB, sampleID uint, taxa []uint) error {
	if err := tx.Where("sample_id = ?", sampleID).Delete(&model.SampleTaxonomy{}).Error; err != nil {
		return fmt.Errorf("clear taxonomies of sample %d: %w", sampleID, err)
	}

	ids := relation.Normalize(taxa)
	if len(ids) == 0 {
		return nil
	}

	rows := make([]model.SampleTaxonomy, 0, len(ids))
	for i, id := range ids {
		rows = append(rows, model.SampleTaxonomy{SampleID: sampleID, TaxonomyID: id, Position: i})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("write taxonomies of sample %d: %w", sampleID, err)
	}

	return nil
}

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
	"github.com/yeisme/genovault/pkg/internal/types"
)

const (
	entityReferenceSequence = "reference sequence"
	entityTaxonomy          = "taxonomy"
)

// ReferenceSequenceSortable 参考序列列表允许的排序字段.
var ReferenceSequenceSortable = map[string]string{
	"id":    "reference_sequences.id",
	"name":  "reference_sequences.name",
	"patch": "reference_sequences.patch",
}

// TaxonomySortable 分类列表允许的排序字段.
var TaxonomySortable = map[string]string{
	"id":         "taxonomies.id",
	"name":       "taxonomies.name",
	"taxonomyId": "taxonomies.taxonomy_id",
}

type ReferenceSequenceService struct {
	*Catalog
}

func NewReferenceSequenceService(ctx context.Context) *ReferenceSequenceService {
	return &ReferenceSequenceService{Catalog: FromContext(ctx)}
}

// ReferenceSequences 返回参考序列服务.
func (c *Catalog) ReferenceSequences() *ReferenceSequenceService {
	return &ReferenceSequenceService{Catalog: c}
}

func (s *ReferenceSequenceService) Create(ctx context.Context, req *types.ReferenceSequenceCreateRequest) (*types.ReferenceSequenceResponse, error) {
	row := model.ReferenceSequence{Name: req.Name, Patch: req.Patch, Accessions: model.StringList(req.Accessions), Type: req.Type}

	err := s.inTx(ctx, "reference_sequence", "create", func(tx *gorm.DB) error {
		row.ID = 0

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create reference sequence: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	out := types.NewReferenceSequenceResponse(&row)

	return &out, nil
}

func (s *ReferenceSequenceService) Get(ctx context.Context, raw string) (*types.ReferenceSequenceResponse, error) {
	row, err := findByID[model.ReferenceSequence](ctx, s.db, entityReferenceSequence, raw)
	if err != nil {
		return nil, err
	}

	out := types.NewReferenceSequenceResponse(row)

	return &out, nil
}

func (s *ReferenceSequenceService) List(ctx context.Context, p query.Page) (*types.ReferenceSequenceListResponse, error) {
	return s.list(ctx, p)
}

// Search name、patch 忽略大小写精确匹配，accessions 为包含匹配，type 需为合法枚举.
func (s *ReferenceSequenceService) Search(ctx context.Context, name, patch, accession, typ string, p query.Page) (*types.ReferenceSequenceListResponse, error) {
	var filters []query.Filter

	if name != "" {
		filters = append(filters, query.IEq("reference_sequences.name", name))
	}

	if patch != "" {
		filters = append(filters, query.IEq("reference_sequences.patch", patch))
	}

	if accession != "" {
		// accessions 以 JSON 数组文本存储，带引号匹配保证整项相等
		filters = append(filters, query.Contains("reference_sequences.accessions", strconv.Quote(accession)))
	}

	if typ != "" {
		t := model.ReferenceSequenceType(strings.ToUpper(typ))
		if !t.Valid() {
			return nil, errs.Field("type", "invalid value "+typ)
		}

		filters = append(filters, query.Eq("reference_sequences.type", t))
	}

	return s.list(ctx, p, filters...)
}

func (s *ReferenceSequenceService) list(ctx context.Context, p query.Page, filters ...query.Filter) (*types.ReferenceSequenceListResponse, error) {
	rows, info, err := page[model.ReferenceSequence](ctx, s.db, p, "reference_sequences.id", filters...)
	if err != nil {
		return nil, err
	}

	out := types.NewReferenceSequenceList(rows, &info)

	return &out, nil
}

// Update 类型改为非 GENE 时，不检查已引用它的多参考序列分析；由写分析时的规则把关.
func (s *ReferenceSequenceService) Update(ctx context.Context, raw string, req *types.ReferenceSequenceUpdateRequest) (*types.ReferenceSequenceResponse, error) {
	var row *model.ReferenceSequence

	err := s.inTx(ctx, "reference_sequence", "update", func(tx *gorm.DB) error {
		var err error

		row, err = findByID[model.ReferenceSequence](ctx, tx, entityReferenceSequence, raw)
		if err != nil {
			return err
		}

		u := map[string]any{}
		if req.Name != nil {
			u["name"] = *req.Name
		}

		if req.Patch != nil {
			u["patch"] = *req.Patch
		}

		if req.Accessions != nil {
			u["accessions"] = model.StringList(*req.Accessions)
		}

		if req.Type != nil {
			u["type"] = *req.Type
		}

		if err := tx.Model(row).Updates(u).Error; err != nil {
			return fmt.Errorf("update reference sequence %d: %w", row.ID, err)
		}

		return tx.Take(row, row.ID).Error
	})
	if err != nil {
		return nil, err
	}

	out := types.NewReferenceSequenceResponse(row)

	return &out, nil
}

type TaxonomyService struct {
	*Catalog
}

func NewTaxonomyService(ctx context.Context) *TaxonomyService {
	return &TaxonomyService{Catalog: FromContext(ctx)}
}

// Taxonomies 返回分类服务.
func (c *Catalog) Taxonomies() *TaxonomyService { return &TaxonomyService{Catalog: c} }

// Create 创建分类，ancestors 为直接祖先且必须已存在，因此分类图不会出现环.
func (s *TaxonomyService) Create(ctx context.Context, req *types.TaxonomyCreateRequest) (*types.TaxonomyResponse, error) {
	row := model.Taxonomy{TaxonomyID: *req.TaxonomyID, Name: req.Name}
	ancestors := relation.Normalize(req.Ancestors)

	err := s.inTx(ctx, entityTaxonomy, "create", func(tx *gorm.DB) error {
		row.ID = 0

		var n int64
		if err := tx.Model(&model.Taxonomy{}).Where("taxonomy_id = ?", row.TaxonomyID).Count(&n).Error; err != nil {
			return fmt.Errorf("check taxonomy %d: %w", row.TaxonomyID, err)
		}

		if n > 0 {
			return errs.DuplicateKey(entityTaxonomy, "taxonomyId", strconv.FormatInt(row.TaxonomyID, 10))
		}

		if err := s.rules.Evaluate(ctx, tx, relation.Change{Entity: entityTaxonomy, Ancestors: &ancestors}); err != nil {
			return err
		}

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create taxonomy: %w", err)
		}

		if len(ancestors) == 0 {
			return nil
		}

		edges := make([]model.TaxonomyAncestor, 0, len(ancestors))
		for _, a := range ancestors {
			edges = append(edges, model.TaxonomyAncestor{ChildID: row.ID, AncestorID: a})
		}

		return tx.Create(&edges).Error
	})
	if err != nil {
		return nil, err
	}

	out := types.NewTaxonomyResponse(&row, ancestors)

	return &out, nil
}

func (s *TaxonomyService) Get(ctx context.Context, raw string) (*types.TaxonomyResponse, error) {
	row, err := findByID[model.Taxonomy](ctx, s.db, entityTaxonomy, raw)
	if err != nil {
		return nil, err
	}

	list, err := s.views(ctx, []model.Taxonomy{*row}, nil)
	if err != nil {
		return nil, err
	}

	return &list.Taxonomies[0], nil
}

func (s *TaxonomyService) List(ctx context.Context, p query.Page) (*types.TaxonomyListResponse, error) {
	rows, info, err := page[model.Taxonomy](ctx, s.db, p, "taxonomies.id")
	if err != nil {
		return nil, err
	}

	return s.views(ctx, rows, &info)
}

func (s *TaxonomyService) views(ctx context.Context, rows []model.Taxonomy, info *query.PageInfo) (*types.TaxonomyListResponse, error) {
	out := &types.TaxonomyListResponse{Taxonomies: make([]types.TaxonomyResponse, 0, len(rows)), Page: info}
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	var edges []model.TaxonomyAncestor
	if err := s.db.WithContext(ctx).Where("child_id IN ?", ids).Order("child_id, ancestor_id").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("load taxonomy ancestors: %w", err)
	}

	anc := map[uint][]uint{}
	for _, e := range edges {
		anc[e.ChildID] = append(anc[e.ChildID], e.AncestorID)
	}

	for i := range rows {
		out.Taxonomies = append(out.Taxonomies, types.NewTaxonomyResponse(&rows[i], anc[rows[i].ID]))
	}

	return out, nil
}

// findByID 只接受数字主键的实体.
func findByID[T any](ctx context.Context, db *gorm.DB, entity, raw string) (*T, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return nil, errs.NotFound(entity, raw)
	}

	return identity.Find[T](ctx, db, entity, identity.Ref{ID: uint(id), Raw: raw})
}

package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/identity"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/query"
	"github.com/yeisme/genovault/pkg/internal/taxonomy"
	"github.com/yeisme/genovault/pkg/internal/types"
)

const (
	msgDateFormat   = "Please provide a date in the form yyyy-mm-dd"
	msgDateRequired = "Either from or to needs to be non-null"
)

// StudyFilter /studies/search 的可选条件，零值表示不过滤.
type StudyFilter struct {
	// AccessionVersionID 形如 accession.version.
	AccessionVersionID string
	Browsable          *bool
	TaxonomyID         *int64
	AnalysisType       string
	ReferenceName      string
	ReferencePatch     string
}

// Search 按组合条件搜索可见研究.
func (s *StudyService) Search(ctx context.Context, f StudyFilter, p query.Page) (*types.StudyListResponse, error) {
	var filters []query.Filter

	if f.AccessionVersionID != "" {
		av, err := identity.Parse(f.AccessionVersionID)
		if err != nil {
			return nil, err
		}

		filters = append(filters, query.Eq("studies.accession", av.Accession), query.Eq("studies.version", av.Version))
	}

	if f.Browsable != nil {
		filters = append(filters, query.Eq("studies.browsable", *f.Browsable))
	}

	if f.TaxonomyID != nil {
		filters = append(filters, query.Exists(s.db.Table("taxonomies").Select("1").
			Where("taxonomies.id = studies.taxonomy_id AND taxonomies.taxonomy_id = ?", *f.TaxonomyID)))
	}

	if f.AnalysisType != "" {
		t := model.AnalysisType(strings.ToUpper(f.AnalysisType))
		if !t.Valid() {
			return nil, errs.Field("analyses.type", "invalid value "+f.AnalysisType)
		}

		filters = append(filters, query.Exists(s.db.Table("analyses").Select("1").
			Where("analyses.study_id = studies.id AND analyses.type = ?", t)))
	}

	if f.ReferenceName != "" || f.ReferencePatch != "" {
		sub := s.db.Table("analyses").Select("1").
			Joins("JOIN analysis_reference_sequences ars ON ars.analysis_id = analyses.id").
			Joins("JOIN reference_sequences rs ON rs.id = ars.reference_sequence_id").
			Where("analyses.study_id = studies.id")

		if f.ReferenceName != "" {
			sub = sub.Where("LOWER(rs.name) = ?", strings.ToLower(f.ReferenceName))
		}

		if f.ReferencePatch != "" {
			sub = sub.Where("LOWER(rs.patch) = ?", strings.ToLower(f.ReferencePatch))
		}

		filters = append(filters, query.Exists(sub))
	}

	return s.search(ctx, p, filters...)
}

// ByAccession 返回 accession 下版本号最大的可见研究.
func (s *StudyService) ByAccession(ctx context.Context, accession string) (*types.StudyResponse, error) {
	row, err := identity.ResolveLatest[model.Study](ctx, s.db, entityStudy, accession, s.visible.Scope)
	if err != nil {
		return nil, err
	}

	out := types.NewStudyResponse(row)

	return &out, nil
}

// ByReleaseDate 发布日期落在 [from, to] 内的可见研究，至少给出一端.
func (s *StudyService) ByReleaseDate(ctx context.Context, from, to string, p query.Page) (*types.StudyListResponse, error) {
	if from == "" && to == "" {
		return nil, errs.MalformedDate("from", "", msgDateRequired)
	}

	var lo, hi any

	if from != "" {
		d, err := model.ParseDate(from)
		if err != nil {
			return nil, errs.MalformedDate("from", from, msgDateFormat)
		}

		lo = d
	}

	if to != "" {
		d, err := model.ParseDate(to)
		if err != nil {
			return nil, errs.MalformedDate("to", to, msgDateFormat)
		}

		hi = d
	}

	return s.search(ctx, p, query.Range("studies.release_date", lo, hi))
}

// ByTaxonomyID 研究的分类为给定 NCBI 分类号或其任意后代.
func (s *StudyService) ByTaxonomyID(ctx context.Context, raw string, p query.Page) (*types.StudyListResponse, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return nil, errs.Field("id", "must be greater than or equal to 1")
	}

	roots, err := taxonomy.IDsByTaxonomyID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	return s.byTaxonomies(ctx, roots, p)
}

// ByTaxonomyName 同 ByTaxonomyID，按分类名称（忽略大小写）定位.
func (s *StudyService) ByTaxonomyName(ctx context.Context, name string, p query.Page) (*types.StudyListResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.Field("name", "may not be null")
	}

	roots, err := taxonomy.IDsByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}

	return s.byTaxonomies(ctx, roots, p)
}

func (s *StudyService) byTaxonomies(ctx context.Context, roots []uint, p query.Page) (*types.StudyListResponse, error) {
	ids, err := taxonomy.Descendants(ctx, s.db, roots)
	if err != nil {
		return nil, err
	}

	return s.search(ctx, p, query.In("studies.taxonomy_id", ids))
}

// ByText 名称或描述包含 term（忽略大小写）.
func (s *StudyService) ByText(ctx context.Context, term string, p query.Page) (*types.StudyListResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, errs.Field("searchTerm", "may not be null")
	}

	return s.search(ctx, p, query.IContains(term, "studies.name", "studies.description"))
}

// search 所有研究读路径的出口，总是附加可见性条件.
func (s *StudyService) search(ctx context.Context, p query.Page, filters ...query.Filter) (*types.StudyListResponse, error) {
	filters = append(filters, s.visible.Scope)

	rows, info, err := page[model.Study](ctx, s.db, p, "studies.id", filters...)
	if err != nil {
		return nil, err
	}

	out := types.NewStudyList(rows, &info)

	return &out, nil
}

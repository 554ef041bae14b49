package service_test

import (
	"context"
	"slices"
	"testing"

	"github.com/yeisme/genovault/pkg/internal/catalogtest"
	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/types"
)

type analysisFixture struct {
	env      *catalogtest.Env
	study    uint
	assembly uint
	geneA    uint
	geneB    uint
}

func newAnalysisFixture(t *testing.T) analysisFixture {
	t.Helper()

	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	study := env.Study(t, types.StudyCreateRequest{Name: "UK10K", Taxonomy: &tax})

	return analysisFixture{
		env:      env,
		study:    study.ID,
		assembly: env.Reference(t, "GRCh38", model.ReferenceAssembly),
		geneA:    env.Reference(t, "BRCA1", model.ReferenceGene),
		geneB:    env.Reference(t, "BRCA2", model.ReferenceGene),
	}
}

func (f analysisFixture) create(refs ...uint) error {
	_, err := f.env.Catalog.Analyses().Create(context.Background(), &types.AnalysisCreateRequest{
		Name:               "a",
		Study:              &f.study,
		ReferenceSequences: refs,
		Technology:         model.TechnologyGWAS,
		Type:               model.AnalysisCaseControl,
		Platform:           "Illumina",
	})

	return err
}

func TestAnalysisReferenceSequenceRules(t *testing.T) {
	f := newAnalysisFixture(t)

	cases := []struct {
		name string
		refs []uint
		kind errs.Kind
		ids  []string
	}{
		{"single assembly", []uint{f.assembly}, errs.KindUnknown, nil},
		{"several genes", []uint{f.geneA, f.geneB}, errs.KindUnknown, nil},
		{"duplicate collapses to one", []uint{f.assembly, f.assembly}, errs.KindUnknown, nil},
		{"none", nil, errs.KindAnalysisWithoutReferenceSequence, nil},
		{"only zero ids", []uint{0}, errs.KindAnalysisWithoutReferenceSequence, nil},
		{"unknown", []uint{f.geneA, 77}, errs.KindInvalidReference, []string{"77"}},
		{"mixed types", []uint{f.geneA, f.assembly}, errs.KindInvalidReferenceType, []string{itoa(f.assembly)}},
	}

	for _, tc := range cases {
		err := f.create(tc.refs...)
		if tc.kind == errs.KindUnknown {
			if err != nil {
				t.Errorf("%s: %v", tc.name, err)
			}

			continue
		}

		e, ok := errs.As(err)
		if !ok || e.Kind != tc.kind {
			t.Errorf("%s: got %v", tc.name, err)
			continue
		}

		if tc.ids != nil && !slices.Equal(e.IDs, tc.ids) {
			t.Errorf("%s: ids = %v", tc.name, e.IDs)
		}
	}
}

func TestAnalysisRequiresStudy(t *testing.T) {
	f := newAnalysisFixture(t)
	missing := uint(404)

	_, err := f.env.Catalog.Analyses().Create(context.Background(), &types.AnalysisCreateRequest{
		Name:               "a",
		Study:              &missing,
		ReferenceSequences: []uint{f.assembly},
		Technology:         model.TechnologyArray,
		Type:               model.AnalysisTumor,
		Platform:           "Affymetrix",
	})
	if errs.KindOf(err) != errs.KindInvalidReference {
		t.Fatalf("got %v", err)
	}

	list, err := f.env.Catalog.Analyses().List(context.Background(), firstPage)
	if err != nil || len(list.Analyses) != 0 {
		t.Fatalf("rejected write left rows behind: %+v, %v", list, err)
	}
}

func TestAnalysisUpdateReplacesReferences(t *testing.T) {
	ctx := context.Background()
	f := newAnalysisFixture(t)

	a := f.env.Analysis(t, types.AnalysisCreateRequest{
		AccessionVersionID: catalogtest.AccVer("ERZ1", 1),
		Name:               "a",
		Study:              &f.study,
		ReferenceSequences: []uint{f.geneB, f.geneA},
	})

	if !slices.Equal(a.ReferenceSequences, []uint{f.geneB, f.geneA}) {
		t.Fatalf("created refs = %v", a.ReferenceSequences)
	}

	refs := []uint{f.assembly}

	got, err := f.env.Catalog.Analyses().Update(ctx, "ERZ1.1", &types.AnalysisUpdateRequest{ReferenceSequences: &refs})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(got.ReferenceSequences, refs) || got.Name != "a" {
		t.Fatalf("updated = %+v", got)
	}

	mixed := []uint{f.assembly, f.geneA}
	if _, err := f.env.Catalog.Analyses().Update(ctx, "ERZ1.1", &types.AnalysisUpdateRequest{ReferenceSequences: &mixed}); errs.KindOf(err) != errs.KindInvalidReferenceType {
		t.Fatalf("mixed update: %v", err)
	}

	list, err := f.env.Catalog.Analyses().ReferenceSequences(ctx, "ERZ1.1")
	if err != nil || len(list.ReferenceSequences) != 1 || list.ReferenceSequences[0].ID != f.assembly {
		t.Fatalf("refs after rejected update: %+v, %v", list, err)
	}
}

func TestAnalysisRemoveReferenceSequence(t *testing.T) {
	ctx := context.Background()
	f := newAnalysisFixture(t)

	a := f.env.Analysis(t, types.AnalysisCreateRequest{Name: "a", Study: &f.study, ReferenceSequences: []uint{f.geneA, f.geneB}})
	id := itoa(a.ID)

	if err := f.env.Catalog.Analyses().RemoveReferenceSequence(ctx, id, f.geneA); err != nil {
		t.Fatal(err)
	}

	if err := f.env.Catalog.Analyses().RemoveReferenceSequence(ctx, id, f.geneA); !errs.IsNotFound(err) {
		t.Fatalf("removing twice: %v", err)
	}

	if err := f.env.Catalog.Analyses().RemoveReferenceSequence(ctx, id, f.geneB); errs.KindOf(err) != errs.KindAnalysisWithoutReferenceSequence {
		t.Fatalf("removing the last one: %v", err)
	}

	got, err := f.env.Catalog.Analyses().Get(ctx, id)
	if err != nil || !slices.Equal(got.ReferenceSequences, []uint{f.geneB}) {
		t.Fatalf("refs = %+v, %v", got, err)
	}
}

func TestAnalysisSearch(t *testing.T) {
	ctx := context.Background()
	f := newAnalysisFixture(t)

	f.env.Analysis(t, types.AnalysisCreateRequest{Name: "gwas", Study: &f.study, ReferenceSequences: []uint{f.assembly}, Platform: "Illumina HiSeq"})
	f.env.Analysis(t, types.AnalysisCreateRequest{
		Name:               "array",
		Study:              &f.study,
		ReferenceSequences: []uint{f.assembly},
		Technology:         model.TechnologyArray,
		Type:               model.AnalysisTumor,
		Platform:           "Affymetrix",
	})

	list, err := f.env.Catalog.Analyses().Search(ctx, "tumor", "", "", firstPage)
	if err != nil || len(list.Analyses) != 1 || list.Analyses[0].Name != "array" {
		t.Fatalf("by type: %+v, %v", list, err)
	}

	list, err = f.env.Catalog.Analyses().Search(ctx, "", "", "illumina hiseq", firstPage)
	if err != nil || len(list.Analyses) != 1 || list.Analyses[0].Name != "gwas" {
		t.Fatalf("by platform: %+v, %v", list, err)
	}

	if _, err := f.env.Catalog.Analyses().Search(ctx, "", "SANGER", "", firstPage); errs.KindOf(err) != errs.KindFieldValidation {
		t.Fatalf("bad technology: %v", err)
	}
}

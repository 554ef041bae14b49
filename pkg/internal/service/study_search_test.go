package service_test

import (
	"context"
	"slices"
	"testing"

	"github.com/yeisme/genovault/pkg/internal/catalogtest"
	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/types"
)

type searchFixture struct {
	env            *catalogtest.Env
	human, humanV2 *types.StudyResponse
	mouse          *types.StudyResponse
}

func newSearchFixture(t *testing.T) searchFixture {
	t.Helper()

	env := catalogtest.New(t)
	primates := env.Taxonomy(t, 9443, "Primates")
	human := env.Taxonomy(t, 9606, "Homo sapiens", primates)
	mouse := env.Taxonomy(t, 10090, "Mus musculus")

	f := searchFixture{env: env}

	f.human = env.Study(t, types.StudyCreateRequest{
		AccessionVersionID: catalogtest.AccVer("EGAS1", 1),
		Name:               "Human cohort",
		Description:        "100% whole_genome",
		Taxonomy:           &human,
		ReleaseDate:        mustDate(t, "2020-05-01"),
		Browsable:          true,
	})
	f.humanV2 = env.Study(t, types.StudyCreateRequest{
		AccessionVersionID: catalogtest.AccVer("EGAS1", 2),
		Name:               "Human cohort v2",
		Taxonomy:           &human,
		ReleaseDate:        mustDate(t, "2021-05-01"),
	})
	env.Study(t, types.StudyCreateRequest{
		AccessionVersionID: catalogtest.AccVer("EGAS1", 3),
		Name:               "Human cohort v3",
		Taxonomy:           &human,
		ReleaseDate:        mustDate(t, "2030-01-01"),
	})
	f.mouse = env.Study(t, types.StudyCreateRequest{
		Name:        "Mouse knockout",
		Taxonomy:    &mouse,
		ReleaseDate: mustDate(t, "2022-01-01"),
	})

	ref := env.Reference(t, "GRCh38", model.ReferenceAssembly)
	env.Analysis(t, types.AnalysisCreateRequest{Name: "tumour", Study: &f.mouse.ID, ReferenceSequences: []uint{ref}, Type: model.AnalysisTumor})

	return f
}

func TestStudyByAccessionPicksLatestVisible(t *testing.T) {
	f := newSearchFixture(t)

	got, err := f.env.Catalog.Studies().ByAccession(context.Background(), "EGAS1")
	if err != nil || got.ID != f.humanV2.ID {
		t.Fatalf("got %+v, %v", got, err)
	}

	if _, err := f.env.Catalog.Studies().ByAccession(context.Background(), "EGAS9"); !errs.IsNotFound(err) {
		t.Fatalf("unknown accession: %v", err)
	}
}

func TestStudyByReleaseDate(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture(t)
	studies := f.env.Catalog.Studies()

	list, err := studies.ByReleaseDate(ctx, "2021-01-01", "", firstPage)
	if err != nil || !slices.Equal(studyIDs(list), []uint{f.humanV2.ID, f.mouse.ID}) {
		t.Fatalf("from only: %v, %v", list, err)
	}

	list, err = studies.ByReleaseDate(ctx, "", "2021-05-01", firstPage)
	if err != nil || !slices.Equal(studyIDs(list), []uint{f.human.ID, f.humanV2.ID}) {
		t.Fatalf("to only: %v, %v", list, err)
	}

	rejected := []struct {
		from, to, msg string
	}{
		{"", "", "Either from or to needs to be non-null"},
		{"01/02/2020", "", "Please provide a date in the form yyyy-mm-dd"},
		{"wrong-format-date", "", "Please provide a date in the form yyyy-mm-dd"},
		{"2020-01-01", "2020-13-01", "Please provide a date in the form yyyy-mm-dd"},
	}

	for _, tc := range rejected {
		_, err := studies.ByReleaseDate(ctx, tc.from, tc.to, firstPage)

		e, ok := errs.As(err)
		if !ok || e.Kind != errs.KindMalformedIdentifier || e.Message != tc.msg {
			t.Errorf("from=%q to=%q: %v", tc.from, tc.to, err)
		}
	}
}

func TestStudyByTaxonomyIncludesDescendants(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture(t)
	studies := f.env.Catalog.Studies()

	list, err := studies.ByTaxonomyID(ctx, "9443", firstPage)
	if err != nil || !slices.Equal(studyIDs(list), []uint{f.human.ID, f.humanV2.ID}) {
		t.Fatalf("by id: %v, %v", list, err)
	}

	list, err = studies.ByTaxonomyName(ctx, "MUS MUSCULUS", firstPage)
	if err != nil || !slices.Equal(studyIDs(list), []uint{f.mouse.ID}) {
		t.Fatalf("by name: %v, %v", list, err)
	}

	list, err = studies.ByTaxonomyID(ctx, "4932", firstPage)
	if err != nil || len(list.Studies) != 0 {
		t.Fatalf("unknown taxonomy: %v, %v", list, err)
	}
}

func TestStudyByTextEscapesWildcards(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture(t)
	studies := f.env.Catalog.Studies()

	list, err := studies.ByText(ctx, "100% WHOLE_", firstPage)
	if err != nil || !slices.Equal(studyIDs(list), []uint{f.human.ID}) {
		t.Fatalf("literal wildcards: %v, %v", list, err)
	}

	list, err = studies.ByText(ctx, "%", firstPage)
	if err != nil || !slices.Equal(studyIDs(list), []uint{f.human.ID}) {
		t.Fatalf("percent only: %v, %v", list, err)
	}

	if _, err := studies.ByText(ctx, "  ", firstPage); errs.KindOf(err) != errs.KindFieldValidation {
		t.Fatalf("blank term: %v", err)
	}
}

func TestStudySearchCombinesFilters(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture(t)
	studies := f.env.Catalog.Studies()

	yes := true
	list, err := studies.Search(ctx, service.StudyFilter{Browsable: &yes}, firstPage)
	if err != nil || !slices.Equal(studyIDs(list), []uint{f.human.ID}) {
		t.Fatalf("browsable: %v, %v", list, err)
	}

	list, err = studies.Search(ctx, service.StudyFilter{AnalysisType: "tumor", ReferenceName: "grch38"}, firstPage)
	if err != nil || !slices.Equal(studyIDs(list), []uint{f.mouse.ID}) {
		t.Fatalf("analysis filters: %v, %v", list, err)
	}

	list, err = studies.Search(ctx, service.StudyFilter{AccessionVersionID: "EGAS1.3"}, firstPage)
	if err != nil || len(list.Studies) != 0 {
		t.Fatalf("hidden version leaked: %v, %v", list, err)
	}

	tax := int64(9606)
	list, err = studies.Search(ctx, service.StudyFilter{TaxonomyID: &tax}, firstPage)
	if err != nil || !slices.Equal(studyIDs(list), []uint{f.human.ID, f.humanV2.ID}) {
		t.Fatalf("exact taxonomy: %v, %v", list, err)
	}

	if _, err := studies.Search(ctx, service.StudyFilter{AccessionVersionID: "EGAS1"}, firstPage); errs.KindOf(err) != errs.KindMalformedIdentifier {
		t.Fatalf("malformed: %v", err)
	}
}

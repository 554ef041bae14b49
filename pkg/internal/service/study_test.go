package service_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/yeisme/genovault/pkg/internal/catalogtest"
	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/query"
	"github.com/yeisme/genovault/pkg/internal/types"
)

var firstPage = query.Page{Size: 20}

func studyIDs(list *types.StudyListResponse) []uint {
	out := make([]uint, 0, len(list.Studies))
	for _, s := range list.Studies {
		out = append(out, s.ID)
	}

	return out
}

func mustDate(t *testing.T, s string) *model.Date {
	t.Helper()

	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}

	return &d
}

func TestStudyCreateAndResolve(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")

	created := env.Study(t, types.StudyCreateRequest{
		AccessionVersionID: catalogtest.AccVer("EGAS0001", 1),
		Name:               "UK10K",
		Taxonomy:           &tax,
	})

	if !created.CreatedDate.Equal(catalogtest.Start) || !created.LastModifiedDate.Equal(catalogtest.Start) {
		t.Fatalf("audit stamps = %v / %v", created.CreatedDate, created.LastModifiedDate)
	}

	for _, ref := range []string{"EGAS0001.1", "1"} {
		got, err := env.Catalog.Studies().Get(ctx, ref)
		if err != nil {
			t.Fatalf("get %s: %v", ref, err)
		}

		if got.ID != created.ID || got.AccessionVersionID == nil || got.AccessionVersionID.Accession != "EGAS0001" {
			t.Fatalf("get %s = %+v", ref, got)
		}
	}

	_, err := env.Catalog.Studies().Get(ctx, "EGAS0001")
	if errs.KindOf(err) != errs.KindMalformedIdentifier {
		t.Fatalf("bare accession: %v", err)
	}

	_, err = env.Catalog.Studies().Get(ctx, "EGAS0001.2")
	if !errs.IsNotFound(err) {
		t.Fatalf("unknown version: %v", err)
	}
}

func TestStudyDuplicateIdentity(t *testing.T) {
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	env.Study(t, types.StudyCreateRequest{AccessionVersionID: catalogtest.AccVer("EGAS1", 1), Name: "a", Taxonomy: &tax})

	_, err := env.Catalog.Studies().Create(context.Background(), &types.StudyCreateRequest{
		AccessionVersionID: catalogtest.AccVer("EGAS1", 1),
		Name:               "b",
		Taxonomy:           &tax,
		ReleaseDate:        mustDate(t, "2020-01-01"),
	})
	if errs.KindOf(err) != errs.KindDuplicateIdentity {
		t.Fatalf("got %v", err)
	}
}

func TestStudyRequiresKnownTaxonomy(t *testing.T) {
	env := catalogtest.New(t)
	missing := uint(42)

	_, err := env.Catalog.Studies().Create(context.Background(), &types.StudyCreateRequest{
		Name:        "orphan",
		Taxonomy:    &missing,
		ReleaseDate: mustDate(t, "2020-01-01"),
	})

	e, ok := errs.As(err)
	if !ok || e.Kind != errs.KindInvalidReference || !slices.Equal(e.IDs, []string{"42"}) {
		t.Fatalf("got %v", err)
	}
}

func TestStudyVisibility(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")

	live := env.Study(t, types.StudyCreateRequest{Name: "live", Taxonomy: &tax})
	future := env.Study(t, types.StudyCreateRequest{Name: "future", Taxonomy: &tax, ReleaseDate: mustDate(t, "2024-03-02")})
	gone := env.Study(t, types.StudyCreateRequest{Name: "gone", Taxonomy: &tax, Deprecated: true})

	list, err := env.Catalog.Studies().List(ctx, firstPage)
	if err != nil {
		t.Fatal(err)
	}

	if got := studyIDs(list); !slices.Equal(got, []uint{live.ID}) {
		t.Fatalf("visible = %v", got)
	}

	if list.Page == nil || list.Page.TotalElements != 1 {
		t.Fatalf("page = %+v", list.Page)
	}

	for _, id := range []uint{future.ID, gone.ID} {
		if _, err := env.Catalog.Studies().Get(ctx, itoa(id)); !errs.IsNotFound(err) {
			t.Fatalf("study %d should be hidden: %v", id, err)
		}
	}

	// 跨过 UTC 午夜后未来研究变为可见
	env.Clock.Advance(12 * time.Hour)

	if _, err := env.Catalog.Studies().Get(ctx, itoa(future.ID)); err != nil {
		t.Fatalf("released study still hidden: %v", err)
	}
}

func TestStudyUpdateHiddenAndAuditStamps(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	hidden := env.Study(t, types.StudyCreateRequest{Name: "hidden", Taxonomy: &tax, Deprecated: true})

	env.Clock.Advance(time.Hour)

	name := "restored"
	no := false

	got, err := env.Catalog.Studies().Update(ctx, itoa(hidden.ID), &types.StudyUpdateRequest{Name: &name, Deprecated: &no})
	if err != nil {
		t.Fatal(err)
	}

	if got.Name != name || got.Center != "" || got.Taxonomy != tax {
		t.Fatalf("partial update touched other fields: %+v", got)
	}

	if !got.CreatedDate.Equal(catalogtest.Start) || !got.LastModifiedDate.Equal(catalogtest.Start.Add(time.Hour)) {
		t.Fatalf("audit stamps = %v / %v", got.CreatedDate, got.LastModifiedDate)
	}

	if _, err := env.Catalog.Studies().Get(ctx, itoa(hidden.ID)); err != nil {
		t.Fatalf("undeprecated study still hidden: %v", err)
	}
}

func TestStudyDeprecateRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	study := env.Study(t, types.StudyCreateRequest{
		AccessionVersionID: catalogtest.AccVer("EGAS42", 1),
		Name:               "UK10K",
		Description:        "rare variants",
		Taxonomy:           &tax,
	})

	yes, no := true, false

	got, err := env.Catalog.Studies().Update(ctx, "EGAS42.1", &types.StudyUpdateRequest{Deprecated: &yes})
	if err != nil || got != nil {
		t.Fatalf("deprecate echoed hidden study: %+v, %v", got, err)
	}

	if _, err := env.Catalog.Studies().Get(ctx, "EGAS42.1"); !errs.IsNotFound(err) {
		t.Fatalf("deprecated study still visible: %v", err)
	}

	if _, err := env.Catalog.Studies().Update(ctx, "EGAS42.1", &types.StudyUpdateRequest{Deprecated: &no}); err != nil {
		t.Fatal(err)
	}

	back, err := env.Catalog.Studies().Get(ctx, "EGAS42.1")
	if err != nil {
		t.Fatal(err)
	}

	if back.ID != study.ID || back.Name != study.Name || back.Description != study.Description {
		t.Fatalf("round trip changed the study: %+v", back)
	}
}

func TestStudyLinksAreSymmetric(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")

	a := env.Study(t, types.StudyCreateRequest{Name: "a", Taxonomy: &tax})
	b := env.Study(t, types.StudyCreateRequest{Name: "b", Taxonomy: &tax})
	c := env.Study(t, types.StudyCreateRequest{Name: "c", Taxonomy: &tax})
	hidden := env.Study(t, types.StudyCreateRequest{Name: "hidden", Taxonomy: &tax, Deprecated: true})

	// 999 不存在，被静默丢弃
	d := env.Study(t, types.StudyCreateRequest{
		Name:         "d",
		Taxonomy:     &tax,
		ChildStudies: []uint{a.ID, b.ID, 999, hidden.ID, a.ID},
	})

	linked := func(id uint) []uint {
		t.Helper()

		list, err := env.Catalog.Studies().LinkedStudies(ctx, itoa(id))
		if err != nil {
			t.Fatal(err)
		}

		return studyIDs(list)
	}

	if got := linked(d.ID); !slices.Equal(got, []uint{a.ID, b.ID}) {
		t.Fatalf("d links = %v", got)
	}

	if got := linked(a.ID); !slices.Equal(got, []uint{b.ID, d.ID}) {
		t.Fatalf("a links = %v", got)
	}

	// 替换集合后被移出的研究不再指回 d
	children := []uint{c.ID}
	if _, err := env.Catalog.Studies().Update(ctx, itoa(d.ID), &types.StudyUpdateRequest{ChildStudies: &children}); err != nil {
		t.Fatal(err)
	}

	if got := linked(d.ID); !slices.Equal(got, []uint{c.ID}) {
		t.Fatalf("d links after replace = %v", got)
	}

	if got := linked(a.ID); !slices.Equal(got, []uint{b.ID}) {
		t.Fatalf("a links after replace = %v", got)
	}

	if got := linked(c.ID); !slices.Equal(got, []uint{d.ID}) {
		t.Fatalf("c links after replace = %v", got)
	}

	if _, err := env.Catalog.Studies().LinkedStudies(ctx, itoa(hidden.ID)); !errs.IsNotFound(err) {
		t.Fatalf("links of hidden study: %v", err)
	}
}

func TestStudyRelink(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")

	a := env.Study(t, types.StudyCreateRequest{Name: "a", Taxonomy: &tax})
	b := env.Study(t, types.StudyCreateRequest{Name: "b", Taxonomy: &tax})

	got, err := env.Catalog.Studies().Relink(ctx, a.ID, []uint{b.ID, a.ID, 0})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(got, []uint{b.ID}) {
		t.Fatalf("relink = %v", got)
	}

	got, err = env.Catalog.Studies().Relink(ctx, a.ID, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("clear = %v, %v", got, err)
	}

	list, err := env.Catalog.Studies().LinkedStudies(ctx, itoa(b.ID))
	if err != nil || len(list.Studies) != 0 {
		t.Fatalf("b still linked: %v, %v", list, err)
	}
}

func TestStudyAnalysesOfHiddenStudy(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	ref := env.Reference(t, "GRCh38", model.ReferenceAssembly)

	live := env.Study(t, types.StudyCreateRequest{Name: "live", Taxonomy: &tax})
	gone := env.Study(t, types.StudyCreateRequest{Name: "gone", Taxonomy: &tax, Deprecated: true})

	env.Analysis(t, types.AnalysisCreateRequest{Name: "x", Study: &live.ID, ReferenceSequences: []uint{ref}})
	orphan := env.Analysis(t, types.AnalysisCreateRequest{Name: "y", Study: &gone.ID, ReferenceSequences: []uint{ref}})

	list, err := env.Catalog.Studies().Analyses(ctx, itoa(live.ID))
	if err != nil || len(list.Analyses) != 1 || list.Analyses[0].Name != "x" {
		t.Fatalf("analyses of live study: %+v, %v", list, err)
	}

	if _, err := env.Catalog.Studies().Analyses(ctx, itoa(gone.ID)); !errs.IsNotFound(err) {
		t.Fatalf("analyses of hidden study: %v", err)
	}

	// 分析本身不受研究可见性影响
	if _, err := env.Catalog.Analyses().Get(ctx, itoa(orphan.ID)); err != nil {
		t.Fatalf("analysis of hidden study: %v", err)
	}
}

func TestAnnounceReleasesCountsToday(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")

	env.Study(t, types.StudyCreateRequest{Name: "today", Taxonomy: &tax})
	env.Study(t, types.StudyCreateRequest{Name: "today but deprecated", Taxonomy: &tax, Deprecated: true})
	env.Study(t, types.StudyCreateRequest{Name: "earlier", Taxonomy: &tax, ReleaseDate: mustDate(t, "2024-01-01")})

	n, err := env.Catalog.Studies().AnnounceReleases(ctx)
	if err != nil || n != 1 {
		t.Fatalf("announced %d, %v", n, err)
	}
}

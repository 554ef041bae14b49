package service_test

import (
	"context"
	"slices"
	"testing"

	"github.com/yeisme/genovault/pkg/internal/catalogtest"
	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/types"
)

func TestSampleTaxonomyRules(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	human := env.Taxonomy(t, 9606, "Homo sapiens")

	_, err := env.Catalog.Samples().Create(ctx, &types.SampleCreateRequest{Name: "none"})
	if errs.KindOf(err) != errs.KindSampleWithoutTaxonomy {
		t.Fatalf("no taxonomy: %v", err)
	}

	_, err = env.Catalog.Samples().Create(ctx, &types.SampleCreateRequest{Name: "bad", Taxonomies: []uint{human, 55, 66}})

	e, ok := errs.As(err)
	if !ok || e.Kind != errs.KindInvalidReference || !slices.Equal(e.IDs, []string{"55", "66"}) {
		t.Fatalf("unknown taxonomies: %v", err)
	}

	s, err := env.Catalog.Samples().Create(ctx, &types.SampleCreateRequest{
		AccessionVersionID: catalogtest.AccVer("ERS1", 1),
		Name:               "ok",
		Taxonomies:         []uint{human},
	})
	if err != nil {
		t.Fatal(err)
	}

	empty := []uint{}
	if _, err := env.Catalog.Samples().Update(ctx, "ERS1.1", &types.SampleUpdateRequest{Taxonomies: &empty}); errs.KindOf(err) != errs.KindSampleWithoutTaxonomy {
		t.Fatalf("clearing taxonomies: %v", err)
	}

	if err := env.Catalog.Samples().RemoveTaxonomy(ctx, itoa(s.ID), human); errs.KindOf(err) != errs.KindSampleWithoutTaxonomy {
		t.Fatalf("removing the last taxonomy: %v", err)
	}
}

func TestSampleTaxonomiesKeepOrder(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	human := env.Taxonomy(t, 9606, "Homo sapiens")
	mouse := env.Taxonomy(t, 10090, "Mus musculus")

	s, err := env.Catalog.Samples().Create(ctx, &types.SampleCreateRequest{Name: "s", Taxonomies: []uint{mouse, human}})
	if err != nil {
		t.Fatal(err)
	}

	list, err := env.Catalog.Samples().Taxonomies(ctx, itoa(s.ID))
	if err != nil {
		t.Fatal(err)
	}

	if len(list.Taxonomies) != 2 || list.Taxonomies[0].ID != mouse || list.Taxonomies[1].ID != human {
		t.Fatalf("taxonomies = %+v", list.Taxonomies)
	}

	if err := env.Catalog.Samples().RemoveTaxonomy(ctx, itoa(s.ID), mouse); err != nil {
		t.Fatal(err)
	}

	got, err := env.Catalog.Samples().Get(ctx, itoa(s.ID))
	if err != nil || !slices.Equal(got.Taxonomies, []uint{human}) {
		t.Fatalf("after remove: %+v, %v", got, err)
	}
}

func TestSampleSearchIncludesDescendants(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)

	primates := env.Taxonomy(t, 9443, "Primates")
	human := env.Taxonomy(t, 9606, "Homo sapiens", primates)
	mouse := env.Taxonomy(t, 10090, "Mus musculus")

	for name, tax := range map[string]uint{"h": human, "m": mouse} {
		if _, err := env.Catalog.Samples().Create(ctx, &types.SampleCreateRequest{Name: name, Taxonomies: []uint{tax}}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := env.Catalog.Samples().Search(ctx, "primates", "", firstPage)
	if err != nil || len(list.Samples) != 1 || list.Samples[0].Name != "h" {
		t.Fatalf("by name: %+v, %v", list, err)
	}

	list, err = env.Catalog.Samples().Search(ctx, "", "10090", firstPage)
	if err != nil || len(list.Samples) != 1 || list.Samples[0].Name != "m" {
		t.Fatalf("by id: %+v, %v", list, err)
	}

	list, err = env.Catalog.Samples().Search(ctx, "Fungi", "", firstPage)
	if err != nil || len(list.Samples) != 0 {
		t.Fatalf("unknown name: %+v, %v", list, err)
	}

	if _, err := env.Catalog.Samples().Search(ctx, "", "abc", firstPage); errs.KindOf(err) != errs.KindFieldValidation {
		t.Fatalf("bad id: %v", err)
	}
}

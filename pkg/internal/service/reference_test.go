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

func TestReferenceSequenceSearch(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	refs := env.Catalog.ReferenceSequences()

	grch37, err := refs.Create(ctx, &types.ReferenceSequenceCreateRequest{
		Name:       "GRCh37",
		Patch:      "p13",
		Accessions: []string{"GCA_000001405.14", "GCF_000001405.25"},
		Type:       model.ReferenceAssembly,
	})
	if err != nil {
		t.Fatal(err)
	}

	env.Reference(t, "BRCA1", model.ReferenceGene)

	cases := []struct {
		name, patch, accession, typ string
		want                        []uint
	}{
		{name: "grch37", want: []uint{grch37.ID}},
		{patch: "P13", want: []uint{grch37.ID}},
		{accession: "GCF_000001405.25", want: []uint{grch37.ID}},
		{accession: "GCF_000001405.2", want: []uint{}},
		{typ: "assembly", want: []uint{grch37.ID}},
	}

	for _, tc := range cases {
		list, err := refs.Search(ctx, tc.name, tc.patch, tc.accession, tc.typ, firstPage)
		if err != nil {
			t.Fatal(err)
		}

		got := []uint{}
		for _, r := range list.ReferenceSequences {
			got = append(got, r.ID)
		}

		if !slices.Equal(got, tc.want) {
			t.Errorf("%+v: got %v", tc, got)
		}
	}

	if _, err := refs.Search(ctx, "", "", "", "PLASMID", firstPage); errs.KindOf(err) != errs.KindFieldValidation {
		t.Fatalf("bad type: %v", err)
	}

	got, err := refs.Get(ctx, itoa(grch37.ID))
	if err != nil || !slices.Equal(got.Accessions, []string{"GCA_000001405.14", "GCF_000001405.25"}) {
		t.Fatalf("get = %+v, %v", got, err)
	}
}

func TestTaxonomyCreate(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	taxa := env.Catalog.Taxonomies()

	root := env.Taxonomy(t, 1, "root")
	primates := env.Taxonomy(t, 9443, "Primates", root)

	id := int64(9606)

	human, err := taxa.Create(ctx, &types.TaxonomyCreateRequest{TaxonomyID: &id, Name: "Homo sapiens", Ancestors: []uint{primates, root, primates}})
	if err != nil {
		t.Fatal(err)
	}

	got, err := taxa.Get(ctx, itoa(human.ID))
	if err != nil || !slices.Equal(got.Ancestors, []uint{root, primates}) {
		t.Fatalf("ancestors = %+v, %v", got, err)
	}

	_, err = taxa.Create(ctx, &types.TaxonomyCreateRequest{TaxonomyID: &id, Name: "again"})
	if errs.KindOf(err) != errs.KindDuplicateIdentity {
		t.Fatalf("duplicate taxonomyId: %v", err)
	}

	other := int64(10090)

	_, err = taxa.Create(ctx, &types.TaxonomyCreateRequest{TaxonomyID: &other, Name: "Mus", Ancestors: []uint{999}})
	if errs.KindOf(err) != errs.KindInvalidReference {
		t.Fatalf("unknown ancestor: %v", err)
	}

	if _, err := taxa.Get(ctx, "NCBI.1"); !errs.IsNotFound(err) {
		t.Fatalf("non numeric id: %v", err)
	}
}

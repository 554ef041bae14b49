package taxonomy_test

import (
	"context"
	"slices"
	"testing"

	"github.com/yeisme/genovault/pkg/internal/catalogtest"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/taxonomy"
)

func TestClosureWalksBothDirections(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	db := env.Client.GetDB()

	eukaryota := env.Taxonomy(t, 2759, "Eukaryota")
	mammalia := env.Taxonomy(t, 40674, "Mammalia", eukaryota)
	primates := env.Taxonomy(t, 9443, "Primates", mammalia)
	rodentia := env.Taxonomy(t, 9989, "Rodentia", mammalia)
	human := env.Taxonomy(t, 9606, "Homo sapiens", primates, eukaryota)

	down, err := taxonomy.Descendants(ctx, db, []uint{mammalia})
	if err != nil {
		t.Fatal(err)
	}

	slices.Sort(down)

	if !slices.Equal(down, []uint{mammalia, primates, rodentia, human}) {
		t.Fatalf("descendants = %v", down)
	}

	up, err := taxonomy.Ancestors(ctx, db, []uint{human})
	if err != nil {
		t.Fatal(err)
	}

	if up[0] != human || len(up) != 4 {
		t.Fatalf("ancestors = %v", up)
	}

	empty, err := taxonomy.Descendants(ctx, db, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty roots = %v, %v", empty, err)
	}
}

func TestClosureSurvivesCycles(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	db := env.Client.GetDB()

	a := env.Taxonomy(t, 1, "a")
	b := env.Taxonomy(t, 2, "b", a)

	// 直接写入 a 以 b 为祖先的边，形成环
	if err := db.Create(&model.TaxonomyAncestor{ChildID: a, AncestorID: b}).Error; err != nil {
		t.Fatal(err)
	}

	got, err := taxonomy.Descendants(ctx, db, []uint{a, a})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(got, []uint{a, b}) {
		t.Fatalf("descendants = %v", got)
	}
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	db := env.Client.GetDB()

	human := env.Taxonomy(t, 9606, "Homo sapiens")

	ids, err := taxonomy.IDsByTaxonomyID(ctx, db, 9606)
	if err != nil || !slices.Equal(ids, []uint{human}) {
		t.Fatalf("by id = %v, %v", ids, err)
	}

	ids, err = taxonomy.IDsByName(ctx, db, "HOMO SAPIENS")
	if err != nil || !slices.Equal(ids, []uint{human}) {
		t.Fatalf("by name = %v, %v", ids, err)
	}
}

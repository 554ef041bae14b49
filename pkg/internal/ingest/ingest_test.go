package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/catalogtest"
	"github.com/yeisme/genovault/pkg/internal/ingest"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/query"
	"github.com/yeisme/genovault/pkg/internal/storage/kv"
	"github.com/yeisme/genovault/pkg/internal/types"
)

func writeDoc(t *testing.T, dir, name, body string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func setup(t *testing.T) (*catalogtest.Env, kv.KVStore, *types.AnalysisResponse) {
	t.Helper()

	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	study := env.Study(t, types.StudyCreateRequest{Name: "UK10K", Taxonomy: &tax})
	ref := env.Reference(t, "GRCh37", model.ReferenceAssembly)
	analysis := env.Analysis(t, types.AnalysisCreateRequest{
		AccessionVersionID: catalogtest.AccVer("ERZ000011", 1),
		Name:               "uk10k vcf",
		Study:              &study.ID,
		ReferenceSequences: []uint{ref},
	})

	store, err := kv.NewKVStore(context.Background(), &configs.KVConfig{Type: configs.KVTypeMemory})
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = store.Close() })

	return env, store, analysis
}

func TestRunAttachesFilesToAnalysis(t *testing.T) {
	ctx := context.Background()
	env, store, analysis := setup(t)

	dir := t.TempDir()
	writeDoc(t, dir, "ERZ000011.xml", erz000011)
	writeDoc(t, dir, "ignored.txt", "not xml")

	env.Clock.Advance(time.Hour)

	in := ingest.New(env.Catalog, store, ingest.WithConcurrency(1), ingest.WithClock(env.Clock.Now))

	rep, err := in.Run(ctx, ingest.DirSource{Dir: dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if rep.Documents != 1 || rep.Files != 2 || rep.Attached != 1 || rep.Failed != 0 || rep.Skipped != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}

	if rep.BatchID == "" || rep.Source != "dir:"+dir {
		t.Fatalf("unexpected batch metadata %+v", rep)
	}

	got, err := env.Catalog.Analyses().Get(ctx, "ERZ000011.1")
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Files) != 2 {
		t.Fatalf("analysis %d has files %v, want 2", analysis.ID, got.Files)
	}

	if !got.LastModifiedDate.After(analysis.LastModifiedDate) {
		t.Errorf("lastModifiedDate %v not after %v", got.LastModifiedDate, analysis.LastModifiedDate)
	}
}

func TestRunSkipsSeenDocuments(t *testing.T) {
	ctx := context.Background()
	env, store, _ := setup(t)

	dir := t.TempDir()
	writeDoc(t, dir, "a.xml", erz000011)

	in := ingest.New(env.Catalog, store, ingest.WithConcurrency(1))

	if _, err := in.Run(ctx, ingest.DirSource{Dir: dir}); err != nil {
		t.Fatal(err)
	}

	rep, err := in.Run(ctx, ingest.DirSource{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}

	if rep.Skipped != 1 || rep.Documents != 0 {
		t.Fatalf("second run should skip, got %+v", rep)
	}

	ok, err := store.Exists(ctx, ingest.LedgerNamespace+"."+ingest.Digest([]byte(erz000011)))
	if err != nil || !ok {
		t.Fatalf("ledger entry missing: ok=%v err=%v", ok, err)
	}
}

func TestRunWithoutLedgerDeduplicatesFiles(t *testing.T) {
	ctx := context.Background()
	env, _, _ := setup(t)

	dir := t.TempDir()
	writeDoc(t, dir, "a.xml", erz000011)

	in := ingest.New(env.Catalog, nil, ingest.WithConcurrency(1))

	for range 2 {
		if _, err := in.Run(ctx, ingest.DirSource{Dir: dir}); err != nil {
			t.Fatal(err)
		}
	}

	files, err := env.Catalog.Files().List(ctx, query.Page{Size: 50})
	if err != nil {
		t.Fatal(err)
	}

	if len(files.Files) != 2 {
		t.Fatalf("expected 2 files after re-import, got %d", len(files.Files))
	}
}

func TestRunCountsFailuresAndUnknownAnalyses(t *testing.T) {
	ctx := context.Background()
	env, store, _ := setup(t)

	dir := t.TempDir()
	writeDoc(t, dir, "bad.xml", "<ANALYSIS_SET><ANALYSIS>")
	writeDoc(t, dir, "orphan.xml", `<ANALYSIS_SET><ANALYSIS accession="ERZ999"><FILES>
		<FILE filename="x.vcf" filetype="vcf" checksum="ff"/></FILES></ANALYSIS></ANALYSIS_SET>`)

	rep, err := ingest.New(env.Catalog, store, ingest.WithConcurrency(1)).Run(ctx, ingest.DirSource{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}

	if rep.Failed != 1 || rep.Documents != 1 || rep.Files != 1 || rep.Attached != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	env, store, _ := setup(t)

	_, err := ingest.New(env.Catalog, store).Run(context.Background(), ingest.DirSource{Dir: filepath.Join(t.TempDir(), "absent")})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestFromConfigFallsBackToDirectory(t *testing.T) {
	src := ingest.FromConfig(configs.IngestConfig{Dir: "data/ena", S3Prefix: "ena/"}, nil)
	if src.Name() != "dir:data/ena" {
		t.Fatalf("source = %s", src.Name())
	}
}

func TestLedgerEntriesAndForget(t *testing.T) {
	ctx := context.Background()
	env, store, _ := setup(t)

	dir := t.TempDir()
	writeDoc(t, dir, "ERZ000011.xml", erz000011)

	in := ingest.New(env.Catalog, store, ingest.WithConcurrency(1), ingest.WithClock(env.Clock.Now))
	if _, err := in.Run(ctx, ingest.DirSource{Dir: dir}); err != nil {
		t.Fatal(err)
	}

	ledger := ingest.NewLedger(store)

	entries, err := ledger.Entries(ctx)
	if err != nil {
		t.Fatal(err)
	}

	digest := ingest.Digest([]byte(erz000011))
	if len(entries) != 1 || entries[0].Digest != digest || entries[0].Key != "ERZ000011.xml" || entries[0].Files != 2 {
		t.Fatalf("unexpected ledger %+v", entries)
	}

	if ok, err := ledger.Forget(ctx, "missing"); err != nil || ok {
		t.Fatalf("forget missing: ok=%v err=%v", ok, err)
	}

	if ok, err := ledger.Forget(ctx, digest); err != nil || !ok {
		t.Fatalf("forget: ok=%v err=%v", ok, err)
	}

	rep, err := in.Run(ctx, ingest.DirSource{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}

	if rep.Documents != 1 || rep.Skipped != 0 {
		t.Fatalf("forgotten document should be processed again, got %+v", rep)
	}

	if err := ledger.Reset(ctx); err != nil {
		t.Fatal(err)
	}

	if entries, _ := ledger.Entries(ctx); len(entries) != 0 {
		t.Fatalf("reset left %d entries", len(entries))
	}
}

package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/yeisme/genovault/pkg/internal/catalogtest"
	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/relation"
	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/types"
)

// staleRevision 在研究更新读取行之后抢先递增修订号，模拟并发写入.
type staleRevision struct {
	bumps    int32 // 前 bumps 次尝试制造冲突，负数表示每次
	attempts atomic.Int32
}

func (*staleRevision) Name() string { return "stale-revision" }

func (r *staleRevision) Evaluate(ctx context.Context, tx *gorm.DB, c relation.Change) error {
	if c.Entity != "study" || c.EntityID == 0 {
		return nil
	}

	n := r.attempts.Add(1)
	if r.bumps >= 0 && n > r.bumps {
		return nil
	}

	return tx.WithContext(ctx).Exec("UPDATE studies SET revision = revision + 1 WHERE id = ?", c.EntityID).Error
}

func revisionOf(t *testing.T, env *catalogtest.Env, id uint) int64 {
	t.Helper()

	var row model.Study
	if err := env.Client.GetDB().Take(&row, id).Error; err != nil {
		t.Fatal(err)
	}

	return row.Revision
}

func TestStudyUpdateRetriesStaleRevision(t *testing.T) {
	ctx := context.Background()
	rule := &staleRevision{bumps: 1}
	env := catalogtest.New(t, catalogtest.WithService(service.WithRule(rule)))
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	study := env.Study(t, types.StudyCreateRequest{Name: "before", Taxonomy: &tax})
	before := revisionOf(t, env, study.ID)

	name := "after"

	got, err := env.Catalog.Studies().Update(ctx, itoa(study.ID), &types.StudyUpdateRequest{Name: &name})
	if err != nil {
		t.Fatalf("update after one stale read: %v", err)
	}

	if got.Name != name || rule.attempts.Load() != 2 {
		t.Fatalf("name = %q, attempts = %d", got.Name, rule.attempts.Load())
	}

	// 第一次尝试连同抢先递增一起回滚
	if rev := revisionOf(t, env, study.ID); rev != before+1 {
		t.Fatalf("revision = %d, want %d", rev, before+1)
	}
}

func TestStudyUpdateGivesUpAfterRetries(t *testing.T) {
	ctx := context.Background()
	rule := &staleRevision{bumps: -1}
	env := catalogtest.New(t, catalogtest.WithService(service.WithRule(rule), service.WithRetries(2)))
	tax := env.Taxonomy(t, 9606, "Homo sapiens")
	study := env.Study(t, types.StudyCreateRequest{Name: "before", Taxonomy: &tax})

	name := "after"

	_, err := env.Catalog.Studies().Update(ctx, itoa(study.ID), &types.StudyUpdateRequest{Name: &name})
	if errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("err = %v, want conflict", err)
	}

	if n := rule.attempts.Load(); n != 2 {
		t.Fatalf("attempts = %d, want 2", n)
	}

	got, err := env.Catalog.Studies().Get(ctx, itoa(study.ID))
	if err != nil || got.Name != "before" {
		t.Fatalf("failed update leaked: %+v, %v", got, err)
	}
}

func TestStudyLinkBumpsRevisions(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")

	a := env.Study(t, types.StudyCreateRequest{Name: "a", Taxonomy: &tax})
	b := env.Study(t, types.StudyCreateRequest{Name: "b", Taxonomy: &tax})
	c := env.Study(t, types.StudyCreateRequest{Name: "c", Taxonomy: &tax})
	revA, revB, revC := revisionOf(t, env, a.ID), revisionOf(t, env, b.ID), revisionOf(t, env, c.ID)

	children := []uint{b.ID}
	if _, err := env.Catalog.Studies().Update(ctx, itoa(a.ID), &types.StudyUpdateRequest{ChildStudies: &children}); err != nil {
		t.Fatal(err)
	}

	if revisionOf(t, env, a.ID) != revA+1 || revisionOf(t, env, b.ID) != revB+1 {
		t.Fatalf("linked studies not bumped: a=%d b=%d", revisionOf(t, env, a.ID), revisionOf(t, env, b.ID))
	}

	if revisionOf(t, env, c.ID) != revC {
		t.Fatalf("untouched study bumped: %d", revisionOf(t, env, c.ID))
	}

	// 被移出的 b 也属于受影响集合
	children = []uint{c.ID}
	if _, err := env.Catalog.Studies().Update(ctx, itoa(a.ID), &types.StudyUpdateRequest{ChildStudies: &children}); err != nil {
		t.Fatal(err)
	}

	if revisionOf(t, env, b.ID) != revB+2 || revisionOf(t, env, c.ID) != revC+1 {
		t.Fatalf("relink revisions: b=%d c=%d", revisionOf(t, env, b.ID), revisionOf(t, env, c.ID))
	}
}

func TestConcurrentLinkingStaysSymmetric(t *testing.T) {
	ctx := context.Background()
	env := catalogtest.New(t)
	tax := env.Taxonomy(t, 9606, "Homo sapiens")

	// SQLite 同一时刻只允许一个写事务
	sqlDB, err := env.Client.GetDB().DB()
	if err != nil {
		t.Fatal(err)
	}

	sqlDB.SetMaxOpenConns(1)

	const n, writers = 12, 60

	ids := make([]uint, n)
	for i := range ids {
		ids[i] = env.Study(t, types.StudyCreateRequest{Name: "s" + itoa(uint(i)), Taxonomy: &tax}).ID
	}

	var wg sync.WaitGroup

	failures := make(chan error, writers)

	for i := range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			children := []uint{ids[(i+1)%n], ids[(i+3)%n], ids[(i+5)%n]}
			if _, err := env.Catalog.Studies().Update(ctx, itoa(ids[i%n]),
				&types.StudyUpdateRequest{ChildStudies: &children}); err != nil {
				failures <- err
			}
		}()
	}

	wg.Wait()
	close(failures)

	for err := range failures {
		t.Errorf("concurrent link: %v", err)
	}

	var edges []model.StudyLink
	if err := env.Client.GetDB().Find(&edges).Error; err != nil {
		t.Fatal(err)
	}

	if len(edges) == 0 {
		t.Fatal("no links written")
	}

	type edge struct{ from, to uint }

	seen := make(map[edge]bool, len(edges))
	for _, e := range edges {
		seen[edge{e.StudyID, e.LinkedStudyID}] = true
	}

	for e := range seen {
		if e.from == e.to {
			t.Errorf("self link on %d", e.from)
		}

		if !seen[edge{e.to, e.from}] {
			t.Errorf("asymmetric link %d -> %d", e.from, e.to)
		}
	}
}

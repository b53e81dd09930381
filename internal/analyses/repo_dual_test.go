package analyses

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyRepo fails operations on demand to exercise the fallback path.
type flakyRepo struct {
	inner   *MemoryRepo
	failAll bool
}

func (f *flakyRepo) Create(ctx context.Context, analysis Analysis) error {
	if f.failAll {
		return errors.New("remote down")
	}
	return f.inner.Create(ctx, analysis)
}

func (f *flakyRepo) Update(ctx context.Context, analysis Analysis) error {
	if f.failAll {
		return errors.New("remote down")
	}
	return f.inner.Update(ctx, analysis)
}

func (f *flakyRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if f.failAll {
		return Analysis{}, errors.New("remote down")
	}
	return f.inner.GetByID(ctx, analysisID)
}

func (f *flakyRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Analysis, error) {
	if f.failAll {
		return nil, errors.New("remote down")
	}
	return f.inner.ListByUser(ctx, userID, limit)
}

func (f *flakyRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	if f.failAll {
		return 0, errors.New("remote down")
	}
	return f.inner.CountByUser(ctx, userID)
}

func testAnalysis(id, userID string, createdAt time.Time) Analysis {
	return Analysis{
		ID:        id,
		UserID:    userID,
		Symptoms:  "itchy red patches on both arms",
		Tier:      TierFree,
		Status:    StatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestDualRepoPrefersRemote(t *testing.T) {
	remote := &flakyRepo{inner: NewMemoryRepo()}
	dual := NewDualRepo(remote)
	ctx := context.Background()

	a := testAnalysis("a1", "u1", time.Now().UTC())
	if err := dual.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := remote.inner.GetByID(ctx, "a1"); err != nil {
		t.Fatalf("record should live in the remote repo: %v", err)
	}
	if _, err := dual.Local.GetByID(ctx, "a1"); !errors.Is(err, ErrNotFound) {
		t.Fatal("record must not be duplicated locally")
	}
}

func TestDualRepoCreateFallsBackLocally(t *testing.T) {
	remote := &flakyRepo{inner: NewMemoryRepo(), failAll: true}
	dual := NewDualRepo(remote)
	ctx := context.Background()

	a := testAnalysis("a1", "u1", time.Now().UTC())
	if err := dual.Create(ctx, a); err != nil {
		t.Fatalf("create should fall back, got %v", err)
	}

	got, err := dual.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("get after fallback: %v", err)
	}
	if got.ID != "a1" {
		t.Fatalf("got id %q", got.ID)
	}
}

func TestDualRepoUpdateUpsertsLocally(t *testing.T) {
	// Record created while the remote was up, updated during an outage.
	remote := &flakyRepo{inner: NewMemoryRepo()}
	dual := NewDualRepo(remote)
	ctx := context.Background()

	a := testAnalysis("a1", "u1", time.Now().UTC())
	if err := dual.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	remote.failAll = true
	a.Status = StatusCompleted
	a.Condition = "Eczema"
	if err := dual.Update(ctx, a); err != nil {
		t.Fatalf("update should fall back, got %v", err)
	}

	got, err := dual.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusCompleted || got.Condition != "Eczema" {
		t.Fatalf("local upsert not visible: %+v", got)
	}
}

func TestDualRepoListMergesAndDedups(t *testing.T) {
	remote := &flakyRepo{inner: NewMemoryRepo()}
	dual := NewDualRepo(remote)
	ctx := context.Background()
	base := time.Now().UTC()

	// Older record in remote only.
	if err := remote.inner.Create(ctx, testAnalysis("old", "u1", base.Add(-2*time.Hour))); err != nil {
		t.Fatalf("seed remote: %v", err)
	}
	// Same ID in both stores with diverging status; local must win.
	shared := testAnalysis("shared", "u1", base.Add(-time.Hour))
	if err := remote.inner.Create(ctx, shared); err != nil {
		t.Fatalf("seed remote: %v", err)
	}
	shared.Status = StatusCompleted
	if err := dual.Local.Create(ctx, shared); err != nil {
		t.Fatalf("seed local: %v", err)
	}
	// Newest record local only.
	if err := dual.Local.Create(ctx, testAnalysis("new", "u1", base)); err != nil {
		t.Fatalf("seed local: %v", err)
	}

	list, err := dual.ListByUser(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list size = %d, want 3", len(list))
	}
	if list[0].ID != "new" || list[1].ID != "shared" || list[2].ID != "old" {
		t.Fatalf("unexpected order: %s, %s, %s", list[0].ID, list[1].ID, list[2].ID)
	}
	if list[1].Status != StatusCompleted {
		t.Fatal("local copy must win for duplicated IDs")
	}
}

func TestDualRepoListSurvivesRemoteFailure(t *testing.T) {
	remote := &flakyRepo{inner: NewMemoryRepo(), failAll: true}
	dual := NewDualRepo(remote)
	ctx := context.Background()

	if err := dual.Create(ctx, testAnalysis("a1", "u1", time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := dual.ListByUser(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("list should degrade to local, got %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list size = %d, want 1", len(list))
	}
}

func TestDualRepoListHonorsLimit(t *testing.T) {
	dual := NewDualRepo(nil)
	ctx := context.Background()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		a := testAnalysis(NewID(), "u1", base.Add(time.Duration(i)*time.Minute))
		if err := dual.Create(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := dual.ListByUser(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list size = %d, want 2", len(list))
	}
}

func TestDualRepoCountDedupsUpdateFallback(t *testing.T) {
	// Created while the remote was up, updated during an outage: the record
	// then lives in both repos but is still a single scan.
	remote := &flakyRepo{inner: NewMemoryRepo()}
	dual := NewDualRepo(remote)
	ctx := context.Background()

	a := testAnalysis("a1", "u1", time.Now().UTC())
	if err := dual.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	remote.failAll = true
	a.Status = StatusCompleted
	if err := dual.Update(ctx, a); err != nil {
		t.Fatalf("update should fall back, got %v", err)
	}
	remote.failAll = false

	count, err := dual.CountByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 for a record present in both repos", count)
	}
}

func TestDualRepoCountSumsStrandedRecords(t *testing.T) {
	remote := &flakyRepo{inner: NewMemoryRepo()}
	dual := NewDualRepo(remote)
	ctx := context.Background()

	if err := dual.Create(ctx, testAnalysis("a1", "u1", time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}
	remote.failAll = true
	if err := dual.Create(ctx, testAnalysis("a2", "u1", time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}
	remote.failAll = false

	count, err := dual.CountByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

package users

import (
	"context"
	"errors"
	"testing"
)

func TestUpsertFromAuthRequiresIdentity(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "u1"}); err == nil {
		t.Fatal("expected error for missing email")
	}
	if err := svc.UpsertFromAuth(context.Background(), User{Email: "a@b.com"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestUpsertPreservesPremium(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.UpsertFromAuth(ctx, User{ID: "u1", Email: "a@b.com", Name: "A"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := svc.Upgrade(ctx, "u1"); err != nil {
		t.Fatalf("upgrade: %v", err)
	}

	// A later login must not clear the paid flag.
	if err := svc.UpsertFromAuth(ctx, User{ID: "u1", Email: "a@b.com", Name: "A renamed"}); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	user, err := svc.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !user.Premium {
		t.Fatal("premium flag lost on re-upsert")
	}
	if user.Name != "A renamed" {
		t.Fatalf("name = %q, want updated name", user.Name)
	}
}

func TestTierOfUnknownUserIsFree(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	tier, err := svc.TierOf(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != "free" {
		t.Fatalf("tier = %q, want free", tier)
	}
}

func TestTierOfPremiumUser(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := repo.Upsert(ctx, User{ID: "u1", Email: "a@b.com", Premium: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	tier, err := svc.TierOf(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier != "premium" {
		t.Fatalf("tier = %q, want premium", tier)
	}
}

func TestUpgradeCreatesUnknownUser(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Upgrade(ctx, "fresh"); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	user, err := repo.GetByID(ctx, "fresh")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !user.Premium {
		t.Fatal("upgrade must create a premium record for first-contact users")
	}
}

func TestMemoryRepoSetPremiumNotFound(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.SetPremium(context.Background(), "missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

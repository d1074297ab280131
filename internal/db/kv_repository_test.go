package db

import (
	"context"
	"testing"
)

func TestKeyValueRepositoryGetMissingKey(t *testing.T) {
	repo := NewKeyValueRepository(openTestSQLite(t))

	value, found, err := repo.Get(context.Background(), "cycles")
	if err != nil {
		t.Fatalf("get missing key: %v", err)
	}
	if found {
		t.Fatalf("expected missing key, got value %q", value)
	}
}

func TestKeyValueRepositorySetOverwritesValue(t *testing.T) {
	repo := NewKeyValueRepository(openTestSQLite(t))
	ctx := context.Background()

	if err := repo.Set(ctx, "cycles", `[]`); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := repo.Set(ctx, "cycles", `[{"id":"1"}]`); err != nil {
		t.Fatalf("second set: %v", err)
	}

	value, found, err := repo.Get(ctx, "cycles")
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if !found {
		t.Fatal("expected stored key")
	}
	if value != `[{"id":"1"}]` {
		t.Fatalf("expected overwritten value, got %q", value)
	}
}

func TestKeyValueRepositoryDelete(t *testing.T) {
	repo := NewKeyValueRepository(openTestSQLite(t))
	ctx := context.Background()

	if err := repo.Set(ctx, "cycles", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Delete(ctx, "cycles"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, err := repo.Get(ctx, "cycles"); err != nil || found {
		t.Fatalf("expected key removed, found=%v err=%v", found, err)
	}
}

package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"blockstyle/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "layouts.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	layout := []byte("title: Home\nblocks:\n  - type: hero\n")
	slug, err := s.Put(ctx, "Home Page", "Home", layout)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if slug != "home-page" {
		t.Errorf("Put() slug = %q, want home-page", slug)
	}

	got, err := s.Get(ctx, "home page")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != string(layout) {
		t.Errorf("Get() = %q, want %q", got, layout)
	}

	// replace
	if _, err := s.Put(ctx, "home-page", "Home", []byte("blocks: []\n")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got, _ = s.Get(ctx, "home-page"); string(got) != "blocks: []\n" {
		t.Errorf("Get() after replace = %q", got)
	}
}

func TestStore_SlugFromTitle(t *testing.T) {
	s := openStore(t)
	slug, err := s.Put(context.Background(), "", "Summer Sale!", []byte("blocks: []"))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if slug != "summer-sale" {
		t.Errorf("slug = %q, want summer-sale", slug)
	}
	if _, err := s.Put(context.Background(), "", "", []byte("blocks: []")); !errors.Is(err, store.ErrNoSlug) {
		t.Errorf("expected ErrNoSlug, got %v", err)
	}
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete() expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	for _, name := range []string{"landing-10", "landing-2", "about", "landing-1"} {
		if _, err := s.Put(ctx, name, name, []byte("blocks: []")); err != nil {
			t.Fatalf("Put(%s) error = %v", name, err)
		}
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"about", "landing-1", "landing-2", "landing-10"}
	if len(entries) != len(want) {
		t.Fatalf("List() = %v", entries)
	}
	for i, e := range entries {
		if e.Slug != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, e.Slug, want[i])
		}
	}

	if err := s.Delete(ctx, "landing-2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if entries, _ = s.List(ctx); len(entries) != 3 {
		t.Errorf("List() after delete = %v", entries)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	s := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Put(ctx, "x", "", []byte("blocks: []")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.db")
	s, err := store.Open(path, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.Put(context.Background(), "kept", "", []byte("blocks: []")); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = store.Open(path, nil)
	if err != nil {
		t.Fatalf("Open() again error = %v", err)
	}
	defer s.Close()
	if _, err := s.Get(context.Background(), "kept"); err != nil {
		t.Errorf("Get() after reopen error = %v", err)
	}
}

package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bookorders/pkg/order"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	b, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := b.Get(ctx, "orders"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := b.Set(ctx, "orders", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, "orders", []byte(`[{"id":2}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := b.Get(ctx, "orders")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":2}]` {
		t.Fatalf("unexpected value: %s", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the value file, got %d entries", len(entries))
	}

	if err := b.Delete(ctx, "orders"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := b.Get(ctx, "orders"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestBackendEscapesKey(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := b.Set(ctx, "../outside", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "outside.json")); err == nil {
		t.Fatal("key escaped the storage directory")
	}
}

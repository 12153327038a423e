package memory

import (
	"context"
	"errors"
	"testing"

	"bookorders/pkg/order"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()
	b := New()
	if _, err := b.Get(ctx, "orders"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := b.Set(ctx, "orders", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := b.Get(ctx, "orders")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("expected [], got %s", got)
	}
	got[0] = 'x'
	again, _ := b.Get(ctx, "orders")
	if string(again) != `[]` {
		t.Fatalf("stored value was aliased: %s", again)
	}
	if err := b.Delete(ctx, "orders"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := b.Delete(ctx, "orders"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

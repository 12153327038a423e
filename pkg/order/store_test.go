package order_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"bookorders/pkg/logger"
	"bookorders/pkg/order"
	"bookorders/pkg/order/memory"
)

func newLogger() *logger.Logger {
	return logger.New(io.Discard, logger.LevelDebug, "bookorders-test", nil)
}

// brokenBackend fails every call.
type brokenBackend struct{}

var errBroken = errors.New("backend down")

func (brokenBackend) Get(context.Context, string) ([]byte, error) { return nil, errBroken }
func (brokenBackend) Set(context.Context, string, []byte) error { return errBroken }
func (brokenBackend) Delete(context.Context, string) error { return errBroken }

func TestStoreLoadMissingKey(t *testing.T) {
	s := order.NewStore(memory.New(), order.DefaultKey, newLogger())
	got := s.Load(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil sequence, got %#v", got)
	}
}

func TestStoreLoadMalformed(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{`not json`, `null`, `{"id":1}`, `[{"id":"x"}]`} {
		b := memory.New()
		if err := b.Set(ctx, order.DefaultKey, []byte(raw)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		s := order.NewStore(b, order.DefaultKey, newLogger())
		if got := s.Load(ctx); len(got) != 0 {
			t.Fatalf("%s: expected empty sequence, got %d orders", raw, len(got))
		}
	}
}

func TestStoreLoadBackendFailure(t *testing.T) {
	s := order.NewStore(brokenBackend{}, order.DefaultKey, newLogger())
	if got := s.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty sequence, got %d orders", len(got))
	}
}

func TestStoreLoadBrowserData(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	raw := `[{"id":4,"bookTitles":"Kobzar","quantity":null,"creationDate":"2024-01-02","deliveryDate":"","deliveryService":"UkrPoshta","deliveryMethod":"To address","customerName":"Ivan","customerContacts":"ivan@example.com"}]`
	if err := b.Set(ctx, order.DefaultKey, []byte(raw)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := order.NewStore(b, order.DefaultKey, newLogger())
	got := s.Load(ctx)
	if len(got) != 1 {
		t.Fatalf("expected 1 order, got %d", len(got))
	}
	if got[0].ID != order.Int(4) || !got[0].Quantity.IsNaN() || got[0].DeliveryMethod != "To address" {
		t.Fatalf("unexpected order: %+v", got[0])
	}
}

func TestStoreMutationsPersist(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	s := order.NewStore(b, order.DefaultKey, newLogger())
	s.Load(ctx)

	s.Add(ctx, order.Order{ID: order.Int(1), CustomerName: "Olena"})
	s.Add(ctx, order.Order{ID: order.Int(2), CustomerName: "Petro"})
	s.Remove(ctx, 0)

	reloaded := order.NewStore(b, order.DefaultKey, newLogger()).Load(ctx)
	if len(reloaded) != 1 || reloaded[0].CustomerName != "Petro" {
		t.Fatalf("unexpected persisted orders: %+v", reloaded)
	}

	s.ReplaceAll(ctx, []order.Order{{ID: order.Int(9)}, {ID: order.Int(8)}})
	reloaded = order.NewStore(b, order.DefaultKey, newLogger()).Load(ctx)
	if len(reloaded) != 2 || reloaded[0].ID != order.Int(9) {
		t.Fatalf("replace not persisted: %+v", reloaded)
	}

	s.Clear(ctx)
	if _, err := b.Get(ctx, order.DefaultKey); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected key removed after clear, got %v", err)
	}
	if len(s.Orders()) != 0 {
		t.Fatal("expected empty sequence after clear")
	}
}

func TestStoreSaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	s := order.NewStore(b, order.DefaultKey, newLogger())
	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := b.Get(ctx, order.DefaultKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestStoreSaveFailureIsReported(t *testing.T) {
	ctx := context.Background()
	s := order.NewStore(brokenBackend{}, order.DefaultKey, newLogger())
	if err := s.Save(ctx, nil); !errors.Is(err, errBroken) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}

	s.Add(ctx, order.Order{ID: order.Int(1)})
	if len(s.Orders()) != 1 {
		t.Fatal("in-memory sequence must survive a failed write")
	}
}

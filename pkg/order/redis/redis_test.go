package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"bookorders/pkg/order"
)

func TestBackendUnreachable(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	b := New(client, "bookorders:")
	_, err := b.Get(context.Background(), "orders")
	if err == nil {
		t.Fatal("expected error from unreachable server")
	}
	if errors.Is(err, order.ErrNotFound) {
		t.Fatalf("connection failure must not look like a missing key: %v", err)
	}
}

func TestBackend(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer client.Close()

	b := New(client, "bookorders-test:")
	_ = b.Delete(ctx, "orders")

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
		t.Fatalf("unexpected value: %s", got)
	}
	if err := b.Delete(ctx, "orders"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := b.Delete(ctx, "orders"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

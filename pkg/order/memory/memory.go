// Package memory implements an in-memory order backend.
package memory

import (
	"context"
	"slices"
	"sync"

	"bookorders/pkg/order"
)

// Backend provides an in-memory implementation of order.Backend.
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates a new in-memory backend.
func New() *Backend {
	return &Backend{values: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	if !ok {
		return nil, order.ErrNotFound
	}
	return slices.Clone(v), nil
}

// Set stores value under key.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = slices.Clone(value)
	return nil
}

// Delete removes key.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.values[key]; !ok {
		return order.ErrNotFound
	}
	delete(b.values, key)
	return nil
}

package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"bookorders/pkg/logger"
	"bookorders/pkg/otel"
)

// Store owns the sequence of committed orders and mirrors it to a Backend
// after every mutation.
type Store struct {
	backend Backend
	key     string
	log     *logger.Logger
	orders  []Order
}

// NewStore returns a Store persisting under key. The sequence is empty
// until Load is called.
func NewStore(backend Backend, key string, log *logger.Logger) *Store {
	return &Store{
		backend: backend,
		key:     key,
		log:     log,
	}
}

// Load reads the persisted sequence and makes it current. A missing key,
// a backend failure or a value that is not a JSON array of orders all load
// as the empty sequence.
func (s *Store) Load(ctx context.Context) []Order {
	ctx, span := otel.AddSpan(ctx, "order.store.load", attribute.String("key", s.key))
	defer span.End()

	s.orders = s.read(ctx)
	span.SetAttributes(attribute.Int("orders", len(s.orders)))
	return slices.Clone(s.orders)
}

func (s *Store) read(ctx context.Context) []Order {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn(ctx, "load orders", "key", s.key, "error", err)
		}
		return []Order{}
	}

	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		s.log.Warn(ctx, "decode orders", "key", s.key, "error", err)
		return []Order{}
	}
	if orders == nil {
		return []Order{}
	}
	return orders
}

// Save writes orders to the backend, replacing what was stored.
func (s *Store) Save(ctx context.Context, orders []Order) error {
	ctx, span := otel.AddSpan(ctx, "order.store.save",
		attribute.String("key", s.key),
		attribute.Int("orders", len(orders)),
	)
	defer span.End()

	if orders == nil {
		orders = []Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}

// Orders returns a copy of the current sequence.
func (s *Store) Orders() []Order {
	return slices.Clone(s.orders)
}

// Add appends o to the sequence.
func (s *Store) Add(ctx context.Context, o Order) {
	s.orders = Append(s.orders, o)
	s.persist(ctx)
}

// Remove drops the order at index.
func (s *Store) Remove(ctx context.Context, index int) {
	s.orders = RemoveAt(s.orders, index)
	s.persist(ctx)
}

// ReplaceAll installs orders as the current sequence.
func (s *Store) ReplaceAll(ctx context.Context, orders []Order) {
	s.orders = slices.Clone(orders)
	s.persist(ctx)
}

// Clear drops every order and deletes the persisted value.
func (s *Store) Clear(ctx context.Context) {
	s.orders = []Order{}
	if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		s.log.Error(ctx, "clear orders", "key", s.key, "error", err)
	}
}

// persist saves the current sequence. Write failures are logged only.
func (s *Store) persist(ctx context.Context) {
	if err := s.Save(ctx, s.orders); err != nil {
		s.log.Error(ctx, "persist orders", "key", s.key, "error", err)
	}
}

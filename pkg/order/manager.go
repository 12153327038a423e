package order

import (
	"context"
	"sync"

	"golang.org/x/text/language"

	"bookorders/pkg/logger"
)

// DraftState is the position of the draft in its lifecycle.
type DraftState int

// Draft states. Committing returns the draft to DraftEmpty.
const (
	DraftEmpty DraftState = iota
	DraftEditing
)

func (s DraftState) String() string {
	if s == DraftEditing {
		return "editing"
	}
	return "empty"
}

// SortKey identifies the last sort applied to the sequence.
type SortKey string

// Supported sort keys.
const (
	SortNone         SortKey = ""
	SortIDReverse    SortKey = "idRev"
	SortCustomerName SortKey = "cusNm"
)

// Manager drives the order list on behalf of the rendering layer: it owns
// the draft, commits it into the Store and applies sorts. Each call runs
// to completion before the next one starts.
type Manager struct {
	mu     sync.Mutex
	store  *Store
	log    *logger.Logger
	locale language.Tag
	draft  Order
	state  DraftState
	sorted SortKey
}

// Option configures a Manager.
type Option func(*Manager)

// WithLocale sets the collation locale used by SortByCustomerName.
func WithLocale(tag language.Tag) Option {
	return func(m *Manager) { m.locale = tag }
}

// NewManager wraps store. Callers load the store before serving actions.
func NewManager(store *Store, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		log:    log,
		locale: language.Und,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Orders returns the current sequence.
func (m *Manager) Orders() []Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Orders()
}

// Draft returns the current draft and its state.
func (m *Manager) Draft() (Order, DraftState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft, m.state
}

// LastSort returns the sort most recently applied.
func (m *Manager) LastSort() SortKey {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted
}

// UpdateField sets one draft field from raw form text.
func (m *Manager) UpdateField(ctx context.Context, field, raw string) Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setField(ctx, field, raw)
	return m.draft
}

// UpdateFields sets every draft field present in fields as one action.
// Fields are applied in Fields order.
func (m *Manager) UpdateFields(ctx context.Context, fields map[string]string) Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setFields(ctx, fields)
	return m.draft
}

// Commit appends the draft to the store and resets it.
func (m *Manager) Commit(ctx context.Context) Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.commit(ctx)
}

// CommitFields sets the given draft fields and commits the draft without
// letting another action run in between.
func (m *Manager) CommitFields(ctx context.Context, fields map[string]string) Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setFields(ctx, fields)
	return m.commit(ctx)
}

// Clear drops every order and deletes the persisted value. The draft is kept.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Clear(ctx)
	m.sorted = SortNone
	m.log.Info(ctx, "orders cleared")
}

func (m *Manager) setFields(ctx context.Context, fields map[string]string) {
	for _, f := range Fields {
		if raw, ok := fields[f]; ok {
			m.setField(ctx, f, raw)
		}
	}
	for f := range fields {
		if !IsField(f) {
			m.log.Debug(ctx, "ignore draft field", "field", f)
		}
	}
}

func (m *Manager) setField(ctx context.Context, field, raw string) {
	if !IsField(field) {
		m.log.Debug(ctx, "ignore draft field", "field", field)
		return
	}
	m.draft = UpdateDraftField(m.draft, field, raw)
	m.state = DraftEditing
}

func (m *Manager) commit(ctx context.Context) Order {
	o, next := CommitDraft(m.draft)
	m.store.Add(ctx, o)
	m.draft = next
	m.state = DraftEmpty

	m.log.Info(ctx, "order committed", "id", o.ID.String(), "orders", len(m.store.orders))
	return o
}

// SortByIDReverse reorders the sequence by id, highest first.
func (m *Manager) SortByIDReverse(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.ReplaceAll(ctx, SortByIDReverse(m.store.orders))
	m.sorted = SortIDReverse
}

// SortByCustomerName reorders the sequence by customer name.
func (m *Manager) SortByCustomerName(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.ReplaceAll(ctx, SortByCustomerName(m.store.orders, m.locale))
	m.sorted = SortCustomerName
}

// Sort applies the sort named by key. It reports false for an unknown key.
func (m *Manager) Sort(ctx context.Context, key SortKey) bool {
	switch key {
	case SortIDReverse:
		m.SortByIDReverse(ctx)
	case SortCustomerName:
		m.SortByCustomerName(ctx)
	default:
		return false
	}
	return true
}

// Remove drops the order displayed at index.
func (m *Manager) Remove(ctx context.Context, index int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Remove(ctx, index)
	m.log.Info(ctx, "order removed", "index", index, "orders", len(m.store.orders))
}

package order

import (
	"context"
	"errors"
)

// DefaultKey is the storage key the order sequence is persisted under.
const DefaultKey = "orders"

// Order represents a customer purchase order for one or more books.
type Order struct {
	ID               Number `json:"id"`
	BookTitles       string `json:"bookTitles"`
	Quantity         Number `json:"quantity"`
	CreationDate     string `json:"creationDate"`
	DeliveryDate     string `json:"deliveryDate"`
	DeliveryService  string `json:"deliveryService"`
	DeliveryMethod   string `json:"deliveryMethod"`
	CustomerName     string `json:"customerName"`
	CustomerContacts string `json:"customerContacts"`
}

// Backend is a key-value persistence backend. Get returns ErrNotFound when
// nothing is stored under the key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ErrNotFound indicates the backend holds no value for the requested key.
var ErrNotFound = errors.New("key not found")

// Append returns a new sequence with o added at the end.
func Append(orders []Order, o Order) []Order {
	out := make([]Order, 0, len(orders)+1)
	out = append(out, orders...)
	return append(out, o)
}

// RemoveAt returns a new sequence without the element at index.
// An index outside the sequence yields an unchanged copy.
func RemoveAt(orders []Order, index int) []Order {
	out := make([]Order, 0, len(orders))
	for i, o := range orders {
		if i != index {
			out = append(out, o)
		}
	}
	return out
}

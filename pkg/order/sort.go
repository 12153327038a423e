package order

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByIDReverse returns a copy of orders sorted by id, highest first.
// Orders with a NaN id keep their relative order after all numeric ids.
func SortByIDReverse(orders []Order) []Order {
	out := slices.Clone(orders)
	slices.SortStableFunc(out, func(a, b Order) int {
		switch {
		case a.ID.IsNaN() && b.ID.IsNaN():
			return 0
		case a.ID.IsNaN():
			return 1
		case b.ID.IsNaN():
			return -1
		}
		return cmp.Compare(b.ID.Int64(), a.ID.Int64())
	})
	return out
}

// SortByCustomerName returns a copy of orders sorted by customer name in
// ascending collation order for the given locale. Case and diacritics only
// break ties between otherwise equal names.
func SortByCustomerName(orders []Order, locale language.Tag) []Order {
	out := slices.Clone(orders)
	c := collate.New(locale)
	var buf collate.Buffer
	keys := make(map[string][]byte, len(out))
	for _, o := range out {
		if _, ok := keys[o.CustomerName]; !ok {
			keys[o.CustomerName] = slices.Clone(c.KeyFromString(&buf, o.CustomerName))
			buf.Reset()
		}
	}
	slices.SortStableFunc(out, func(a, b Order) int {
		return slices.Compare(keys[a.CustomerName], keys[b.CustomerName])
	})
	return out
}

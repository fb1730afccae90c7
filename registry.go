package adocbib

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-adocbib/internal/bib"
)

// Order selects how finalized citations are numbered and listed.
type Order string

const (
	// OrderAppearance keeps first-seen order.
	OrderAppearance Order = "appearance"
	// OrderAlphabetical sorts by creator names, then year.
	OrderAlphabetical Order = "alphabetical"
)

// ParseOrder accepts "appearance" (the default for an empty string) and
// "alphabetical", case-insensitively.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(OrderAppearance):
		return OrderAppearance, nil
	case string(OrderAlphabetical):
		return OrderAlphabetical, nil
	default:
		return "", fmt.Errorf("%w: %q (must be appearance or alphabetical)", ErrInvalidOrder, s)
	}
}

// Lookuper finds bibliography entries by key.
type Lookuper interface {
	Lookup(key string) (*Entry, bool)
}

// Registry collects cited keys during the scan pass and freezes them into a
// numbered list. It moves from open to finalized exactly once.
// A Registry is not safe for concurrent use.
type Registry struct {
	recorded []string
	keys     []string
	index    map[string]int
	upper    cases.Caser
	closed   bool
}

// NewRegistry creates an open registry. locale drives upper-casing of sort
// keys.
func NewRegistry(locale language.Tag) *Registry {
	return &Registry{upper: cases.Upper(locale)}
}

// Record appends keys in the order they were cited. Duplicates are kept
// until Finalize.
func (r *Registry) Record(keys ...string) error {
	if r.closed {
		return ErrRegistryFinalized
	}
	r.recorded = append(r.recorded, keys...)
	return nil
}

// Finalize deduplicates the recorded keys, keeping first occurrences, and
// sorts them unless order is OrderAppearance. Sorting is stable, so ties keep
// appearance order. Keys unknown to lookup sort by the raw key.
func (r *Registry) Finalize(order Order, lookup Lookuper) error {
	if r.closed {
		return ErrRegistryFinalized
	}

	seen := make(map[string]bool, len(r.recorded))
	keys := make([]string, 0, len(r.recorded))
	for _, k := range r.recorded {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	if order != OrderAppearance {
		sortKeys := make(map[string][]string, len(keys))
		for _, k := range keys {
			sortKeys[k] = r.sortKey(k, lookup)
		}
		slices.SortStableFunc(keys, func(a, b string) int {
			return slices.Compare(sortKeys[a], sortKeys[b])
		})
	}

	r.keys = keys
	r.index = make(map[string]int, len(keys))
	for i, k := range keys {
		r.index[k] = i + 1
	}
	r.recorded = nil
	r.closed = true
	return nil
}

func (r *Registry) sortKey(key string, lookup Lookuper) []string {
	if lookup == nil {
		return []string{key}
	}
	e, ok := lookup.Lookup(key)
	if !ok {
		return []string{key}
	}
	return bib.SortKey(e, r.upper.String)
}

// Finalized reports whether Finalize has run.
func (r *Registry) Finalized() bool {
	return r.closed
}

// Index returns the 1-based citation number of key.
func (r *Registry) Index(key string) (int, error) {
	if !r.closed {
		return 0, ErrRegistryOpen
	}
	i, ok := r.index[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return i, nil
}

// Keys returns a copy of the finalized list, or nil while the registry is
// open.
func (r *Registry) Keys() []string {
	if !r.closed {
		return nil
	}
	return slices.Clone(r.keys)
}

// Len returns the number of finalized keys.
func (r *Registry) Len() int {
	return len(r.keys)
}

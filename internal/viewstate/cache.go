package viewstate

import (
	"fmt"

	"github.com/five82/shelf/internal/catalog"
)

// Predicate selects entities.
type Predicate[E catalog.Entity] func(E) bool

// Cache holds the most recently fetched snapshot of one collection.
// It is replaced wholesale on every load and never patched.
type Cache[E catalog.Entity] struct {
	items []E
}

// Load replaces the cache contents. A sequence with duplicate ids is rejected
// and the previous contents are kept.
func (c *Cache[E]) Load(entities []E) error {
	seen := make(map[int64]struct{}, len(entities))
	for _, e := range entities {
		if _, dup := seen[e.Key()]; dup {
			return fmt.Errorf("duplicate id %d in collection", e.Key())
		}
		seen[e.Key()] = struct{}{}
	}
	items := make([]E, len(entities))
	copy(items, entities)
	c.items = items
	return nil
}

// Get returns a copy of the cached sequence in load order.
func (c *Cache[E]) Get() []E {
	out := make([]E, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of cached entities.
func (c *Cache[E]) Len() int {
	return len(c.items)
}

// Lookup finds an entity by id.
func (c *Cache[E]) Lookup(id int64) (E, bool) {
	for _, e := range c.items {
		if e.Key() == id {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// CountByPredicate tallies the whole cache against each labelled predicate.
func (c *Cache[E]) CountByPredicate(predicates map[string]Predicate[E]) map[string]int {
	counts := make(map[string]int, len(predicates))
	for label, keep := range predicates {
		n := 0
		for _, e := range c.items {
			if keep(e) {
				n++
			}
		}
		counts[label] = n
	}
	return counts
}

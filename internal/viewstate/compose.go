package viewstate

import (
	"slices"

	"github.com/five82/shelf/internal/catalog"
)

// Apply derives the visible sequence from the cache: filter first, then a
// stable sort on the active column. With no active column the cache order is
// preserved.
func Apply[E catalog.Entity](cache []E, schema Schema, filter FilterState, sort SortState) []E {
	visible := make([]E, 0, len(cache))
	for _, e := range cache {
		if Match(e, schema, filter) {
			visible = append(visible, e)
		}
	}

	column, direction := sort.Active()
	if column == "" || direction == None {
		return visible
	}

	slices.SortStableFunc(visible, func(a, b E) int {
		av, _ := a.Field(column)
		bv, _ := b.Field(column)
		c := av.Compare(bv)
		if direction == Desc {
			return -c
		}
		return c
	})
	return visible
}

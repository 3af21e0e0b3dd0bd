package storage

import (
	"context"
	"fmt"

	"github.com/five82/shelf/internal/catalog"
)

func tableFor(collection string) (table, bool) {
	switch collection {
	case catalog.CollectionStores:
		return storesTable, true
	case catalog.CollectionProducts:
		return productsTable, true
	case catalog.CollectionComments:
		return commentsTable, true
	}
	return table{}, false
}

// Count returns the number of rows of a collection matching q. Ordering is
// ignored.
func (r *Repository) Count(ctx context.Context, collection string, q Query) (int, error) {
	tbl, ok := tableFor(collection)
	if !ok {
		return 0, fmt.Errorf("collection %q: %w", collection, ErrNotFound)
	}
	where, args := r.dialect.where(tbl, q)
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+tbl.name+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", tbl.name, err)
	}
	return n, nil
}

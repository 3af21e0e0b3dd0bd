package viewstate

import "github.com/five82/shelf/internal/catalog"

const labelAll = "ALL"

// StatusCounts tallies the unfiltered collection by status.
type StatusCounts struct {
	All        int
	OK         int
	Storage    int
	OutOfStock int
}

// Of returns the count for one status, or All for StatusAll.
func (c StatusCounts) Of(status catalog.Status) int {
	switch status {
	case StatusAll:
		return c.All
	case catalog.StatusOK:
		return c.OK
	case catalog.StatusStorage:
		return c.Storage
	case catalog.StatusOutOfStock:
		return c.OutOfStock
	}
	return 0
}

// Set stores the count for one status.
func (c *StatusCounts) Set(status catalog.Status, n int) {
	switch status {
	case StatusAll:
		c.All = n
	case catalog.StatusOK:
		c.OK = n
	case catalog.StatusStorage:
		c.Storage = n
	case catalog.StatusOutOfStock:
		c.OutOfStock = n
	}
}

// CountStatuses derives StatusCounts from the whole cache, independent of any
// filter currently applied to the visible sequence.
func CountStatuses[E catalog.Entity](cache *Cache[E], statusField string) StatusCounts {
	predicates := map[string]Predicate[E]{
		labelAll: func(E) bool { return true },
	}
	if statusField != "" {
		for _, s := range catalog.Statuses {
			want := s.String()
			predicates[want] = func(e E) bool {
				v, ok := e.Field(statusField)
				return ok && v.Str == want
			}
		}
	}

	tallies := cache.CountByPredicate(predicates)
	counts := StatusCounts{All: tallies[labelAll]}
	for _, s := range catalog.Statuses {
		counts.Set(s, tallies[s.String()])
	}
	return counts
}

package viewstate

import (
	"github.com/five82/shelf/internal/catalog"
)

// Controller is the view-state container of one table view. It owns the
// collection cache, the filter and sort state, the derived visible sequence
// and status counts, and the view's single dialog session.
type Controller[E catalog.Entity] struct {
	schema  Schema
	cache   Cache[E]
	filter  FilterState
	sort    SortState
	visible []E
	counts  StatusCounts
	dialog  *Dialog

	nextSub     int
	subscribers map[int]func(StatusCounts)
}

// NewController builds a controller with an empty cache and default state.
func NewController[E catalog.Entity](schema Schema, form Form) *Controller[E] {
	return &Controller[E]{
		schema:      schema,
		sort:        NewSortState(schema.Columns),
		dialog:      NewDialog(form),
		subscribers: map[int]func(StatusCounts){},
	}
}

// Load replaces the cache and recomputes everything derived from it. On error
// the previous cache and visible sequence are kept.
func (c *Controller[E]) Load(entities []E) error {
	if err := c.cache.Load(entities); err != nil {
		return err
	}
	c.recount()
	c.recompute()
	return nil
}

// SetSearch changes the search text.
func (c *Controller[E]) SetSearch(text string) {
	c.filter.Search = text
	c.recompute()
}

// SelectStatus changes the status tab; StatusAll clears the constraint.
func (c *Controller[E]) SelectStatus(status catalog.Status) {
	c.filter.Status = status
	c.recompute()
}

// PressSort advances the sort cycle of one column.
func (c *Controller[E]) PressSort(column string) error {
	if err := c.sort.Press(column); err != nil {
		return err
	}
	c.recompute()
	return nil
}

// SortDirection returns the direction indicator of one column.
func (c *Controller[E]) SortDirection(column string) Direction {
	return c.sort.Direction(column)
}

// Reset returns filter and sort to their defaults and closes any dialog.
func (c *Controller[E]) Reset() {
	c.filter = FilterState{}
	c.sort.Reset()
	c.dialog.Close()
	c.recompute()
}

// Visible returns the filtered and sorted sequence.
func (c *Controller[E]) Visible() []E {
	out := make([]E, len(c.visible))
	copy(out, c.visible)
	return out
}

// All returns the unfiltered cache.
func (c *Controller[E]) All() []E { return c.cache.Get() }

// Lookup finds a cached entity by id.
func (c *Controller[E]) Lookup(id int64) (E, bool) { return c.cache.Lookup(id) }

// Counts returns the status tallies of the unfiltered cache.
func (c *Controller[E]) Counts() StatusCounts { return c.counts }

// Filter returns the current filter state.
func (c *Controller[E]) Filter() FilterState { return c.filter }

// Sort returns the current sort state.
func (c *Controller[E]) Sort() SortState { return c.sort }

// Schema returns the collection schema.
func (c *Controller[E]) Schema() Schema { return c.schema }

// Dialog returns the view's dialog session.
func (c *Controller[E]) Dialog() *Dialog { return c.dialog }

// SubscribeCounts registers fn to receive the counts after every cache load.
// The returned func detaches the subscription.
func (c *Controller[E]) SubscribeCounts(fn func(StatusCounts)) (unsubscribe func()) {
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn
	return func() { delete(c.subscribers, id) }
}

func (c *Controller[E]) recount() {
	c.counts = CountStatuses(&c.cache, c.schema.StatusField)
	for _, fn := range c.subscribers {
		fn(c.counts)
	}
}

func (c *Controller[E]) recompute() {
	c.visible = Apply(c.cache.Get(), c.schema, c.filter, c.sort)
}

package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

// Data is the result of one fetch for a route. Fields that do not apply to the
// route are left empty.
type Data struct {
	Stores   []catalog.Store
	Store    *catalog.Store
	Products []catalog.Product
	Product  *catalog.Product
	Comments []catalog.Comment
}

// Snapshot represents the latest data available to the UI for the focused
// route.
type Snapshot struct {
	Route Route

	Stores     []catalog.Store
	Store      catalog.Store
	HasStore   bool
	Products   []catalog.Product
	Product    catalog.Product
	HasProduct bool
	Comments   []catalog.Comment

	// Version increases with every successful update so views can tell when
	// to reload their caches.
	Version             uint64
	Loaded              bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot. Data is scoped to the
// focused route: focusing a new route cancels the previous route's context and
// updates addressed to any other route are dropped.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	version  uint64
	ctx      context.Context
	cancel   context.CancelFunc
	parent   context.Context
}

// NewStore returns a Store whose route contexts derive from parent.
func NewStore(parent context.Context) *Store {
	return &Store{parent: parent}
}

// Focus makes route current and returns the context fetches for it should
// use. Focusing the current route again keeps its data and context.
func (s *Store) Focus(route Route) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx != nil && s.snapshot.Route == route {
		return s.ctx
	}
	if s.cancel != nil {
		s.cancel()
	}
	parent := s.parent
	if parent == nil {
		parent = context.Background()
	}
	s.ctx, s.cancel = context.WithCancel(parent)
	s.snapshot = Snapshot{Route: route}
	return s.ctx
}

// Current returns the focused route and its context.
func (s *Store) Current() (Route, context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ctx == nil {
		return s.snapshot.Route, context.Background()
	}
	return s.snapshot.Route, s.ctx
}

// Close cancels the focused route's context.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Update records a fetch result for route and reports whether it was applied.
// Results for a route that is no longer focused are dropped. When err is
// non-nil the previous data is kept but the error is recorded for visibility.
func (s *Store) Update(route Route, data Data, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if route != s.snapshot.Route {
		return false
	}

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return true
	}

	s.snapshot.Stores = cloneSlice(data.Stores)
	s.snapshot.Products = cloneSlice(data.Products)
	s.snapshot.Comments = cloneSlice(data.Comments)
	if data.Store != nil {
		s.snapshot.Store = *data.Store
		s.snapshot.HasStore = true
	} else {
		s.snapshot.HasStore = false
	}
	if data.Product != nil {
		s.snapshot.Product = *data.Product
		s.snapshot.HasProduct = true
	} else {
		s.snapshot.HasProduct = false
	}
	s.version++
	s.snapshot.Version = s.version
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Stores = cloneSlice(s.snapshot.Stores)
	snap.Products = cloneSlice(s.snapshot.Products)
	snap.Comments = cloneSlice(s.snapshot.Comments)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}

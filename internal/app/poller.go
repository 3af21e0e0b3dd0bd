package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/remote"
	"github.com/five82/shelf/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// Fetcher loads the data one route shows.
type Fetcher interface {
	Stores(ctx context.Context, q remote.Query) ([]catalog.Store, error)
	Store(ctx context.Context, id int64) (catalog.Store, error)
	StoreProducts(ctx context.Context, storeID int64, q remote.Query) ([]catalog.Product, error)
	Product(ctx context.Context, id int64) (catalog.Product, error)
	Comments(ctx context.Context, productID int64) ([]catalog.Comment, error)
}

// Poller refreshes the focused route of a store in the background. It polls
// at a fixed cadence, backs off while the API keeps failing and refetches
// immediately when asked to.
type Poller struct {
	store    *state.Store
	fetcher  Fetcher
	interval time.Duration
	wake     chan struct{}
}

// NewPoller returns a poller; it does nothing until Start.
func NewPoller(store *state.Store, fetcher Fetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		store:    store,
		fetcher:  fetcher,
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Start launches the polling goroutine. It returns immediately.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		failures := 0
		for {
			if refresh(p.store, p.fetcher) {
				failures = 0
			} else {
				failures++
			}
			timer := time.NewTimer(calculateBackoff(failures, p.interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-p.wake:
				timer.Stop()
				failures = 0
			case <-timer.C:
			}
		}
	}()
}

// Refresh asks for an immediate fetch of the focused route. Requests made
// while one is already queued are merged.
func (p *Poller) Refresh() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// calculateBackoff doubles the interval for each consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

// refresh fetches the focused route and records the result. It reports false
// when the fetch failed; a fetch aborted by navigation counts as success.
func refresh(store *state.Store, fetcher Fetcher) bool {
	route, ctx := store.Current()
	data, err := fetchRoute(ctx, fetcher, route)
	if ctx.Err() != nil {
		return true
	}
	store.Update(route, data, err)
	if err != nil {
		if !errors.Is(err, remote.ErrNotFound) {
			log.Printf("%s poll failed: %v", route, err)
		}
		return false
	}
	return true
}

func fetchRoute(ctx context.Context, fetcher Fetcher, route state.Route) (state.Data, error) {
	switch route.View {
	case state.ViewStores:
		stores, err := fetcher.Stores(ctx, remote.Query{})
		if err != nil {
			return state.Data{}, fmt.Errorf("fetch stores: %w", err)
		}
		return state.Data{Stores: stores}, nil

	case state.ViewStore:
		store, err := fetcher.Store(ctx, route.ID)
		if err != nil {
			return state.Data{}, fmt.Errorf("fetch store %d: %w", route.ID, err)
		}
		products, err := fetcher.StoreProducts(ctx, route.ID, remote.Query{})
		if err != nil {
			return state.Data{}, fmt.Errorf("fetch products of store %d: %w", route.ID, err)
		}
		return state.Data{Store: &store, Products: products}, nil

	case state.ViewProduct:
		product, err := fetcher.Product(ctx, route.ID)
		if err != nil {
			return state.Data{}, fmt.Errorf("fetch product %d: %w", route.ID, err)
		}
		comments, err := fetcher.Comments(ctx, route.ID)
		if err != nil {
			return state.Data{}, fmt.Errorf("fetch comments of product %d: %w", route.ID, err)
		}
		return state.Data{Product: &product, Comments: comments}, nil
	}
	return state.Data{}, nil
}

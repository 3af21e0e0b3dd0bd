package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	s := NewStore(nil)
	route := StoreRoute(3)
	s.Focus(route)

	store := &catalog.Store{ID: 3, Name: "North"}
	products := []catalog.Product{{ID: 1}, {ID: 2}}

	before := time.Now()
	if !s.Update(route, Data{Store: store, Products: products}, nil) {
		t.Fatalf("Update for focused route was dropped")
	}

	snap := s.Snapshot()
	if !snap.HasStore || snap.Store.Name != "North" {
		t.Fatalf("snapshot store = %#v, want North HasStore=true", snap.Store)
	}
	if len(snap.Products) != 2 || snap.Products[0].ID != 1 {
		t.Fatalf("snapshot products = %#v, want 2 items", snap.Products)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil || !snap.Loaded || snap.Version != 1 {
		t.Fatalf("snapshot = %#v, want loaded version 1 without error", snap)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Products[0].ID = 999
	products[1].ID = 777
	snap2 := s.Snapshot()
	if snap2.Products[0].ID != 1 || snap2.Products[1].ID != 2 {
		t.Fatalf("Snapshot should clone products; got %#v", snap2.Products)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(Stores(), Data{Stores: []catalog.Store{{ID: 1}}}, nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(Stores(), Data{}, origErr)

	snap := s.Snapshot()
	if len(snap.Stores) != 1 || snap.Stores[0].ID != 1 {
		t.Fatalf("stores changed on error: got %#v want %#v", snap.Stores, prev.Stores)
	}
	if snap.Version != prev.Version {
		t.Fatalf("Version = %d, want %d", snap.Version, prev.Version)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	for i, wantOffline := range []bool{false, true, true} {
		s.Update(Stores(), Data{}, errors.New("fail"))
		snap := s.Snapshot()
		if snap.ConsecutiveFailures != i+1 {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i+1)
		}
		if snap.IsOffline() != wantOffline {
			t.Fatalf("IsOffline() = %v after %d failures", snap.IsOffline(), i+1)
		}
	}

	s.Update(Stores(), Data{}, nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("failures = %d offline = %v, want reset after success", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestStore_FocusCancelsAndDropsStale(t *testing.T) {
	s := NewStore(nil)
	oldCtx := s.Focus(StoreRoute(1))
	s.Update(StoreRoute(1), Data{Products: []catalog.Product{{ID: 5}}}, nil)

	newCtx := s.Focus(ProductRoute(5))
	select {
	case <-oldCtx.Done():
	default:
		t.Fatalf("previous route context not cancelled")
	}
	if newCtx.Err() != nil {
		t.Fatalf("new route context already done: %v", newCtx.Err())
	}

	if s.Update(StoreRoute(1), Data{Products: []catalog.Product{{ID: 6}}}, nil) {
		t.Fatalf("stale update was applied")
	}
	snap := s.Snapshot()
	if snap.Route != ProductRoute(5) || len(snap.Products) != 0 || snap.Loaded {
		t.Fatalf("snapshot after refocus = %#v, want empty product route", snap)
	}
}

func TestStore_FocusSameRouteKeepsData(t *testing.T) {
	s := NewStore(nil)
	ctx := s.Focus(Stores())
	s.Update(Stores(), Data{Stores: []catalog.Store{{ID: 1}}}, nil)

	again := s.Focus(Stores())
	if again != ctx {
		t.Fatalf("Focus on the current route returned a new context")
	}
	if len(s.Snapshot().Stores) != 1 {
		t.Fatalf("Focus on the current route cleared data")
	}

	route, cur := s.Current()
	if route != Stores() || cur != ctx {
		t.Fatalf("Current = %v, want stores route and its context", route)
	}
	s.Close()
	if ctx.Err() == nil {
		t.Fatalf("Close did not cancel the route context")
	}
}

func TestRouteString(t *testing.T) {
	cases := map[Route]string{
		Stores():        "stores",
		StoreRoute(2):   "store/2",
		ProductRoute(9): "product/9",
		NotFound():      "notfound",
	}
	for r, want := range cases {
		if got := r.String(); got != want {
			t.Fatalf("Route.String() = %q, want %q", got, want)
		}
	}
}

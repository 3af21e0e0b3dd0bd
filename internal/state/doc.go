// Package state holds the data of the focused view between the fetcher and
// the UI.
//
// # Overview
//
// shelf shows one route at a time: the store overview, one store with its
// products, one product with its comments, or the not-found page. The Store
// in this package keeps the latest fetch result for that route and nothing
// else. It is the meeting point of the background poller, the write commands
// started by the UI, and the Bubble Tea update loop that renders snapshots.
//
// # Architecture
//
//	Writers:                         Reader:
//	┌──────────────────┐            ┌──────────────────┐
//	│ Poller.refresh() │            │ ui tick          │
//	│ Refresh() after  │            │      ↓           │
//	│ a dialog write   │            │ store.Snapshot() │
//	│      ↓           │  (RWMutex) │      ↓           │
//	│ store.Update()   │───────────→│ Controller.Load  │
//	└──────────────────┘            └──────────────────┘
//
// Navigation goes through Focus, which is the only way to change the route:
//
//	ctx := store.Focus(state.StoreRoute(7))
//	// fetches for store 7 run under ctx
//	store.Focus(state.Stores())
//	// ctx is cancelled; the snapshot is empty until the overview loads
//
// # Core Types
//
// Route:
//   - View (stores, store, product, not found) plus the entity id
//   - Comparable, so a result can be matched against the focused route
//
// Data:
//   - One fetch result; fields that do not apply to the route stay empty
//
// Snapshot:
//   - Copy of the focused route's data with Version, Loaded, LastUpdated,
//     LastError and ConsecutiveFailures
//   - HasStore and HasProduct tell a loaded entity from the zero value
//
// # Route Scoping
//
// A Store holds data for exactly one Route. Focus cancels the context it
// handed out for the previous route, so in-flight requests for a view the
// user has left are aborted, and it clears the snapshot. Focusing the route
// that is already current keeps both the data and the context.
//
// Update carries the route its data was fetched for. When that route is no
// longer focused the call returns false and changes nothing. A slow answer
// for a view the user left cannot overwrite the view they are on.
//
// # Update Semantics
//
//	// Success: replace the data
//	store.Update(route, data, nil)
//	→ Stores, Products, Comments cloned from data
//	→ Store, Product set (HasStore, HasProduct)
//	→ Version++, Loaded = true
//	→ LastError = nil, ConsecutiveFailures = 0
//
//	// Failure: keep the data, record the error
//	store.Update(route, state.Data{}, err)
//	→ data unchanged (last good result stays on screen)
//	→ LastError = err, ConsecutiveFailures++
//
// Views reload their caches only when Version changes, so a failed poll never
// resets the user's selection. After two consecutive failures
// Snapshot.IsOffline reports true and the header shows the offline badge.
//
// # Concurrency Model
//
// The Store guards its snapshot with a sync.RWMutex:
//
//   - Focus, Update, Close: write lock
//   - Snapshot, Current: read lock
//
// Slices are cloned on the way in and on the way out, so neither side can
// mutate what the other holds. The lock is never held during network I/O or
// rendering.
//
// # Testing
//
// NewStore(context.Background()) is ready for use. Tests drive the store
// directly with Focus and Update and read the result with Snapshot; no
// fetcher or goroutine is needed. Close cancels the focused route's context
// and belongs in t.Cleanup.
package state

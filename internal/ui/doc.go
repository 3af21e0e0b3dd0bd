// Package ui provides the terminal user interface for shelf.
//
// The UI is a Bubble Tea program. Model owns three viewstate controllers, one
// per table (stores, products of the focused store, comments of the focused
// product), and renders whichever route state.Store has focused:
//
//   - Stores: searchable, sortable list of every store
//   - Store: store details beside its products, with status tabs and counts
//   - Product: product details beside its comment feed
//   - Not found: shown when a store or product no longer exists
//
// Fetching happens outside the UI. A poller (see internal/app) writes route
// data into state.Store; the UI reads a snapshot on every tick and reloads the
// focused controller when the snapshot version changes. Snapshots addressed to
// another route are ignored.
//
// Writes go through dialog sessions. A form is validated locally by
// viewstate.Dialog.Prepare, the remote call runs as a tea.Cmd, and its result
// is handed back to Dialog.Complete. A failed write keeps the form open with
// the user's input.
//
// Key bindings are listed in keys.go and in the help overlay (?). All visible
// text goes through the i18n bundle; L switches between English and Russian
// and T cycles the color theme. Both choices are saved to the preferences
// file.
package ui

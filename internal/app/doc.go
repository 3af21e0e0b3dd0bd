// Package app is the composition root of the shelf TUI.
//
// # Overview
//
// Run loads the client configuration and user preferences, builds the
// translation bundle and the remote catalog for the configured backend (REST
// or OData), creates the route-scoped state.Store, starts the background
// Poller and hands everything to ui.Run. PrintCounts and PrintLog are the
// non-interactive commands behind `shelf -counts` and `shelf -log`.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read config.toml
//	       ├─────> tea.LogToFile()      log output goes to log_file
//	       ├─────> prefs.Load()         Theme and language override
//	       ├─────> i18n.New()           Embedded en/ru bundles
//	       ├─────> NewCatalog()         remote.New + remote.NewCatalog
//	       ├─────> state.NewStore()     Focused on the stores overview
//	       ├─────> Poller.Start()       Background refresh
//	       └─────> ui.Run()             Bubble Tea program (blocks)
//
// # Configuration Precedence
//
// The language comes from prefs.toml when the user has toggled it in the UI,
// otherwise from config.toml. The poll interval comes from Options.PollEvery
// (the -poll flag) when set, otherwise from poll_seconds. The theme is only
// stored in prefs.toml. A malformed prefs file is logged and ignored; a
// malformed config file stops Run.
//
// # Logging
//
// The terminal belongs to Bubble Tea, so the standard logger is redirected to
// the configured log_file for the lifetime of Run. Without a log file the
// output is discarded. `shelf -log N` prints the tail of that file.
//
// # Polling Behavior
//
// The poller always fetches the route the store is focused on:
//
//	Stores()         → Stores
//	StoreRoute(id)   → Store, StoreProducts
//	ProductRoute(id) → Product, Comments
//	NotFound()       → nothing
//
// A remote.ErrNotFound for the focused entity is recorded like any other
// error; the UI reacts to it by navigating to the not-found view. The UI
// calls Refresh after navigating or writing so the new data arrives without
// waiting a full interval.
//
// Consecutive failures double the wait from the base interval up to
// maxBackoff (30s):
//
//	failures  0    1    2    3     4+
//	wait      5s   10s  20s  30s   30s
//
// The store keeps the last good data and counts the failures so the header
// can show an offline badge.
//
// # Concurrency
//
// The poller runs on its own goroutine and talks to the UI only through the
// state.Store and a one-slot wake channel, so Refresh never blocks. Every
// fetch runs under the context of the route it was started for. A fetch
// interrupted by navigation is cancelled, and any result that still arrives
// is dropped by state.Store.Update. Run returns when the program exits or
// ctx is cancelled, which stops the poller.
package app

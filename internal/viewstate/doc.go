// Package viewstate keeps a table's rows, sort indicators and status counts
// consistent with the user's filter and sort choices.
//
// # Components
//
//   - Cache: the last fetched snapshot of a collection, unique by id and
//     replaced wholesale on every load. A load with duplicate ids fails and
//     leaves the previous cache in place.
//   - Apply: the filter/sort composer. A status constraint is ANDed with an OR
//     over the schema's text fields (case-insensitive substring) and numeric
//     fields (equality when the search text parses as a number). Whitespace
//     around the search text is ignored. Sorting is stable on a single column;
//     Desc reverses the comparison.
//   - SortState: one active column at most, cycling None -> Asc -> Desc -> None.
//     Pressing another column resets the previous one.
//   - StatusCounts: tallies of the unfiltered cache, so the status tabs never
//     depend on what is currently displayed.
//   - Dialog: the create/edit session state machine with per-field validation.
//   - Form: the tracked fields and rules of a dialog. The server validates
//     request bodies with the same forms.
//
// Controller combines them for one view. Every mutation recomputes the whole
// visible sequence; collections are catalog sized, not stream sized.
//
// # Usage
//
//	ctl := viewstate.NewController[catalog.Product](viewstate.ProductSchema, viewstate.ProductForm)
//	_ = ctl.Load(products)
//	ctl.SelectStatus(catalog.StatusOK)
//	ctl.SetSearch("lamp")
//	_ = ctl.PressSort(catalog.FieldPrice) // Asc
//	rows := ctl.Visible()
//	tabs := ctl.Counts()                  // unaffected by the filter
//
// # Dialog Sessions
//
//	Closed ──OpenCreate/OpenEdit──> Open ──Prepare──> Pending
//	  ^                              │  ^                 │
//	  └──────────Cancel──────────────┘  └─Complete(err)───┤
//	  ^                                                   │
//	  └───────────────────Complete(nil)───────────────────┘
//
// Prepare validates every tracked field. On failure the session stays Open
// and a *ValidationError names the fields. On success it returns a
// Submission and the caller performs the remote write. The result is handed
// back with Complete together with Submission.Session. Every open starts a
// new session, so the result of a write whose dialog was cancelled meanwhile
// is answered with ErrStaleSubmission and cannot close or fail the dialog
// the user has open now.
//
// Closing by any path clears values and field states and runs the hooks
// registered with OnClose; the product form uses one to detach its live count
// subscription.
//
// # Concurrency
//
// Nothing here is safe for concurrent use. A Controller belongs to one view
// and is driven from the Bubble Tea update loop. The package has no I/O:
// remote calls run in tea.Cmds and their results come back as messages that
// call Controller.Load or Dialog.Complete.
package viewstate

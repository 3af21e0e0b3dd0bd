package ui

import (
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/remote"
	"github.com/five82/shelf/internal/state"
)

// navigate focuses route. Leaving a route closes its form, clears the search
// box and resets the table the new route shows so no rows from the previous
// entity linger while the first fetch is in flight.
func (m *Model) navigate(route state.Route) tea.Cmd {
	if route == m.route {
		m.refresh()
		return nil
	}

	m.closeForm()
	m.confirm = nil
	m.stopSearch(true)
	m.route = route
	m.snapshot = state.Snapshot{Route: route}
	m.failures = 0
	m.selected = 0
	m.column = 0

	switch route.View {
	case state.ViewStores:
		m.stores.Reset()
		_ = m.stores.Load(nil)
	case state.ViewStore:
		m.products.Reset()
		_ = m.products.Load(nil)
	case state.ViewProduct:
		m.comments.Reset()
		_ = m.comments.Load(nil)
	}

	if m.store == nil {
		return nil
	}
	m.store.Focus(route)
	m.refresh()
	return fetchSnapshotCmd(m.store)
}

// goBack moves one level up the breadcrumb trail.
func (m *Model) goBack() tea.Cmd {
	switch m.route.View {
	case state.ViewProduct:
		if m.snapshot.HasProduct && m.snapshot.Product.StoreID > 0 {
			return m.navigate(state.StoreRoute(m.snapshot.Product.StoreID))
		}
		return m.navigate(state.Stores())
	case state.ViewStore, state.ViewNotFound:
		return m.navigate(state.Stores())
	}
	return nil
}

// refresh asks the poller for an immediate fetch.
func (m *Model) refresh() {
	if m.refresher != nil {
		m.refresher.Refresh()
	}
}

// applySnapshot takes in the latest fetch result for the focused route.
func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	if snap.Route != m.route {
		return nil
	}
	previousFailures := m.failures
	m.snapshot = snap
	m.failures = snap.ConsecutiveFailures

	if snap.LastError != nil {
		if errors.Is(snap.LastError, remote.ErrNotFound) &&
			(m.route.View == state.ViewStore || m.route.View == state.ViewProduct) {
			return m.navigate(state.NotFound())
		}
		if previousFailures == 0 {
			return m.showNotification(m.tr.Tf("toast.fetch_failed", snap.LastError), true)
		}
		return nil
	}

	if snap.Loaded && snap.Version != m.version {
		m.version = snap.Version
		if err := m.reload(); err != nil {
			log.Printf("reload %s: %v", m.route, err)
			return m.showNotification(m.tr.Tf("toast.load_failed", err), true)
		}
	}
	return nil
}

// reload replaces the focused table's cache with the snapshot's data.
func (m *Model) reload() error {
	var err error
	switch m.route.View {
	case state.ViewStores:
		err = m.stores.Load(m.snapshot.Stores)
	case state.ViewStore:
		err = m.products.Load(m.snapshot.Products)
	case state.ViewProduct:
		err = m.comments.Load(m.snapshot.Comments)
	}
	m.clampSelection()
	return err
}

// rowCount returns the number of visible rows in the focused table.
func (m Model) rowCount() int {
	switch m.route.View {
	case state.ViewStores:
		return len(m.stores.Visible())
	case state.ViewStore:
		return len(m.products.Visible())
	case state.ViewProduct:
		return len(m.comments.Visible())
	}
	return 0
}

// clampSelection keeps the cursor inside the visible rows.
func (m *Model) clampSelection() {
	rows := m.rowCount()
	if rows == 0 {
		m.selected = 0
		return
	}
	if m.selected >= rows {
		m.selected = rows - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// breadcrumbs returns the trail from the overview to the focused entity.
func (m Model) breadcrumbs() []string {
	crumbs := []string{m.tr.T("nav.stores")}
	switch m.route.View {
	case state.ViewStore:
		if m.snapshot.HasStore {
			crumbs = append(crumbs, m.snapshot.Store.Name)
		} else {
			crumbs = append(crumbs, "…")
		}
	case state.ViewProduct:
		crumbs = append(crumbs, m.tr.T("nav.store"))
		if m.snapshot.HasProduct {
			crumbs = append(crumbs, m.snapshot.Product.Name)
		} else {
			crumbs = append(crumbs, "…")
		}
	case state.ViewNotFound:
		crumbs = append(crumbs, m.tr.T("nav.not_found"))
	}
	return crumbs
}

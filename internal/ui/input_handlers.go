package ui

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/viewstate"
)

// handleKey routes keyboard input to the topmost layer: alert, confirmation,
// form, help, search box, then the focused view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, m.showNotification(m.tr.Tf("toast.theme", m.theme.Name), false)

	case key.Matches(msg, m.keys.Language):
		code := m.tr.Toggle()
		m.savePrefs()
		return m, m.showNotification(m.tr.Tf("toast.language", code), false)

	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		return m, m.goBack()
	}

	switch m.route.View {
	case state.ViewStores:
		return m.handleStoresKey(msg)
	case state.ViewStore:
		return m.handleStoreKey(msg)
	case state.ViewProduct:
		return m.handleProductKey(msg)
	}
	return m, nil
}

// handleStoresKey processes keys of the stores overview.
func (m Model) handleStoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleTableKey(msg, m.stores.Schema().Columns, m.stores.PressSort, m.stores.SetSearch, nil, m.stores.Reset) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Open):
		if store, ok := m.selectedStore(); ok {
			return m, m.navigate(state.StoreRoute(store.ID))
		}
	case key.Matches(msg, m.keys.New):
		return m, m.openStoreForm()
	case key.Matches(msg, m.keys.Delete):
		if store, ok := m.selectedStore(); ok {
			return m, m.promptConfirmation(m.tr.Tf("confirm.delete_store", store.Name), m.deleteStoreCmd(store.ID))
		}
	}
	return m, nil
}

// handleStoreKey processes keys of the store details view.
func (m Model) handleStoreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleTableKey(msg, m.products.Schema().Columns, m.products.PressSort, m.products.SetSearch, m.cycleStatus, m.products.Reset) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Open):
		if product, ok := m.selectedProduct(); ok {
			return m, m.navigate(state.ProductRoute(product.ID))
		}
	case key.Matches(msg, m.keys.New):
		return m, m.openProductForm(viewstate.ModeCreate, catalog.Product{StoreID: m.route.ID})
	case key.Matches(msg, m.keys.Edit):
		if product, ok := m.selectedProduct(); ok {
			return m, m.openProductForm(viewstate.ModeEdit, product)
		}
	case key.Matches(msg, m.keys.Delete):
		if product, ok := m.selectedProduct(); ok {
			return m, m.promptConfirmation(m.tr.Tf("confirm.delete_product", product.Name), m.deleteProductCmd(product.ID, product.StoreID))
		}
	case key.Matches(msg, m.keys.DeleteStore):
		if m.snapshot.HasStore {
			return m, m.promptConfirmation(m.tr.Tf("confirm.delete_store", m.snapshot.Store.Name), m.deleteStoreCmd(m.route.ID))
		}
	}
	return m, nil
}

// handleProductKey processes keys of the product details view.
func (m Model) handleProductKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleTableKey(msg, m.comments.Schema().Columns, m.comments.PressSort, m.comments.SetSearch, nil, m.comments.Reset) {
		return m, nil
	}
	if !m.snapshot.HasProduct {
		return m, nil
	}
	product := m.snapshot.Product
	switch {
	case key.Matches(msg, m.keys.Comment), key.Matches(msg, m.keys.New):
		return m, m.openCommentForm(product.ID)
	case key.Matches(msg, m.keys.Edit):
		return m, m.openProductForm(viewstate.ModeEdit, product)
	case key.Matches(msg, m.keys.Delete):
		return m, m.promptConfirmation(m.tr.Tf("confirm.delete_product", product.Name), m.deleteProductCmd(product.ID, product.StoreID))
	}
	return m, nil
}

// handleTableKey applies the keys every table view shares: cursor movement,
// search, status filter, column sort and reset. It reports whether msg was
// consumed. cycle may be nil for tables without a status.
func (m *Model) handleTableKey(
	msg tea.KeyMsg,
	columns []string,
	press func(string) error,
	setSearch func(string),
	cycle func(),
	reset func(),
) bool {
	rows := m.rowCount()
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < rows-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(rows-1, 0)
	case key.Matches(msg, m.keys.Search):
		m.startSearch(setSearch)
	case key.Matches(msg, m.keys.CycleFilter) && cycle != nil:
		cycle()
		m.clampSelection()
	case key.Matches(msg, m.keys.PrevColumn):
		if len(columns) > 0 {
			m.column = (m.column - 1 + len(columns)) % len(columns)
		}
	case key.Matches(msg, m.keys.NextColumn):
		if len(columns) > 0 {
			m.column = (m.column + 1) % len(columns)
		}
	case key.Matches(msg, m.keys.Sort):
		if m.column < len(columns) {
			_ = press(columns[m.column])
		}
	case key.Matches(msg, m.keys.Reset):
		reset()
		m.search.SetValue("")
		m.column = 0
		m.clampSelection()
	default:
		if n, ok := columnShortcut(msg); ok && n < len(columns) {
			m.column = n
			_ = press(columns[n])
			return true
		}
		return false
	}
	return true
}

// columnShortcut maps the digit keys 1-9 to column indexes.
func columnShortcut(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

// cycleStatus advances the products status tab: All, OK, Storage, Out of stock.
func (m *Model) cycleStatus() {
	tabs := append([]catalog.Status{viewstate.StatusAll}, catalog.Statuses...)
	current := m.products.Filter().Status
	for i, s := range tabs {
		if s == current {
			m.products.SelectStatus(tabs[(i+1)%len(tabs)])
			return
		}
	}
	m.products.SelectStatus(viewstate.StatusAll)
}

// startSearch focuses the search box of the current table.
func (m *Model) startSearch(setSearch func(string)) {
	m.searching = true
	m.search.Placeholder = m.tr.T("search.placeholder")
	m.search.Focus()
	setSearch(m.search.Value())
}

// stopSearch leaves the search box, dropping the text when discard is set.
func (m *Model) stopSearch(discard bool) {
	m.searching = false
	m.search.Blur()
	if discard {
		m.search.SetValue("")
	}
}

// handleSearchKey edits the search text; every change recomputes the table.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.stopSearch(false)
		return m, nil
	case "esc":
		m.stopSearch(true)
		m.setSearch("")
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearch(m.search.Value())
	return m, cmd
}

// setSearch forwards the search text to the focused table.
func (m *Model) setSearch(text string) {
	switch m.route.View {
	case state.ViewStores:
		m.stores.SetSearch(text)
	case state.ViewStore:
		m.products.SetSearch(text)
	case state.ViewProduct:
		m.comments.SetSearch(text)
	}
	m.selected = 0
	m.clampSelection()
}

func (m Model) selectedStore() (catalog.Store, bool) {
	visible := m.stores.Visible()
	if m.selected < 0 || m.selected >= len(visible) {
		return catalog.Store{}, false
	}
	return visible[m.selected], true
}

func (m Model) selectedProduct() (catalog.Product, bool) {
	visible := m.products.Visible()
	if m.selected < 0 || m.selected >= len(visible) {
		return catalog.Product{}, false
	}
	return visible[m.selected], true
}

// savePrefs persists the theme and language.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Language: m.tr.CurrentLanguage()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

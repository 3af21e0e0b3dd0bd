package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/i18n"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/remote"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/viewstate"
)

// Refresher triggers an immediate fetch of the focused route.
type Refresher interface {
	Refresh()
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   *remote.Catalog
	Store     *state.Store
	Refresher Refresher
	Bundle    *i18n.Bundle
	UITick    time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	catalog   *remote.Catalog
	store     *state.Store
	refresher Refresher
	tr        *i18n.Bundle
	prefsPath string
	uiTick    time.Duration
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	route    state.Route
	snapshot state.Snapshot
	version  uint64 // snapshot version loaded into the controllers
	failures int    // consecutive failures last reported

	// Table views
	stores    *viewstate.Controller[catalog.Store]
	products  *viewstate.Controller[catalog.Product]
	comments  *viewstate.Controller[catalog.Comment]
	tabCounts *viewstate.StatusCounts
	selected  int
	column    int

	// Search
	search    textinput.Model
	searching bool

	// Overlays
	form     *formState
	confirm  *confirmState
	alert    string
	toast    toastState
	showHelp bool
}

// New creates a new Bubble Tea model focused on the stores overview.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	uiTick := opts.UITick
	if uiTick == 0 {
		uiTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	bundle := opts.Bundle
	if bundle == nil {
		bundle, _ = i18n.New("en")
	}

	products := viewstate.NewController[catalog.Product](viewstate.ProductSchema, viewstate.ProductForm)
	tabCounts := &viewstate.StatusCounts{}
	products.SubscribeCounts(func(c viewstate.StatusCounts) { *tabCounts = c })

	search := textinput.New()
	search.Prompt = "/ "
	search.CharLimit = 80
	search.Width = 30

	route := state.Stores()
	if opts.Store != nil {
		route, _ = opts.Store.Current()
	}

	return Model{
		ctx:       ctx,
		catalog:   opts.Catalog,
		store:     opts.Store,
		refresher: opts.Refresher,
		tr:        bundle,
		prefsPath: prefsPath,
		uiTick:    uiTick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		route:     route,
		stores:    viewstate.NewController[catalog.Store](viewstate.StoreSchema, viewstate.StoreForm),
		products:  products,
		comments:  viewstate.NewController[catalog.Comment](viewstate.CommentSchema, viewstate.CommentForm),
		tabCounts: tabCounts,
		search:    search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.uiTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampSelection()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		cmd := m.applySnapshot(state.Snapshot(msg))
		return m, cmd

	case dialogDoneMsg:
		return m.handleDialogDone(msg)

	case deleteDoneMsg:
		return m.handleDeleteDone(msg)

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast = toastState{id: m.toast.id}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.tr.T("header.loading")
	}

	switch {
	case m.alert != "":
		return m.renderAlert()
	case m.confirm != nil:
		return m.renderConfirm()
	case m.form != nil:
		return m.renderForm()
	case m.showHelp:
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleTick processes the UI refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.uiTick))
	return m, tea.Batch(cmds...)
}

// renderMain renders header, command bar, content and the toast line.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	if toast := m.renderToast(); toast != "" {
		b.WriteString("\n")
		b.WriteString(toast)
	}

	return b.String()
}

// renderContent renders the view of the current route.
func (m Model) renderContent() string {
	switch m.route.View {
	case state.ViewStores:
		return m.renderStores()
	case state.ViewStore:
		return m.renderStoreDetails()
	case state.ViewProduct:
		return m.renderProductDetails()
	case state.ViewNotFound:
		return m.renderNotFound()
	default:
		return ""
	}
}

// contentHeight is the height left for the route view.
func (m Model) contentHeight() int {
	return max(m.height-3, 5) // header, command bar, toast line
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

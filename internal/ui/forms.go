package ui

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/viewstate"
)

// dialogKind names the form a dialog session belongs to.
type dialogKind int

const (
	dialogStore dialogKind = iota + 1
	dialogProduct
	dialogComment
)

// formState holds the text inputs of the open dialog. The values themselves
// live in the viewstate.Dialog; the inputs only mirror them for editing.
type formState struct {
	kind   dialogKind
	inputs []textinput.Model
	focus  int
	counts *viewstate.StatusCounts // product forms only
}

var fieldPlaceholders = map[string]string{
	catalog.FieldEstablished: catalog.DateLayout,
	catalog.FieldStatus:      "OK | STORAGE | OUT_OF_STOCK",
	catalog.FieldRating:      "0-5",
	catalog.FieldEmail:       "name@example.com",
	catalog.FieldPhoneNumber: "+1 555 0100",
}

// dialogFor returns the dialog session of a form kind.
func (m Model) dialogFor(kind dialogKind) *viewstate.Dialog {
	switch kind {
	case dialogStore:
		return m.stores.Dialog()
	case dialogProduct:
		return m.products.Dialog()
	case dialogComment:
		return m.comments.Dialog()
	}
	return nil
}

func (m *Model) openStoreForm() tea.Cmd {
	return m.openForm(dialogStore, func(d *viewstate.Dialog) error {
		return d.OpenCreate(nil)
	})
}

// openProductForm opens the product dialog. In create mode only the owning
// store id of product is used.
func (m *Model) openProductForm(mode viewstate.Mode, product catalog.Product) tea.Cmd {
	seed := map[string]string{catalog.FieldStoreID: strconv.FormatInt(product.StoreID, 10)}
	return m.openForm(dialogProduct, func(d *viewstate.Dialog) error {
		if mode == viewstate.ModeEdit {
			maps.Copy(seed, product.Fields())
			return d.OpenEdit(product.ID, seed)
		}
		return d.OpenCreate(seed)
	})
}

func (m *Model) openCommentForm(productID int64) tea.Cmd {
	seed := map[string]string{catalog.FieldProductID: strconv.FormatInt(productID, 10)}
	return m.openForm(dialogComment, func(d *viewstate.Dialog) error {
		return d.OpenCreate(seed)
	})
}

func (m *Model) openForm(kind dialogKind, open func(*viewstate.Dialog) error) tea.Cmd {
	d := m.dialogFor(kind)
	if err := open(d); err != nil {
		return m.showNotification(m.tr.Tf("toast.dialog_failed", err), true)
	}

	fs := &formState{kind: kind}
	for i, field := range d.Form().Fields {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 200
		input.Width = 36
		input.Placeholder = fieldPlaceholders[field.Name]
		input.SetValue(d.Value(field.Name))
		if i == 0 {
			input.Focus()
		}
		fs.inputs = append(fs.inputs, input)
	}

	// The store's status tallies stay live while the product form is open.
	if kind == dialogProduct {
		live := m.products.Counts()
		fs.counts = &live
		d.OnClose(m.products.SubscribeCounts(func(c viewstate.StatusCounts) { *fs.counts = c }))
	}

	m.form = fs
	return textinput.Blink
}

// closeForm cancels the open dialog, if any.
func (m *Model) closeForm() {
	if m.form == nil {
		return
	}
	m.dialogFor(m.form.kind).Cancel()
	m.form = nil
}

// handleFormKey handles keyboard input while a dialog is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fs := m.form
	d := m.dialogFor(fs.kind)

	switch {
	case msg.String() == "esc":
		m.closeForm()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitForm()

	case key.Matches(msg, m.keys.Tab):
		fs.inputs[fs.focus].Blur()
		fs.focus = (fs.focus + 1) % len(fs.inputs)
		fs.inputs[fs.focus].Focus()
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		fs.inputs[fs.focus].Blur()
		fs.focus = (fs.focus - 1 + len(fs.inputs)) % len(fs.inputs)
		fs.inputs[fs.focus].Focus()
		return m, nil

	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	if d.Pending() {
		return m, nil
	}

	var cmd tea.Cmd
	fs.inputs[fs.focus], cmd = fs.inputs[fs.focus].Update(msg)
	d.SetField(d.Form().Fields[fs.focus].Name, fs.inputs[fs.focus].Value())
	return m, cmd
}

// submitForm validates the dialog and starts the remote write.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	kind := m.form.kind
	d := m.dialogFor(kind)

	sub, err := d.Prepare()
	var invalid *viewstate.ValidationError
	switch {
	case errors.As(err, &invalid):
		labels := make([]string, 0, len(invalid.Fields))
		for _, name := range invalid.Fields {
			labels = append(labels, "• "+m.tr.T("field."+name))
		}
		m.showBlockingAlert(m.tr.T("alert.invalid") + "\n\n" + strings.Join(labels, "\n"))
		return m, nil
	case err != nil:
		return m, nil
	}
	return m, m.submitCmd(kind, sub)
}

// handleDialogDone resolves a pending submission. A failed write keeps the
// dialog open with the user's input. Results of a dialog that was closed in
// the meantime only refresh the view and report failures.
func (m Model) handleDialogDone(msg dialogDoneMsg) (tea.Model, tea.Cmd) {
	d := m.dialogFor(msg.kind)
	err := d.Complete(msg.session, msg.err)
	switch {
	case errors.Is(err, viewstate.ErrStaleSubmission), errors.Is(err, viewstate.ErrDialogClosed):
		m.refresh()
		if msg.err != nil {
			log.Printf("save %s: %v", msg.kind, msg.err)
			return m, m.showNotification(m.tr.Tf("toast.save_failed", msg.err), true)
		}
		return m, nil
	case err != nil:
		log.Printf("save %s: %v", msg.kind, err)
		return m, m.showNotification(m.tr.Tf("toast.save_failed", err), true)
	}

	if m.form != nil && m.form.kind == msg.kind {
		m.form = nil
	}
	m.refresh()
	return m, m.showNotification(m.tr.T(msg.doneKey()), false)
}

func (k dialogKind) String() string {
	switch k {
	case dialogStore:
		return "store"
	case dialogProduct:
		return "product"
	case dialogComment:
		return "comment"
	}
	return fmt.Sprintf("dialog(%d)", int(k))
}

func (k dialogKind) title(mode viewstate.Mode) string {
	switch {
	case k == dialogStore:
		return "dialog.create_store"
	case k == dialogProduct && mode == viewstate.ModeEdit:
		return "dialog.edit_product"
	case k == dialogProduct:
		return "dialog.create_product"
	default:
		return "dialog.comment"
	}
}

// renderForm renders the open dialog as a centered modal.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	fs := m.form
	d := m.dialogFor(fs.kind)
	specs := d.Form().Fields

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(m.tr.T(fs.kind.title(d.Mode()))))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 48)))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, field := range specs {
		labelWidth = max(labelWidth, lipgloss.Width(m.tr.T(field.Label)))
	}
	labelWidth += 2

	for i, field := range specs {
		label := padRight(m.tr.T(field.Label)+":", labelWidth)
		if i == fs.focus {
			label = styles.AccentText.Render(label)
		} else {
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString(fs.inputs[i].View())
		b.WriteString(" ")
		b.WriteString(m.renderFieldState(d.State(field.Name)))
		b.WriteString("\n")
	}

	if fs.counts != nil {
		c := *fs.counts
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(m.tr.Tf("dialog.store_counts", c.All, c.OK, c.Storage, c.OutOfStock)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if d.Pending() {
		b.WriteString(styles.WarningText.Render(m.tr.T("dialog.saving")))
	} else {
		b.WriteString(styles.FaintText.Render(m.tr.T("dialog.hint")))
	}

	return m.placeModal(b.String(), 64, m.theme.Accent)
}

func (m Model) renderFieldState(state viewstate.FieldState) string {
	if state == viewstate.FieldError {
		return m.theme.Styles().DangerText.Render("✗")
	}
	return " "
}

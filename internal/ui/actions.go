package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/remote"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/viewstate"
)

type dialogDoneMsg struct {
	kind    dialogKind
	session uint64
	mode    viewstate.Mode
	err     error
}

func (msg dialogDoneMsg) doneKey() string {
	switch {
	case msg.kind == dialogStore:
		return "toast.store_created"
	case msg.kind == dialogProduct && msg.mode == viewstate.ModeEdit:
		return "toast.product_saved"
	case msg.kind == dialogProduct:
		return "toast.product_created"
	default:
		return "toast.comment_posted"
	}
}

type deleteDoneMsg struct {
	kind    dialogKind // dialogStore or dialogProduct
	id      int64
	storeID int64
	err     error
}

// submitCmd performs the remote write of a validated dialog.
func (m Model) submitCmd(kind dialogKind, sub viewstate.Submission) tea.Cmd {
	ctx, cat := m.ctx, m.catalog
	return func() tea.Msg {
		return dialogDoneMsg{kind: kind, session: sub.Session, mode: sub.Mode, err: submit(ctx, cat, kind, sub)}
	}
}

func submit(ctx context.Context, cat *remote.Catalog, kind dialogKind, sub viewstate.Submission) error {
	if cat == nil {
		return fmt.Errorf("no catalog configured")
	}
	switch kind {
	case dialogStore:
		store, err := catalog.StoreFromFields(sub.Fields)
		if err != nil {
			return err
		}
		_, err = cat.CreateStore(ctx, store)
		return err

	case dialogProduct:
		product, err := catalog.ProductFromFields(sub.Fields)
		if err != nil {
			return err
		}
		if product.StoreID, err = parseID(sub.Fields[catalog.FieldStoreID]); err != nil {
			return fmt.Errorf("store id: %w", err)
		}
		if sub.Mode == viewstate.ModeEdit {
			_, err = cat.UpdateProduct(ctx, sub.TargetID, product)
		} else {
			_, err = cat.CreateProduct(ctx, product)
		}
		return err

	case dialogComment:
		comment, err := catalog.CommentFromFields(sub.Fields)
		if err != nil {
			return err
		}
		if comment.ProductID, err = parseID(sub.Fields[catalog.FieldProductID]); err != nil {
			return fmt.Errorf("product id: %w", err)
		}
		_, err = cat.PostComment(ctx, comment)
		return err
	}
	return fmt.Errorf("unknown dialog %v", kind)
}

func parseID(value string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
}

func (m Model) deleteStoreCmd(id int64) tea.Cmd {
	ctx, cat := m.ctx, m.catalog
	return func() tea.Msg {
		var err error
		if cat == nil {
			err = fmt.Errorf("no catalog configured")
		} else {
			err = cat.DeleteStore(ctx, id)
		}
		return deleteDoneMsg{kind: dialogStore, id: id, err: err}
	}
}

func (m Model) deleteProductCmd(id, storeID int64) tea.Cmd {
	ctx, cat := m.ctx, m.catalog
	return func() tea.Msg {
		var err error
		if cat == nil {
			err = fmt.Errorf("no catalog configured")
		} else {
			err = cat.DeleteProduct(ctx, id)
		}
		return deleteDoneMsg{kind: dialogProduct, id: id, storeID: storeID, err: err}
	}
}

// handleDeleteDone reports a delete and leaves the deleted entity's view.
func (m Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("delete %s %d: %v", msg.kind, msg.id, msg.err)
		return m, m.showNotification(m.tr.Tf("toast.delete_failed", msg.err), true)
	}

	toast := m.showNotification(m.tr.T("toast.deleted"), false)
	switch {
	case msg.kind == dialogStore && m.route == state.StoreRoute(msg.id):
		return m, tea.Batch(m.navigate(state.Stores()), toast)
	case msg.kind == dialogProduct && m.route == state.ProductRoute(msg.id):
		return m, tea.Batch(m.navigate(state.StoreRoute(msg.storeID)), toast)
	}
	m.refresh()
	return m, toast
}

package viewstate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/catalog"
)

func validProduct() map[string]string {
	return map[string]string{
		catalog.FieldName:                  "Widget",
		catalog.FieldPrice:                 "10",
		catalog.FieldSpecs:                 "steel",
		catalog.FieldRating:                "4.5",
		catalog.FieldSupplierInfo:          "ACME",
		catalog.FieldMadeIn:                "DE",
		catalog.FieldProductionCompanyName: "ACME GmbH",
	}
}

func assertCleared(t *testing.T, d *Dialog) {
	t.Helper()
	assert.False(t, d.IsOpen())
	assert.False(t, d.Pending())
	for _, name := range d.Form().Names() {
		assert.Empty(t, d.Value(name), name)
		assert.Equal(t, FieldNone, d.State(name), name)
	}
	assert.Empty(t, d.Values())
}

func TestDialogCreateSeedsDefaults(t *testing.T) {
	d := NewDialog(ProductForm)
	require.NoError(t, d.OpenCreate(map[string]string{catalog.FieldStoreID: "7"}))

	assert.Equal(t, ModeCreate, d.Mode())
	assert.Equal(t, "OK", d.Value(catalog.FieldStatus))
	assert.Equal(t, "7", d.Value(catalog.FieldStoreID))
	assert.Equal(t, "", d.Value(catalog.FieldName))
}

func TestDialogEditSeedsFromTarget(t *testing.T) {
	p := catalog.Product{ID: 4, Name: "Gadget", Price: 20, Status: catalog.StatusStorage}
	d := NewDialog(ProductForm)
	require.NoError(t, d.OpenEdit(p.ID, p.Fields()))

	assert.Equal(t, ModeEdit, d.Mode())
	assert.Equal(t, int64(4), d.Target())
	assert.Equal(t, "STORAGE", d.Value(catalog.FieldStatus))
	assert.Equal(t, "20", d.Value(catalog.FieldPrice))
}

func TestDialogOnlyOneSession(t *testing.T) {
	d := NewDialog(StoreForm)
	require.NoError(t, d.OpenCreate(nil))
	assert.ErrorIs(t, d.OpenCreate(nil), ErrDialogOpen)
	assert.ErrorIs(t, d.OpenEdit(1, nil), ErrDialogOpen)
}

func TestDialogFieldValidationIsPerField(t *testing.T) {
	d := NewDialog(StoreForm)
	require.NoError(t, d.OpenCreate(nil))

	assert.Equal(t, FieldError, d.SetField(catalog.FieldEmail, "not-an-email"))
	assert.Equal(t, FieldNone, d.State(catalog.FieldName))
	assert.Equal(t, FieldNone, d.SetField(catalog.FieldEmail, "shop@example.com"))
	assert.Equal(t, FieldNone, d.SetField(catalog.FieldStoreID, "untracked"))
}

func TestDialogValidationBlocksSubmit(t *testing.T) {
	d := NewDialog(ProductForm)
	require.NoError(t, d.OpenCreate(nil))
	d.SetField(catalog.FieldName, "Widget")

	called := false
	err := d.Submit(context.Background(), func(context.Context, Submission) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, catalog.FieldPrice)
	assert.NotContains(t, verr.Fields, catalog.FieldName)
	assert.False(t, called)
	assert.True(t, d.IsOpen())
	assert.Equal(t, FieldError, d.State(catalog.FieldPrice))
}

func TestDialogSubmitSuccessClears(t *testing.T) {
	d := NewDialog(ProductForm)
	require.NoError(t, d.OpenCreate(map[string]string{catalog.FieldStoreID: "3"}))
	for k, v := range validProduct() {
		d.SetField(k, v)
	}

	var got Submission
	err := d.Submit(context.Background(), func(_ context.Context, sub Submission) error {
		got = sub
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, ModeCreate, got.Mode)
	assert.Equal(t, "3", got.Fields[catalog.FieldStoreID])
	assert.Equal(t, "Widget", got.Fields[catalog.FieldName])
	assertCleared(t, d)
}

func TestDialogSubmitFailureStaysOpen(t *testing.T) {
	d := NewDialog(ProductForm)
	require.NoError(t, d.OpenEdit(2, validProduct()))
	d.SetField(catalog.FieldStatus, "OK")

	boom := errors.New("server said no")
	err := d.Submit(context.Background(), func(context.Context, Submission) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, d.IsOpen())
	assert.False(t, d.Pending())
	assert.Equal(t, "Widget", d.Value(catalog.FieldName))
}

func TestDialogPrepareCompleteSplit(t *testing.T) {
	d := NewDialog(CommentForm)
	require.NoError(t, d.OpenCreate(nil))
	d.SetField(catalog.FieldAuthor, "Ann")

	sub, err := d.Prepare()
	require.NoError(t, err)
	assert.Equal(t, "0", sub.Fields[catalog.FieldRating])
	assert.True(t, d.Pending())

	_, err = d.Prepare()
	assert.ErrorIs(t, err, ErrSubmitPending)

	require.NoError(t, d.Complete(sub.Session, nil))
	assertCleared(t, d)
	assert.ErrorIs(t, d.Complete(sub.Session, nil), ErrDialogClosed)
}

func TestDialogLateResultDoesNotResolveNewerSession(t *testing.T) {
	d := NewDialog(CommentForm)
	require.NoError(t, d.OpenCreate(nil))
	d.SetField(catalog.FieldAuthor, "Ann")
	first, err := d.Prepare()
	require.NoError(t, err)
	d.Cancel()

	require.NoError(t, d.OpenCreate(nil))
	d.SetField(catalog.FieldAuthor, "Bob")
	second, err := d.Prepare()
	require.NoError(t, err)
	require.NotEqual(t, first.Session, second.Session)

	assert.ErrorIs(t, d.Complete(first.Session, nil), ErrStaleSubmission)
	assert.True(t, d.IsOpen())
	assert.True(t, d.Pending())
	assert.Equal(t, "Bob", d.Value(catalog.FieldAuthor))

	boom := errors.New("server 500")
	assert.ErrorIs(t, d.Complete(second.Session, boom), boom)
	assert.True(t, d.IsOpen())
	assert.False(t, d.Pending())
	assert.Equal(t, "Bob", d.Value(catalog.FieldAuthor))
}

func TestDialogCancelClearsAndRunsHooks(t *testing.T) {
	ctl := NewController[catalog.Product](ProductSchema, ProductForm)
	d := ctl.Dialog()
	require.NoError(t, d.OpenCreate(nil))

	updates := 0
	d.OnClose(ctl.SubscribeCounts(func(StatusCounts) { updates++ }))
	d.SetField(catalog.FieldEmail, "x")
	d.SetField(catalog.FieldPrice, "-1")

	d.Cancel()
	assertCleared(t, d)

	require.NoError(t, ctl.Load(sampleProducts()))
	assert.Zero(t, updates)

	d.Cancel()
	assertCleared(t, d)
}

func TestDialogSetFieldWhileClosed(t *testing.T) {
	d := NewDialog(StoreForm)
	assert.Equal(t, FieldNone, d.SetField(catalog.FieldName, "x"))
	assert.Empty(t, d.Values())
	_, err := d.Prepare()
	assert.ErrorIs(t, err, ErrDialogClosed)
}

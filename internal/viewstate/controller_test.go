package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/catalog"
)

func TestControllerRecomputesOnEveryMutation(t *testing.T) {
	ctl := NewController[catalog.Product](ProductSchema, ProductForm)
	require.NoError(t, ctl.Load(sampleProducts()))
	assert.Equal(t, []int64{1, 2}, ids(ctl.Visible()))

	require.NoError(t, ctl.PressSort(catalog.FieldPrice))
	require.NoError(t, ctl.PressSort(catalog.FieldPrice))
	assert.Equal(t, []int64{2, 1}, ids(ctl.Visible()))

	ctl.SelectStatus(catalog.StatusOutOfStock)
	assert.Equal(t, []int64{2}, ids(ctl.Visible()))

	require.NoError(t, ctl.Load(append(sampleProducts(), catalog.Product{ID: 9, Price: 99, Status: catalog.StatusOutOfStock})))
	assert.Equal(t, []int64{9, 2}, ids(ctl.Visible()))

	ctl.Reset()
	assert.False(t, ctl.Filter().Active())
	assert.Equal(t, []int64{1, 2, 9}, ids(ctl.Visible()))
}

func TestControllerFailedLoadKeepsLastGood(t *testing.T) {
	ctl := NewController[catalog.Product](ProductSchema, ProductForm)
	require.NoError(t, ctl.Load(sampleProducts()))

	err := ctl.Load([]catalog.Product{{ID: 1}, {ID: 1}})
	require.Error(t, err)
	assert.Equal(t, []int64{1, 2}, ids(ctl.Visible()))
	assert.Equal(t, 2, ctl.Counts().All)
}

func TestControllerCountSubscription(t *testing.T) {
	ctl := NewController[catalog.Product](ProductSchema, ProductForm)
	var seen []StatusCounts
	unsubscribe := ctl.SubscribeCounts(func(c StatusCounts) { seen = append(seen, c) })

	require.NoError(t, ctl.Load(sampleProducts()))
	ctl.SetSearch("w")
	require.Len(t, seen, 1)
	assert.Equal(t, 2, seen[0].All)

	unsubscribe()
	require.NoError(t, ctl.Load(nil))
	assert.Len(t, seen, 1)
}

func TestControllerUnknownSortColumn(t *testing.T) {
	ctl := NewController[catalog.Store](StoreSchema, StoreForm)
	assert.Error(t, ctl.PressSort(catalog.FieldPrice))
}

package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/catalog"
)

func TestCountStatusesSumInvariant(t *testing.T) {
	cases := [][]catalog.Product{
		nil,
		sampleProducts(),
		{
			{ID: 1, Status: catalog.StatusOK},
			{ID: 2, Status: catalog.StatusStorage},
			{ID: 3, Status: catalog.StatusStorage},
			{ID: 4, Status: catalog.StatusOutOfStock},
		},
	}
	for _, products := range cases {
		var cache Cache[catalog.Product]
		require.NoError(t, cache.Load(products))
		c := CountStatuses(&cache, catalog.FieldStatus)
		assert.Equal(t, c.All, c.OK+c.Storage+c.OutOfStock)
		assert.Equal(t, len(products), c.All)
	}
}

func TestCountsIgnoreFilter(t *testing.T) {
	ctl := NewController[catalog.Product](ProductSchema, ProductForm)
	require.NoError(t, ctl.Load(sampleProducts()))
	ctl.SelectStatus(catalog.StatusOK)
	ctl.SetSearch("nothing matches this")

	assert.Empty(t, ctl.Visible())
	c := ctl.Counts()
	assert.Equal(t, 2, c.All)
	assert.Equal(t, 1, c.OK)
	assert.Equal(t, 1, c.OutOfStock)
	assert.Equal(t, 0, c.Storage)
}

func TestStatusCountsOf(t *testing.T) {
	var c StatusCounts
	c.Set(StatusAll, 7)
	c.Set(catalog.StatusStorage, 3)
	assert.Equal(t, 7, c.Of(StatusAll))
	assert.Equal(t, 3, c.Of(catalog.StatusStorage))
	assert.Equal(t, 0, c.Of(catalog.StatusOK))
}

func TestCacheRejectsDuplicateIDs(t *testing.T) {
	var cache Cache[catalog.Product]
	require.NoError(t, cache.Load(sampleProducts()))

	err := cache.Load([]catalog.Product{{ID: 5}, {ID: 5}})
	require.Error(t, err)
	assert.Equal(t, 2, cache.Len())
	p, ok := cache.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "Gadget", p.Name)
}

package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/catalog"
)

func TestSortPressCycle(t *testing.T) {
	s := NewSortState(ProductSchema.Columns)
	want := []Direction{Asc, Desc, None, Asc}
	for i, w := range want {
		require.NoError(t, s.Press(catalog.FieldName))
		assert.Equal(t, w, s.Direction(catalog.FieldName), "press %d", i+1)
	}
}

func TestSortThreePressesRestoreCacheOrder(t *testing.T) {
	cache := []catalog.Product{
		{ID: 3, Name: "c"},
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b"},
	}
	s := NewSortState(ProductSchema.Columns)
	for range 3 {
		require.NoError(t, s.Press(catalog.FieldName))
	}
	col, dir := s.Active()
	assert.Equal(t, "", col)
	assert.Equal(t, None, dir)
	assert.Equal(t, []int64{3, 1, 2}, ids(Apply(cache, ProductSchema, FilterState{}, s)))
}

func TestSortSecondColumnResetsFirst(t *testing.T) {
	s := NewSortState(ProductSchema.Columns)
	require.NoError(t, s.Press(catalog.FieldName))
	require.NoError(t, s.Press(catalog.FieldName))
	require.NoError(t, s.Press(catalog.FieldPrice))

	assert.Equal(t, None, s.Direction(catalog.FieldName))
	assert.Equal(t, Asc, s.Direction(catalog.FieldPrice))
}

func TestSortUnknownColumn(t *testing.T) {
	s := NewSortState(ProductSchema.Columns)
	require.NoError(t, s.Press(catalog.FieldPrice))
	assert.Error(t, s.Press("colour"))
	assert.Equal(t, Asc, s.Direction(catalog.FieldPrice))
}

func TestSortOrdering(t *testing.T) {
	s := NewSortState(ProductSchema.Columns)
	assert.Equal(t, "", s.Ordering())
	require.NoError(t, s.Press(catalog.FieldRating))
	assert.Equal(t, "rating", s.Ordering())
	require.NoError(t, s.Press(catalog.FieldRating))
	assert.Equal(t, "-rating", s.Ordering())
	s.Reset()
	assert.Equal(t, "", s.Ordering())
}

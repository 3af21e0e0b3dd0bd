package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/catalog"
)

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Widget", Price: 10, Status: catalog.StatusOK},
		{ID: 2, Name: "Gadget", Price: 20, Status: catalog.StatusOutOfStock},
	}
}

func ids(products []catalog.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyStatusAndSearchAreANDed(t *testing.T) {
	cache := sampleProducts()
	got := Apply(cache, ProductSchema, FilterState{Status: catalog.StatusOK, Search: "Gadg"}, NewSortState(ProductSchema.Columns))
	assert.Empty(t, got)
}

func TestApplySubstringIsCaseInsensitive(t *testing.T) {
	cache := sampleProducts()
	got := Apply(cache, ProductSchema, FilterState{Search: "DGET"}, NewSortState(ProductSchema.Columns))
	assert.Equal(t, []int64{1, 2}, ids(got))

	got = Apply(cache, ProductSchema, FilterState{Status: catalog.StatusOK, Search: "dget"}, NewSortState(ProductSchema.Columns))
	assert.Equal(t, []int64{1}, ids(got))
}

func TestApplyNumericSearchMatchesPrice(t *testing.T) {
	got := Apply(sampleProducts(), ProductSchema, FilterState{Search: "10"}, NewSortState(ProductSchema.Columns))
	assert.Equal(t, []int64{1}, ids(got))

	got = Apply(sampleProducts(), ProductSchema, FilterState{Search: " 20.0 "}, NewSortState(ProductSchema.Columns))
	assert.Equal(t, []int64{2}, ids(got))
}

func TestApplySearchIgnoresSurroundingWhitespace(t *testing.T) {
	got := Apply(sampleProducts(), ProductSchema, FilterState{Search: " wid "}, NewSortState(ProductSchema.Columns))
	assert.Equal(t, []int64{1}, ids(got))

	got = Apply(sampleProducts(), ProductSchema, FilterState{Status: catalog.StatusOK, Search: "   "}, NewSortState(ProductSchema.Columns))
	assert.Equal(t, []int64{1}, ids(got))
}

func TestApplyNonNumericSearchSkipsNumericFields(t *testing.T) {
	got := Apply(sampleProducts(), ProductSchema, FilterState{Search: "ten"}, NewSortState(ProductSchema.Columns))
	assert.Empty(t, got)

	got = Apply(sampleProducts(), ProductSchema, FilterState{Search: "NaN"}, NewSortState(ProductSchema.Columns))
	assert.Empty(t, got)
}

func TestApplyEmptyFilterReturnsWholeCache(t *testing.T) {
	cache := sampleProducts()
	got := Apply(cache, ProductSchema, FilterState{}, NewSortState(ProductSchema.Columns))
	assert.Equal(t, ids(cache), ids(got))
}

func TestApplyStatusFilterOnlyKeepsThatStatus(t *testing.T) {
	cache := append(sampleProducts(),
		catalog.Product{ID: 3, Name: "Sprocket", Status: catalog.StatusStorage},
		catalog.Product{ID: 4, Name: "Gizmo", Status: catalog.StatusOK},
	)
	for _, status := range catalog.Statuses {
		got := Apply(cache, ProductSchema, FilterState{Status: status}, NewSortState(ProductSchema.Columns))
		for _, p := range got {
			assert.Equal(t, status, p.Status)
		}
	}
}

func TestApplySortDescending(t *testing.T) {
	sort := NewSortState(ProductSchema.Columns)
	require.NoError(t, sort.Press(catalog.FieldPrice))
	require.NoError(t, sort.Press(catalog.FieldPrice))
	require.Equal(t, Desc, sort.Direction(catalog.FieldPrice))

	got := Apply(sampleProducts(), ProductSchema, FilterState{}, sort)
	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestApplySortIsStable(t *testing.T) {
	cache := []catalog.Product{
		{ID: 1, Name: "b", Price: 5},
		{ID: 2, Name: "a", Price: 5},
		{ID: 3, Name: "c", Price: 1},
	}
	sort := NewSortState(ProductSchema.Columns)
	require.NoError(t, sort.Press(catalog.FieldPrice))
	assert.Equal(t, []int64{3, 1, 2}, ids(Apply(cache, ProductSchema, FilterState{}, sort)))

	require.NoError(t, sort.Press(catalog.FieldPrice))
	assert.Equal(t, []int64{1, 2, 3}, ids(Apply(cache, ProductSchema, FilterState{}, sort)))
}

func TestApplySortsDatesChronologically(t *testing.T) {
	day := func(s string) catalog.Date {
		tm, err := catalog.ParseTime(s)
		require.NoError(t, err)
		return catalog.Date{Time: tm}
	}
	cache := []catalog.Store{
		{ID: 1, Name: "Late", Established: day("2020-05-01")},
		{ID: 2, Name: "Early", Established: day("1999-12-31")},
	}
	sort := NewSortState(StoreSchema.Columns)
	require.NoError(t, sort.Press(catalog.FieldEstablished))
	got := Apply(cache, StoreSchema, FilterState{}, sort)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestApplyStoreSearchUsesFloorArea(t *testing.T) {
	cache := []catalog.Store{
		{ID: 1, Name: "North", Address: "1 Main St", FloorArea: 120},
		{ID: 2, Name: "South", Address: "9 Elm Rd", FloorArea: 300},
	}
	got := Apply(cache, StoreSchema, FilterState{Search: "300"}, NewSortState(StoreSchema.Columns))
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	got = Apply(cache, StoreSchema, FilterState{Search: "main"}, NewSortState(StoreSchema.Columns))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

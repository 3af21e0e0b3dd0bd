package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/catalog"
)

func openTest(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "shelf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func mustStore(t *testing.T, repo *Repository, name, address string, area float64) catalog.Store {
	t.Helper()
	s, err := repo.CreateStore(context.Background(), catalog.Store{
		Name: name, Email: "x@example.com", PhoneNumber: "+1 555 0100", Address: address,
		Established: seedDate("2020-01-02"), FloorArea: area,
	})
	require.NoError(t, err)
	return s
}

func mustProduct(t *testing.T, repo *Repository, storeID int64, name string, price float64, status catalog.Status) catalog.Product {
	t.Helper()
	p, err := repo.CreateProduct(context.Background(), catalog.Product{
		Name: name, Price: price, Specs: "spec", Rating: 3, SupplierInfo: "sup",
		MadeIn: "Norway", ProductionCompanyName: "maker", Status: status, StoreID: storeID,
	})
	require.NoError(t, err)
	return p
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	require.Error(t, err)
}

func TestStores_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)

	created := mustStore(t, repo, "Alpha", "1 Main St", 120)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "2020-01-02", created.Established.Format(catalog.DateLayout))

	got, err := repo.GetStore(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got.Name = "Alpha Prime"
	updated, err := repo.UpdateStore(ctx, created.ID, got)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Prime", updated.Name)

	require.NoError(t, repo.DeleteStore(ctx, created.ID))
	_, err = repo.GetStore(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteStore(ctx, created.ID), ErrNotFound)
}

func TestListStores_SearchAndOrdering(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	mustStore(t, repo, "Alpha Market", "1 Main St", 120)
	mustStore(t, repo, "Beta Shop", "9 Side Rd", 80)
	mustStore(t, repo, "Gamma 100%", "Main Square", 100)

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{name: "all by id", q: Query{}, want: []string{"Alpha Market", "Beta Shop", "Gamma 100%"}},
		{name: "name or address", q: Query{Search: "main"}, want: []string{"Alpha Market", "Gamma 100%"}},
		{name: "case insensitive", q: Query{Search: "BETA"}, want: []string{"Beta Shop"}},
		{name: "surrounding whitespace ignored", q: Query{Search: " beta "}, want: []string{"Beta Shop"}},
		{name: "numeric floor area", q: Query{Search: "80"}, want: []string{"Beta Shop"}},
		{name: "like wildcard escaped", q: Query{Search: "%"}, want: []string{"Gamma 100%"}},
		{name: "order desc", q: Query{Ordering: "-floor_area"}, want: []string{"Alpha Market", "Gamma 100%", "Beta Shop"}},
		{name: "order asc", q: Query{Ordering: "name"}, want: []string{"Alpha Market", "Beta Shop", "Gamma 100%"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stores, err := repo.ListStores(ctx, tc.q)
			require.NoError(t, err)
			names := make([]string, len(stores))
			for i, s := range stores {
				names[i] = s.Name
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestList_RejectsUnknownOrdering(t *testing.T) {
	repo := openTest(t)
	_, err := repo.ListStores(context.Background(), Query{Ordering: "email; DROP TABLE stores"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestProducts_ScopeStatusAndCount(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	a := mustStore(t, repo, "A", "a", 1)
	b := mustStore(t, repo, "B", "b", 2)
	mustProduct(t, repo, a.ID, "Lamp", 20, catalog.StatusOK)
	mustProduct(t, repo, a.ID, "Desk", 150, catalog.StatusStorage)
	mustProduct(t, repo, a.ID, "Chair", 60, catalog.StatusOK)
	mustProduct(t, repo, b.ID, "Rug", 200, catalog.StatusOutOfStock)

	products, err := repo.ListProducts(ctx, Query{Store: a.ID, Status: catalog.StatusOK, Ordering: "-price"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Chair", products[0].Name)
	assert.Equal(t, "Lamp", products[1].Name)

	total, err := repo.Count(ctx, catalog.CollectionProducts, Query{Store: a.ID})
	require.NoError(t, err)
	sum := 0
	for _, s := range catalog.Statuses {
		n, err := repo.Count(ctx, catalog.CollectionProducts, Query{Store: a.ID, Status: s})
		require.NoError(t, err)
		sum += n
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, total, sum)

	products, err = repo.ListProducts(ctx, Query{Store: a.ID, Search: "150"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Desk", products[0].Name)
}

func TestCreateProduct_MissingStore(t *testing.T) {
	repo := openTest(t)
	_, err := repo.CreateProduct(context.Background(), catalog.Product{Name: "x", Status: catalog.StatusOK, StoreID: 42})
	assert.ErrorIs(t, err, ErrMissingParent)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUpdateProduct_KeepsStore(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	s := mustStore(t, repo, "A", "a", 1)
	p := mustProduct(t, repo, s.ID, "Lamp", 20, catalog.StatusOK)

	p.StoreID = 0
	p.Status = catalog.StatusOutOfStock
	updated, err := repo.UpdateProduct(ctx, p.ID, p)
	require.NoError(t, err)
	assert.Equal(t, s.ID, updated.StoreID)
	assert.Equal(t, catalog.StatusOutOfStock, updated.Status)
}

func TestUpdateProduct_MissingStoreOrRow(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	s := mustStore(t, repo, "A", "a", 1)
	p := mustProduct(t, repo, s.ID, "Lamp", 20, catalog.StatusOK)

	p.StoreID = 9999
	_, err := repo.UpdateProduct(ctx, p.ID, p)
	assert.ErrorIs(t, err, ErrMissingParent)
	assert.NotErrorIs(t, err, ErrNotFound)

	p.StoreID = s.ID
	_, err = repo.UpdateProduct(ctx, 9999, p)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStore_Cascades(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	s := mustStore(t, repo, "A", "a", 1)
	p := mustProduct(t, repo, s.ID, "Lamp", 20, catalog.StatusOK)
	_, err := repo.CreateComment(ctx, catalog.Comment{Author: "ann", Message: "ok", Rating: 4, ProductID: p.ID})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteStore(ctx, s.ID))

	_, err = repo.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	n, err := repo.Count(ctx, catalog.CollectionComments, Query{Product: p.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestComments_StampAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	s := mustStore(t, repo, "A", "a", 1)
	p := mustProduct(t, repo, s.ID, "Lamp", 20, catalog.StatusOK)

	later := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := repo.CreateComment(ctx, catalog.Comment{Author: "late", Rating: 2, ProductID: p.ID, Posted: catalog.Timestamp{Time: later}})
	require.NoError(t, err)
	_, err = repo.CreateComment(ctx, catalog.Comment{Author: "early", Rating: 5, ProductID: p.ID, Posted: catalog.Timestamp{Time: later.Add(-time.Hour)}})
	require.NoError(t, err)
	stamped, err := repo.CreateComment(ctx, catalog.Comment{Author: "now", ProductID: p.ID})
	require.NoError(t, err)
	assert.False(t, stamped.Posted.IsZero())

	comments, err := repo.ListComments(ctx, Query{Product: p.ID, Ordering: catalog.FieldPosted})
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "early", comments[0].Author)
	assert.Equal(t, "late", comments[1].Author)
	assert.True(t, comments[1].Posted.Equal(later))

	_, err = repo.CreateComment(ctx, catalog.Comment{Author: "ghost", ProductID: 999})
	assert.ErrorIs(t, err, ErrMissingParent)
}

func TestSeed_OnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)

	seeded, err := repo.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	stores, err := repo.ListStores(ctx, Query{})
	require.NoError(t, err)
	assert.Len(t, stores, len(seedData))

	seeded, err = repo.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
}

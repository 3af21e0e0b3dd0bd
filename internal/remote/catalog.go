package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

// Catalog wraps a Service with typed operations on stores, products and
// comments.
type Catalog struct {
	svc Service
	now func() time.Time
}

// NewCatalog returns a Catalog over svc.
func NewCatalog(svc Service) *Catalog {
	return &Catalog{svc: svc, now: time.Now}
}

// Service returns the underlying collection service.
func (c *Catalog) Service() Service { return c.svc }

// Stores lists stores.
func (c *Catalog) Stores(ctx context.Context, q Query) ([]catalog.Store, error) {
	var stores []catalog.Store
	if err := c.svc.List(ctx, catalog.CollectionStores, q, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// Store fetches one store.
func (c *Catalog) Store(ctx context.Context, id int64) (catalog.Store, error) {
	var store catalog.Store
	if err := c.svc.Get(ctx, catalog.CollectionStores, id, &store); err != nil {
		return catalog.Store{}, err
	}
	return store, nil
}

// StoreProducts lists the products of one store.
func (c *Catalog) StoreProducts(ctx context.Context, storeID int64, q Query) ([]catalog.Product, error) {
	q.Store = storeID
	var products []catalog.Product
	if err := c.svc.List(ctx, catalog.CollectionProducts, q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches one product.
func (c *Catalog) Product(ctx context.Context, id int64) (catalog.Product, error) {
	var product catalog.Product
	if err := c.svc.Get(ctx, catalog.CollectionProducts, id, &product); err != nil {
		return catalog.Product{}, err
	}
	return product, nil
}

// Comments lists the comment feed of one product, oldest first.
func (c *Catalog) Comments(ctx context.Context, productID int64) ([]catalog.Comment, error) {
	q := Query{Product: productID, Ordering: catalog.FieldPosted}
	var comments []catalog.Comment
	if err := c.svc.List(ctx, catalog.CollectionComments, q, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateStore creates a store and returns it with its assigned id.
func (c *Catalog) CreateStore(ctx context.Context, store catalog.Store) (catalog.Store, error) {
	var created catalog.Store
	if err := c.svc.Create(ctx, catalog.CollectionStores, store, &created); err != nil {
		return catalog.Store{}, err
	}
	return created, nil
}

// DeleteStore removes a store.
func (c *Catalog) DeleteStore(ctx context.Context, id int64) error {
	return c.svc.Delete(ctx, catalog.CollectionStores, id)
}

// CreateProduct creates a product in product.StoreID.
func (c *Catalog) CreateProduct(ctx context.Context, product catalog.Product) (catalog.Product, error) {
	if product.StoreID <= 0 {
		return catalog.Product{}, fmt.Errorf("create product: store id required")
	}
	var created catalog.Product
	if err := c.svc.Create(ctx, catalog.CollectionProducts, product, &created); err != nil {
		return catalog.Product{}, err
	}
	return created, nil
}

// UpdateProduct replaces the editable fields of a product.
func (c *Catalog) UpdateProduct(ctx context.Context, id int64, product catalog.Product) (catalog.Product, error) {
	product.ID = id
	var updated catalog.Product
	if err := c.svc.Update(ctx, catalog.CollectionProducts, id, product, &updated); err != nil {
		return catalog.Product{}, err
	}
	return updated, nil
}

// DeleteProduct removes a product.
func (c *Catalog) DeleteProduct(ctx context.Context, id int64) error {
	return c.svc.Delete(ctx, catalog.CollectionProducts, id)
}

// PostComment appends a comment to a product's feed, stamping it with the
// current time when unset.
func (c *Catalog) PostComment(ctx context.Context, comment catalog.Comment) (catalog.Comment, error) {
	if comment.ProductID <= 0 {
		return catalog.Comment{}, fmt.Errorf("post comment: product id required")
	}
	if comment.Posted.IsZero() {
		comment.Posted = catalog.Timestamp{Time: c.now()}
	}
	var created catalog.Comment
	if err := c.svc.Create(ctx, catalog.CollectionComments, comment, &created); err != nil {
		return catalog.Comment{}, err
	}
	return created, nil
}

// CountResult is one slice of a per-status count batch. Status zero is the
// unfiltered total.
type CountResult struct {
	Status catalog.Status
	Count  int
	Err    error
}

// CountByStatus counts a store's products once in total and once per status.
// The requests run concurrently and fail independently; results are ordered
// total first, then catalog.Statuses.
func (c *Catalog) CountByStatus(ctx context.Context, storeID int64) []CountResult {
	statuses := append([]catalog.Status{0}, catalog.Statuses...)
	results := make([]CountResult, len(statuses))

	var wg sync.WaitGroup
	for i, status := range statuses {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := c.svc.Count(ctx, catalog.CollectionProducts, Query{Store: storeID, Status: status})
			results[i] = CountResult{Status: status, Count: n, Err: err}
		}()
	}
	wg.Wait()
	return results
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/five82/shelf/internal/catalog"
)

func productValues(p catalog.Product) []any {
	return []any{
		p.Name, p.Price, p.Specs, p.Rating, p.SupplierInfo, p.MadeIn,
		p.ProductionCompanyName, p.Status.String(), p.StoreID,
	}
}

func scanProduct(row interface{ Scan(...any) error }) (catalog.Product, error) {
	var (
		p      catalog.Product
		status string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Specs, &p.Rating, &p.SupplierInfo,
		&p.MadeIn, &p.ProductionCompanyName, &status, &p.StoreID); err != nil {
		return catalog.Product{}, err
	}
	s, err := catalog.ParseStatus(status)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("product %d: %w", p.ID, err)
	}
	p.Status = s
	return p, nil
}

// ListProducts returns the products matching q.
func (r *Repository) ListProducts(ctx context.Context, q Query) ([]catalog.Product, error) {
	rows, err := r.list(ctx, productsTable, q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []catalog.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan products: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct returns one product.
func (r *Repository) GetProduct(ctx context.Context, id int64) (catalog.Product, error) {
	p, err := scanProduct(r.getRow(ctx, productsTable, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// CreateProduct inserts p into its store. A missing store is ErrNotFound.
func (r *Repository) CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if !p.Status.Valid() {
		return catalog.Product{}, fmt.Errorf("%w: product status %d", ErrInvalidQuery, p.Status)
	}
	var id int64
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := r.parentExists(ctx, tx, storesTable, p.StoreID); err != nil {
			return err
		}
		var err error
		id, err = r.insert(ctx, tx, productsTable, productValues(p))
		return err
	})
	if err != nil {
		return catalog.Product{}, err
	}
	return r.GetProduct(ctx, id)
}

// UpdateProduct replaces the fields of product id. The owning store is kept
// when p.StoreID is zero.
func (r *Repository) UpdateProduct(ctx context.Context, id int64, p catalog.Product) (catalog.Product, error) {
	if !p.Status.Valid() {
		return catalog.Product{}, fmt.Errorf("%w: product status %d", ErrInvalidQuery, p.Status)
	}
	if p.StoreID == 0 {
		current, err := r.GetProduct(ctx, id)
		if err != nil {
			return catalog.Product{}, err
		}
		p.StoreID = current.StoreID
	} else if err := r.parentExists(ctx, r.db, storesTable, p.StoreID); err != nil {
		return catalog.Product{}, err
	}
	if err := r.update(ctx, productsTable, id, productValues(p)); err != nil {
		return catalog.Product{}, err
	}
	return r.GetProduct(ctx, id)
}

// DeleteProduct removes a product and its comments.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := r.exists(ctx, tx, productsTable, id); err != nil {
			return err
		}
		p := r.dialect.placeholder(1)
		if _, err := tx.ExecContext(ctx, "DELETE FROM product_comments WHERE product_id = "+p, id); err != nil {
			return fmt.Errorf("delete product %d comments: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = "+p, id); err != nil {
			return fmt.Errorf("delete product %d: %w", id, err)
		}
		return nil
	})
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

func storeValues(s catalog.Store) []any {
	return []any{s.Name, s.Email, s.PhoneNumber, s.Address, formatDate(s.Established), s.FloorArea}
}

func scanStore(row interface{ Scan(...any) error }) (catalog.Store, error) {
	var (
		s           catalog.Store
		established string
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.Address, &established, &s.FloorArea); err != nil {
		return catalog.Store{}, err
	}
	t, err := parseDate(established)
	if err != nil {
		return catalog.Store{}, fmt.Errorf("store %d established: %w", s.ID, err)
	}
	s.Established = catalog.Date{Time: t}
	return s, nil
}

// ListStores returns the stores matching q.
func (r *Repository) ListStores(ctx context.Context, q Query) ([]catalog.Store, error) {
	rows, err := r.list(ctx, storesTable, q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	stores := []catalog.Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stores: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// GetStore returns one store.
func (r *Repository) GetStore(ctx context.Context, id int64) (catalog.Store, error) {
	s, err := scanStore(r.getRow(ctx, storesTable, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Store{}, fmt.Errorf("store %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return catalog.Store{}, fmt.Errorf("get store %d: %w", id, err)
	}
	return s, nil
}

// CreateStore inserts s and returns it with its new id.
func (r *Repository) CreateStore(ctx context.Context, s catalog.Store) (catalog.Store, error) {
	id, err := r.insert(ctx, r.db, storesTable, storeValues(s))
	if err != nil {
		return catalog.Store{}, err
	}
	return r.GetStore(ctx, id)
}

// UpdateStore replaces the fields of store id.
func (r *Repository) UpdateStore(ctx context.Context, id int64, s catalog.Store) (catalog.Store, error) {
	if err := r.update(ctx, storesTable, id, storeValues(s)); err != nil {
		return catalog.Store{}, err
	}
	return r.GetStore(ctx, id)
}

// DeleteStore removes a store together with its products and their comments.
func (r *Repository) DeleteStore(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := r.exists(ctx, tx, storesTable, id); err != nil {
			return err
		}
		p := r.dialect.placeholder(1)
		statements := []string{
			"DELETE FROM product_comments WHERE product_id IN (SELECT id FROM products WHERE store_id = " + p + ")",
			"DELETE FROM products WHERE store_id = " + p,
			"DELETE FROM stores WHERE id = " + p,
		}
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("delete store %d: %w", id, err)
			}
		}
		return nil
	})
}

// list runs the SELECT of a collection listing.
func (r *Repository) list(ctx context.Context, tbl table, q Query) (*sql.Rows, error) {
	order, err := orderBy(tbl, q.Ordering)
	if err != nil {
		return nil, err
	}
	where, args := r.dialect.where(tbl, q)
	rows, err := r.db.QueryContext(ctx, "SELECT "+tbl.selectColumns()+" FROM "+tbl.name+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", tbl.name, err)
	}
	return rows, nil
}

func (r *Repository) getRow(ctx context.Context, tbl table, id int64) *sql.Row {
	return r.db.QueryRowContext(ctx,
		"SELECT "+tbl.selectColumns()+" FROM "+tbl.name+" WHERE id = "+r.dialect.placeholder(1), id)
}

func formatDate(d catalog.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(catalog.DateLayout)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(catalog.DateLayout, value)
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery is returned for orderings outside a collection's columns.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrMissingParent is returned when a product or comment names a store or
	// product that does not exist. It does not match ErrNotFound.
	ErrMissingParent = errors.New("missing parent")
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const defaultSQLitePath = "shelf.db"

// Repository is the catalog persisted in one database.
type Repository struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the database, pings it and applies the schema.
func Open(ctx context.Context, driver, dsn string) (*Repository, error) {
	var (
		d          dialect
		driverName string
	)
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		d, driverName = sqliteDialect, "sqlite"
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil {
				return nil, fmt.Errorf("create dirs: %w", err)
			}
		}
	case DriverPostgres, "pgx":
		d, driverName = postgresDialect, "pgx"
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	if d.name == DriverSQLite {
		// A single connection keeps :memory: databases shared and serializes writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}

	r := &Repository{db: db, dialect: d}
	if err := r.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Driver returns the dialect name, DriverSQLite or DriverPostgres.
func (r *Repository) Driver() string {
	return r.dialect.name
}

type dialect struct {
	name       string
	primaryKey string
}

var (
	sqliteDialect   = dialect{name: DriverSQLite, primaryKey: "INTEGER PRIMARY KEY AUTOINCREMENT"}
	postgresDialect = dialect{name: DriverPostgres, primaryKey: "BIGSERIAL PRIMARY KEY"}
)

// placeholder returns the n-th (1-based) bind parameter.
func (d dialect) placeholder(n int) string {
	if d.name == DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (r *Repository) migrate(ctx context.Context) error {
	pk := r.dialect.primaryKey
	statements := []string{
		`CREATE TABLE IF NOT EXISTS stores (
			id ` + pk + `,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			established TEXT NOT NULL DEFAULT '',
			floor_area DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id ` + pk + `,
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			specs TEXT NOT NULL DEFAULT '',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			supplier_info TEXT NOT NULL DEFAULT '',
			made_in TEXT NOT NULL DEFAULT '',
			production_company_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			store_id BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS products_store_id ON products (store_id)`,
		`CREATE TABLE IF NOT EXISTS product_comments (
			id ` + pk + `,
			author TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			posted TEXT NOT NULL,
			product_id BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS product_comments_product_id ON product_comments (product_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// insert runs an INSERT ... RETURNING id over the given columns.
func (r *Repository) insert(ctx context.Context, q querier, tbl table, values []any) (int64, error) {
	marks := make([]string, len(tbl.columns))
	for i := range marks {
		marks[i] = r.dialect.placeholder(i + 1)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		tbl.name, strings.Join(tbl.columns, ", "), strings.Join(marks, ", "))
	var id int64
	if err := q.QueryRowContext(ctx, stmt, values...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert %s: %w", tbl.name, err)
	}
	return id, nil
}

// update rewrites every column of one row.
func (r *Repository) update(ctx context.Context, tbl table, id int64, values []any) error {
	sets := make([]string, len(tbl.columns))
	for i, col := range tbl.columns {
		sets[i] = col + " = " + r.dialect.placeholder(i+1)
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		tbl.name, strings.Join(sets, ", "), r.dialect.placeholder(len(values)+1))
	res, err := r.db.ExecContext(ctx, stmt, append(values, id)...)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", tbl.name, id, err)
	}
	return expectRow(res, tbl.name, id)
}

func (r *Repository) exists(ctx context.Context, q querier, tbl table, id int64) error {
	var one int
	err := q.QueryRowContext(ctx,
		fmt.Sprintf("SELECT 1 FROM %s WHERE id = %s", tbl.name, r.dialect.placeholder(1)), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", tbl.name, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lookup %s %d: %w", tbl.name, id, err)
	}
	return nil
}

// parentExists is exists for the store or product an entity points at.
func (r *Repository) parentExists(ctx context.Context, q querier, tbl table, id int64) error {
	err := r.exists(ctx, q, tbl, id)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s %d", ErrMissingParent, tbl.name, id)
	}
	return err
}

func expectRow(res sql.Result, name string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: %w", name, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", name, id, ErrNotFound)
	}
	return nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx runs fn in a transaction, rolling back on error.
func (r *Repository) withTx(ctx context.Context, fn func(*sql.Tx) error) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

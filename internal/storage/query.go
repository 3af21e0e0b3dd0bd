package storage

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/viewstate"
)

// Query narrows a listing or count. The zero value selects every row.
type Query struct {
	Store   int64
	Product int64
	// Status zero admits every status.
	Status catalog.Status
	Search string
	// Ordering is "col" or "-col" for descending; empty orders by id.
	Ordering string
}

// table describes one collection's SQL shape.
type table struct {
	name    string
	columns []string // insert/update order, id excluded
	schema  viewstate.Schema
	scope   string // column matched by Query.Store or Query.Product
}

var (
	storesTable = table{
		name: "stores",
		columns: []string{
			catalog.FieldName, catalog.FieldEmail, catalog.FieldPhoneNumber,
			catalog.FieldAddress, catalog.FieldEstablished, catalog.FieldFloorArea,
		},
		schema: viewstate.StoreSchema,
	}
	productsTable = table{
		name: "products",
		columns: []string{
			catalog.FieldName, catalog.FieldPrice, catalog.FieldSpecs, catalog.FieldRating,
			catalog.FieldSupplierInfo, catalog.FieldMadeIn, catalog.FieldProductionCompanyName,
			catalog.FieldStatus, catalog.FieldStoreID,
		},
		schema: viewstate.ProductSchema,
		scope:  catalog.FieldStoreID,
	}
	commentsTable = table{
		name: "product_comments",
		columns: []string{
			catalog.FieldAuthor, catalog.FieldMessage, catalog.FieldRating,
			catalog.FieldPosted, catalog.FieldProductID,
		},
		schema: viewstate.CommentSchema,
		scope:  catalog.FieldProductID,
	}
)

// selectColumns is the column list of SELECT statements, id first.
func (t table) selectColumns() string {
	return "id, " + strings.Join(t.columns, ", ")
}

// where renders the WHERE clause of q: scope and status ANDed with an OR over
// the searchable fields.
func (d dialect) where(t table, q Query) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	bind := func(v any) string {
		args = append(args, v)
		return d.placeholder(len(args))
	}

	switch t.scope {
	case catalog.FieldStoreID:
		if q.Store > 0 {
			clauses = append(clauses, t.scope+" = "+bind(q.Store))
		}
	case catalog.FieldProductID:
		if q.Product > 0 {
			clauses = append(clauses, t.scope+" = "+bind(q.Product))
		}
	}
	if t.schema.StatusField != "" && q.Status.Valid() {
		clauses = append(clauses, t.schema.StatusField+" = "+bind(q.Status.String()))
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		var anyOf []string
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		for _, field := range t.schema.TextFields {
			anyOf = append(anyOf, fmt.Sprintf(`LOWER(%s) LIKE %s ESCAPE '\'`, field, bind(pattern)))
		}
		if n, err := strconv.ParseFloat(search, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			for _, field := range t.schema.NumericFields {
				anyOf = append(anyOf, field+" = "+bind(n))
			}
		}
		if len(anyOf) > 0 {
			clauses = append(clauses, "("+strings.Join(anyOf, " OR ")+")")
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// orderBy whitelists the ordering against the table's sortable columns.
func orderBy(t table, ordering string) (string, error) {
	ordering = strings.TrimSpace(ordering)
	if ordering == "" {
		return " ORDER BY id", nil
	}
	column, dir := ordering, "ASC"
	if strings.HasPrefix(ordering, "-") {
		column, dir = ordering[1:], "DESC"
	}
	if column != catalog.FieldID && !t.schema.HasColumn(column) {
		return "", fmt.Errorf("%w: cannot order %s by %q", ErrInvalidQuery, t.name, column)
	}
	return fmt.Sprintf(" ORDER BY %s %s, id", column, dir), nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

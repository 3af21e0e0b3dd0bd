package viewstate

import "github.com/five82/shelf/internal/catalog"

// Schema names the fields a collection exposes to search and sort.
type Schema struct {
	// TextFields match the search text as case-insensitive substrings.
	TextFields []string
	// NumericFields match when the search text parses to an equal number.
	NumericFields []string
	// Columns are the sortable fields in display order.
	Columns []string
	// StatusField is empty for collections without a status.
	StatusField string
}

// HasColumn reports whether name is a sortable column.
func (s Schema) HasColumn(name string) bool {
	for _, col := range s.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// ProductSchema drives the products table of a store.
var ProductSchema = Schema{
	TextFields: []string{
		catalog.FieldName,
		catalog.FieldSpecs,
		catalog.FieldSupplierInfo,
		catalog.FieldMadeIn,
		catalog.FieldProductionCompanyName,
	},
	NumericFields: []string{catalog.FieldPrice, catalog.FieldRating},
	Columns: []string{
		catalog.FieldName,
		catalog.FieldPrice,
		catalog.FieldSpecs,
		catalog.FieldSupplierInfo,
		catalog.FieldMadeIn,
		catalog.FieldProductionCompanyName,
		catalog.FieldRating,
	},
	StatusField: catalog.FieldStatus,
}

// StoreSchema drives the stores overview list.
var StoreSchema = Schema{
	TextFields:    []string{catalog.FieldName, catalog.FieldAddress},
	NumericFields: []string{catalog.FieldFloorArea},
	Columns: []string{
		catalog.FieldName,
		catalog.FieldAddress,
		catalog.FieldEstablished,
		catalog.FieldFloorArea,
	},
}

// CommentSchema drives the comment feed of a product.
var CommentSchema = Schema{
	TextFields:    []string{catalog.FieldAuthor, catalog.FieldMessage},
	NumericFields: []string{catalog.FieldRating},
	Columns:       []string{catalog.FieldPosted, catalog.FieldRating, catalog.FieldAuthor},
}

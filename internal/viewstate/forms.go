package viewstate

import (
	"math"

	"github.com/five82/shelf/internal/catalog"
)

// FieldSpec describes one tracked form field.
type FieldSpec struct {
	Name    string
	Label   string // i18n key
	Rule    Rule
	Default string
}

// Form is the ordered set of tracked fields of a dialog.
type Form struct {
	Fields []FieldSpec
}

// Names returns the tracked field names in order.
func (f Form) Names() []string {
	names := make([]string, len(f.Fields))
	for i, spec := range f.Fields {
		names[i] = spec.Name
	}
	return names
}

// Validate runs every field rule over values and returns a *ValidationError
// naming the fields that failed, or nil.
func (f Form) Validate(values map[string]string) error {
	var failed []string
	for _, spec := range f.Fields {
		if spec.Rule(values[spec.Name]) == FieldError {
			failed = append(failed, spec.Name)
		}
	}
	if len(failed) > 0 {
		return &ValidationError{Fields: failed}
	}
	return nil
}

func (f Form) spec(name string) (FieldSpec, bool) {
	for _, spec := range f.Fields {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// StoreForm is the create-store dialog.
var StoreForm = Form{Fields: []FieldSpec{
	{Name: catalog.FieldName, Label: "field.name", Rule: Required},
	{Name: catalog.FieldEmail, Label: "field.email", Rule: Email},
	{Name: catalog.FieldPhoneNumber, Label: "field.phone_number", Rule: Phone},
	{Name: catalog.FieldAddress, Label: "field.address", Rule: Required},
	{Name: catalog.FieldEstablished, Label: "field.established", Rule: DatePresent},
	{Name: catalog.FieldFloorArea, Label: "field.floor_area", Rule: Positive},
}}

// ProductForm is the create/edit-product dialog.
var ProductForm = Form{Fields: []FieldSpec{
	{Name: catalog.FieldName, Label: "field.name", Rule: Required},
	{Name: catalog.FieldPrice, Label: "field.price", Rule: NumberIn(0, math.MaxFloat64)},
	{Name: catalog.FieldSpecs, Label: "field.specs", Rule: Required},
	{Name: catalog.FieldRating, Label: "field.rating", Rule: NumberIn(0, 5)},
	{Name: catalog.FieldSupplierInfo, Label: "field.supplier_info", Rule: Required},
	{Name: catalog.FieldMadeIn, Label: "field.made_in", Rule: Required},
	{Name: catalog.FieldProductionCompanyName, Label: "field.production_company_name", Rule: Required},
	{Name: catalog.FieldStatus, Label: "field.status", Rule: StatusValue, Default: catalog.StatusOK.String()},
}}

// CommentForm is the feed input under a product.
var CommentForm = Form{Fields: []FieldSpec{
	{Name: catalog.FieldAuthor, Label: "field.author", Rule: Required},
	{Name: catalog.FieldRating, Label: "field.rating", Rule: NumberIn(0, 5), Default: "0"},
	{Name: catalog.FieldMessage, Label: "field.message", Rule: Any},
}}

package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field names shared by the wire format, the composer and the dialogs.
const (
	FieldID                    = "id"
	FieldName                  = "name"
	FieldEmail                 = "email"
	FieldPhoneNumber           = "phone_number"
	FieldAddress               = "address"
	FieldEstablished           = "established"
	FieldFloorArea             = "floor_area"
	FieldPrice                 = "price"
	FieldSpecs                 = "specs"
	FieldRating                = "rating"
	FieldSupplierInfo          = "supplier_info"
	FieldMadeIn                = "made_in"
	FieldProductionCompanyName = "production_company_name"
	FieldStatus                = "status"
	FieldStoreID               = "store_id"
	FieldAuthor                = "author"
	FieldMessage               = "message"
	FieldPosted                = "posted"
	FieldProductID             = "product_id"
)

// Collection names on the remote service.
const (
	CollectionStores   = "Stores"
	CollectionProducts = "Products"
	CollectionComments = "ProductComments"
)

// Entity is a catalog record addressable by id and by field name.
type Entity interface {
	Key() int64
	Field(name string) (Value, bool)
}

// Store is a retail location.
type Store struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Address     string  `json:"address"`
	Established Date    `json:"established"`
	FloorArea   float64 `json:"floor_area"`
}

// Key implements Entity.
func (s Store) Key() int64 { return s.ID }

// Field implements Entity.
func (s Store) Field(name string) (Value, bool) {
	switch name {
	case FieldID:
		return Number(float64(s.ID)), true
	case FieldName:
		return Text(s.Name), true
	case FieldEmail:
		return Text(s.Email), true
	case FieldPhoneNumber:
		return Text(s.PhoneNumber), true
	case FieldAddress:
		return Text(s.Address), true
	case FieldEstablished:
		return When(s.Established.Time), true
	case FieldFloorArea:
		return Number(s.FloorArea), true
	}
	return Value{}, false
}

// Fields returns the editable fields as form text.
func (s Store) Fields() map[string]string {
	established := ""
	if !s.Established.IsZero() {
		established = s.Established.Format(DateLayout)
	}
	return map[string]string{
		FieldName:        s.Name,
		FieldEmail:       s.Email,
		FieldPhoneNumber: s.PhoneNumber,
		FieldAddress:     s.Address,
		FieldEstablished: established,
		FieldFloorArea:   formatNumber(s.FloorArea),
	}
}

// StoreFromFields builds a Store from form text. Values must already be valid.
func StoreFromFields(fields map[string]string) (Store, error) {
	established, err := time.Parse(DateLayout, strings.TrimSpace(fields[FieldEstablished]))
	if err != nil {
		return Store{}, fmt.Errorf("established: %w", err)
	}
	area, err := parseNumber(fields[FieldFloorArea])
	if err != nil {
		return Store{}, fmt.Errorf("floor area: %w", err)
	}
	return Store{
		Name:        strings.TrimSpace(fields[FieldName]),
		Email:       strings.TrimSpace(fields[FieldEmail]),
		PhoneNumber: strings.TrimSpace(fields[FieldPhoneNumber]),
		Address:     strings.TrimSpace(fields[FieldAddress]),
		Established: Date{Time: established},
		FloorArea:   area,
	}, nil
}

// Product is an item stocked by a store.
type Product struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	Price                 float64 `json:"price"`
	Specs                 string  `json:"specs"`
	Rating                float64 `json:"rating"`
	SupplierInfo          string  `json:"supplier_info"`
	MadeIn                string  `json:"made_in"`
	ProductionCompanyName string  `json:"production_company_name"`
	Status                Status  `json:"status"`
	StoreID               int64   `json:"store_id"`
}

// Key implements Entity.
func (p Product) Key() int64 { return p.ID }

// Field implements Entity.
func (p Product) Field(name string) (Value, bool) {
	switch name {
	case FieldID:
		return Number(float64(p.ID)), true
	case FieldName:
		return Text(p.Name), true
	case FieldPrice:
		return Number(p.Price), true
	case FieldSpecs:
		return Text(p.Specs), true
	case FieldRating:
		return Number(p.Rating), true
	case FieldSupplierInfo:
		return Text(p.SupplierInfo), true
	case FieldMadeIn:
		return Text(p.MadeIn), true
	case FieldProductionCompanyName:
		return Text(p.ProductionCompanyName), true
	case FieldStatus:
		return Text(p.Status.String()), true
	case FieldStoreID:
		return Number(float64(p.StoreID)), true
	}
	return Value{}, false
}

// Fields returns the editable fields as form text.
func (p Product) Fields() map[string]string {
	return map[string]string{
		FieldName:                  p.Name,
		FieldPrice:                 formatNumber(p.Price),
		FieldSpecs:                 p.Specs,
		FieldRating:                formatNumber(p.Rating),
		FieldSupplierInfo:          p.SupplierInfo,
		FieldMadeIn:                p.MadeIn,
		FieldProductionCompanyName: p.ProductionCompanyName,
		FieldStatus:                p.Status.String(),
	}
}

// ProductFromFields builds a Product from form text. Values must already be valid.
func ProductFromFields(fields map[string]string) (Product, error) {
	price, err := parseNumber(fields[FieldPrice])
	if err != nil {
		return Product{}, fmt.Errorf("price: %w", err)
	}
	rating, err := parseNumber(fields[FieldRating])
	if err != nil {
		return Product{}, fmt.Errorf("rating: %w", err)
	}
	status, err := ParseStatus(fields[FieldStatus])
	if err != nil {
		return Product{}, err
	}
	return Product{
		Name:                  strings.TrimSpace(fields[FieldName]),
		Price:                 price,
		Specs:                 strings.TrimSpace(fields[FieldSpecs]),
		Rating:                rating,
		SupplierInfo:          strings.TrimSpace(fields[FieldSupplierInfo]),
		MadeIn:                strings.TrimSpace(fields[FieldMadeIn]),
		ProductionCompanyName: strings.TrimSpace(fields[FieldProductionCompanyName]),
		Status:                status,
	}, nil
}

// Comment is a customer review of a product. Comments are never edited.
type Comment struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	Rating    float64   `json:"rating"`
	Posted    Timestamp `json:"posted"`
	ProductID int64     `json:"product_id"`
}

// Key implements Entity.
func (c Comment) Key() int64 { return c.ID }

// Field implements Entity.
func (c Comment) Field(name string) (Value, bool) {
	switch name {
	case FieldID:
		return Number(float64(c.ID)), true
	case FieldAuthor:
		return Text(c.Author), true
	case FieldMessage:
		return Text(c.Message), true
	case FieldRating:
		return Number(c.Rating), true
	case FieldPosted:
		return When(c.Posted.Time), true
	case FieldProductID:
		return Number(float64(c.ProductID)), true
	}
	return Value{}, false
}

// Fields returns the editable fields as form text.
func (c Comment) Fields() map[string]string {
	return map[string]string{
		FieldAuthor:  c.Author,
		FieldMessage: c.Message,
		FieldRating:  formatNumber(c.Rating),
	}
}

// CommentFromFields builds a Comment from form text. Values must already be valid.
func CommentFromFields(fields map[string]string) (Comment, error) {
	rating, err := parseNumber(fields[FieldRating])
	if err != nil {
		return Comment{}, fmt.Errorf("rating: %w", err)
	}
	return Comment{
		Author:  strings.TrimSpace(fields[FieldAuthor]),
		Message: strings.TrimSpace(fields[FieldMessage]),
		Rating:  rating,
	}, nil
}

func parseNumber(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

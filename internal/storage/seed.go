package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

type seedProduct struct {
	product  catalog.Product
	comments []catalog.Comment
}

type seedStore struct {
	store    catalog.Store
	products []seedProduct
}

func seedDate(value string) catalog.Date {
	t, _ := time.Parse(catalog.DateLayout, value)
	return catalog.Date{Time: t}
}

var seedData = []seedStore{
	{
		store: catalog.Store{
			Name: "Northside Electronics", Email: "hello@northside.example", PhoneNumber: "+1 555 0101",
			Address: "12 Harbor Rd", Established: seedDate("2008-04-12"), FloorArea: 420,
		},
		products: []seedProduct{
			{
				product: catalog.Product{
					Name: "Desk Lamp", Price: 39.9, Specs: "LED, 3 brightness levels", Rating: 4,
					SupplierInfo: "Brightline Ltd", MadeIn: "Poland", ProductionCompanyName: "Brightline",
					Status: catalog.StatusOK,
				},
				comments: []catalog.Comment{
					{Author: "ann", Message: "Bright and quiet.", Rating: 5},
					{Author: "oleg", Message: "Cable is a bit short.", Rating: 3},
				},
			},
			{
				product: catalog.Product{
					Name: "USB-C Hub", Price: 59, Specs: "7 ports, 100W passthrough", Rating: 4,
					SupplierInfo: "PortWorks", MadeIn: "Taiwan", ProductionCompanyName: "PortWorks",
					Status: catalog.StatusStorage,
				},
			},
			{
				product: catalog.Product{
					Name: "Mechanical Keyboard", Price: 129, Specs: "Tenkeyless, brown switches", Rating: 5,
					SupplierInfo: "Keysmith", MadeIn: "Germany", ProductionCompanyName: "Keysmith GmbH",
					Status: catalog.StatusOutOfStock,
				},
			},
		},
	},
	{
		store: catalog.Store{
			Name: "Riverside Home", Email: "shop@riverside.example", PhoneNumber: "+1 555 0142",
			Address: "3 Mill Lane", Established: seedDate("2015-09-01"), FloorArea: 860,
		},
		products: []seedProduct{
			{
				product: catalog.Product{
					Name: "Oak Chair", Price: 149, Specs: "Solid oak, oiled", Rating: 4,
					SupplierInfo: "Timber & Co", MadeIn: "Latvia", ProductionCompanyName: "Timber & Co",
					Status: catalog.StatusOK,
				},
				comments: []catalog.Comment{
					{Author: "mira", Message: "Sturdy, took ten minutes to assemble.", Rating: 4},
				},
			},
			{
				product: catalog.Product{
					Name: "Wool Rug", Price: 220, Specs: "160x230 cm", Rating: 3,
					SupplierInfo: "Loomhouse", MadeIn: "India", ProductionCompanyName: "Loomhouse",
					Status: catalog.StatusOK,
				},
			},
		},
	},
	{
		store: catalog.Store{
			Name: "Corner Books", Email: "books@corner.example", PhoneNumber: "+1 555 0177",
			Address: "88 Elm St", Established: seedDate("1998-02-20"), FloorArea: 95,
		},
	},
}

// Seed fills an empty database with sample stores, products and comments. It
// reports whether anything was inserted.
func (r *Repository) Seed(ctx context.Context) (bool, error) {
	n, err := r.Count(ctx, catalog.CollectionStores, Query{})
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	posted := time.Now().Add(-72 * time.Hour).UTC()
	for _, ss := range seedData {
		store, err := r.CreateStore(ctx, ss.store)
		if err != nil {
			return false, fmt.Errorf("seed store %q: %w", ss.store.Name, err)
		}
		for _, sp := range ss.products {
			p := sp.product
			p.StoreID = store.ID
			product, err := r.CreateProduct(ctx, p)
			if err != nil {
				return false, fmt.Errorf("seed product %q: %w", p.Name, err)
			}
			for _, c := range sp.comments {
				c.ProductID = product.ID
				posted = posted.Add(90 * time.Minute)
				c.Posted = catalog.Timestamp{Time: posted}
				if _, err := r.CreateComment(ctx, c); err != nil {
					return false, fmt.Errorf("seed comment: %w", err)
				}
			}
		}
	}
	return true, nil
}

package state

import "fmt"

// View is a navigable screen.
type View int

const (
	ViewStores View = iota
	ViewStore
	ViewProduct
	ViewNotFound
)

// Route identifies the focused view and the entity it shows. ID is zero for
// ViewStores and ViewNotFound.
type Route struct {
	View View
	ID   int64
}

// Stores returns the overview route.
func Stores() Route { return Route{View: ViewStores} }

// StoreRoute returns the details route of one store.
func StoreRoute(id int64) Route { return Route{View: ViewStore, ID: id} }

// ProductRoute returns the details route of one product.
func ProductRoute(id int64) Route { return Route{View: ViewProduct, ID: id} }

// NotFound returns the fallback route.
func NotFound() Route { return Route{View: ViewNotFound} }

func (r Route) String() string {
	switch r.View {
	case ViewStores:
		return "stores"
	case ViewStore:
		return fmt.Sprintf("store/%d", r.ID)
	case ViewProduct:
		return fmt.Sprintf("product/%d", r.ID)
	case ViewNotFound:
		return "notfound"
	}
	return "unknown"
}

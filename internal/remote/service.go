package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/shelf/internal/catalog"
)

// Service is the remote collection service. Entities travel as the catalog
// types; dest is a pointer to one entity or to a slice of them.
type Service interface {
	List(ctx context.Context, collection string, q Query, dest any) error
	Get(ctx context.Context, collection string, id int64, dest any) error
	Create(ctx context.Context, collection string, fields, dest any) error
	Update(ctx context.Context, collection string, id int64, fields, dest any) error
	Delete(ctx context.Context, collection string, id int64) error
	Count(ctx context.Context, collection string, q Query) (int, error)
}

var (
	_ Service = (*RESTClient)(nil)
	_ Service = (*ODataClient)(nil)
)

// Query narrows a collection listing. The zero value lists everything.
type Query struct {
	Store   int64
	Product int64
	// Status zero admits every status.
	Status catalog.Status
	Search string
	// Ordering is "col", "-col" for descending, or empty.
	Ordering string
}

// Backend names accepted by New.
const (
	BackendREST  = "rest"
	BackendOData = "odata"
)

// New builds the Service for a configured backend.
func New(backend, apiURL string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendREST:
		return NewRESTClient(apiURL)
	case BackendOData:
		return NewODataClient(apiURL)
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

func splitOrdering(ordering string) (column string, desc bool) {
	ordering = strings.TrimSpace(ordering)
	if strings.HasPrefix(ordering, "-") {
		return ordering[1:], true
	}
	return ordering, false
}

package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// RESTClient talks to the plain JSON API served under /api.
type RESTClient struct {
	c *httpClient
}

// NewRESTClient builds a client for the API at apiURL (host:port or URL).
func NewRESTClient(apiURL string) (*RESTClient, error) {
	c, err := newHTTPClient(apiURL)
	if err != nil {
		return nil, err
	}
	return &RESTClient{c: c}, nil
}

// List implements Service.
func (r *RESTClient) List(ctx context.Context, collection string, q Query, dest any) error {
	if r == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: collectionPath(collection), RawQuery: restValues(q, true).Encode()}
	if err := r.c.doURL(ctx, http.MethodGet, rel, nil, dest); err != nil {
		return fmt.Errorf("list %s: %w", collection, err)
	}
	return nil
}

// Get implements Service.
func (r *RESTClient) Get(ctx context.Context, collection string, id int64, dest any) error {
	if r == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: entityPath(collection, id)}
	if err := r.c.doURL(ctx, http.MethodGet, rel, nil, dest); err != nil {
		return fmt.Errorf("get %s %d: %w", collection, id, err)
	}
	return nil
}

// Create implements Service.
func (r *RESTClient) Create(ctx context.Context, collection string, fields, dest any) error {
	if r == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: collectionPath(collection)}
	if err := r.c.doURL(ctx, http.MethodPost, rel, fields, dest); err != nil {
		return fmt.Errorf("create %s: %w", collection, err)
	}
	return nil
}

// Update implements Service.
func (r *RESTClient) Update(ctx context.Context, collection string, id int64, fields, dest any) error {
	if r == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: entityPath(collection, id)}
	if err := r.c.doURL(ctx, http.MethodPut, rel, fields, dest); err != nil {
		return fmt.Errorf("update %s %d: %w", collection, id, err)
	}
	return nil
}

// Delete implements Service.
func (r *RESTClient) Delete(ctx context.Context, collection string, id int64) error {
	if r == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: entityPath(collection, id)}
	if err := r.c.doURL(ctx, http.MethodDelete, rel, nil, nil); err != nil {
		return fmt.Errorf("delete %s %d: %w", collection, id, err)
	}
	return nil
}

// Count implements Service.
func (r *RESTClient) Count(ctx context.Context, collection string, q Query) (int, error) {
	if r == nil {
		return 0, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: collectionPath(collection) + "/count", RawQuery: restValues(q, false).Encode()}
	var payload struct {
		Count int `json:"count"`
	}
	if err := r.c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return payload.Count, nil
}

func collectionPath(collection string) string {
	return "/api/" + url.PathEscape(collection)
}

func entityPath(collection string, id int64) string {
	return collectionPath(collection) + "/" + strconv.FormatInt(id, 10)
}

func restValues(q Query, withOrdering bool) url.Values {
	values := url.Values{}
	if q.Store > 0 {
		values.Set("store", strconv.FormatInt(q.Store, 10))
	}
	if q.Product > 0 {
		values.Set("product", strconv.FormatInt(q.Product, 10))
	}
	if q.Status.Valid() {
		values.Set("status", q.Status.String())
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if withOrdering {
		if ordering := strings.TrimSpace(q.Ordering); ordering != "" {
			values.Set("ordering", ordering)
		}
	}
	return values
}

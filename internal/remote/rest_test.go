package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

func TestRESTClient_EndpointsAndQueries(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotCountQuery url.Values
	var gotBody map[string]any
	var gotMethods []string
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotMethods = append(gotMethods, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/Products":
			gotQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "name": "Widget", "price": 10, "status": "OK", "store_id": 3},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/Products/count":
			gotCountQuery = r.URL.Query()
			_, _ = w.Write([]byte(`{"count": 4}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/Products/1":
			_, _ = w.Write([]byte(`{"id":1,"name":"Widget","status":"STORAGE"}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/Products/1":
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			_, _ = w.Write(raw)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/Products/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewRESTClient(server.URL)
	if err != nil {
		t.Fatalf("NewRESTClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	var products []catalog.Product
	q := Query{Store: 3, Status: catalog.StatusOK, Search: "wid", Ordering: "-price"}
	if err := c.List(ctx, catalog.CollectionProducts, q, &products); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Widget" || products[0].Status != catalog.StatusOK {
		t.Fatalf("List products = %#v", products)
	}
	if gotQuery.Get("store") != "3" ||
		gotQuery.Get("status") != "OK" ||
		gotQuery.Get("search") != "wid" ||
		gotQuery.Get("ordering") != "-price" {
		t.Fatalf("List query = %v, want params encoded", gotQuery)
	}

	n, err := c.Count(ctx, catalog.CollectionProducts, q)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if n != 4 {
		t.Fatalf("Count = %d, want 4", n)
	}
	if gotCountQuery.Has("ordering") {
		t.Fatalf("Count query = %v, want no ordering", gotCountQuery)
	}

	var p catalog.Product
	if err := c.Get(ctx, catalog.CollectionProducts, 1, &p); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if p.Status != catalog.StatusStorage {
		t.Fatalf("Get status = %v, want STORAGE", p.Status)
	}

	p.Price = 12.5
	var updated catalog.Product
	if err := c.Update(ctx, catalog.CollectionProducts, 1, p, &updated); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if gotBody["price"] != 12.5 || updated.Price != 12.5 {
		t.Fatalf("Update body = %v, updated = %#v", gotBody, updated)
	}

	if err := c.Delete(ctx, catalog.CollectionProducts, 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	err = c.Get(ctx, catalog.CollectionStores, 9, &catalog.Store{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing store error = %v, want ErrNotFound", err)
	}

	if !strings.HasPrefix(gotUserAgent, "shelf/") {
		t.Fatalf("User-Agent = %q, want shelf/*", gotUserAgent)
	}
	if len(gotMethods) != 6 {
		t.Fatalf("requests = %v, want 6", gotMethods)
	}
}

func TestRESTValues_EmptyQuery(t *testing.T) {
	if got := restValues(Query{}, true).Encode(); got != "" {
		t.Fatalf("restValues(zero) = %q, want empty", got)
	}
}

package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIURL)
	}

	u, err = parseBaseURL("http://example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestDoURL_ErrorMapping(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/broken":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"price must not be negative"}`))
		case "/plain":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/garbage":
			_, _ = w.Write([]byte("{not-json"))
		}
	}))
	t.Cleanup(server.Close)

	c, err := newHTTPClient(server.URL)
	if err != nil {
		t.Fatalf("newHTTPClient returned error: %v", err)
	}
	ctx := context.Background()
	var dest map[string]any

	err = c.doURL(ctx, http.MethodGet, &url.URL{Path: "/missing"}, nil, &dest)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("404 error = %v, want ErrNotFound", err)
	}

	err = c.doURL(ctx, http.MethodPost, &url.URL{Path: "/broken"}, map[string]int{"a": 1}, &dest)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadRequest || se.Message != "price must not be negative" {
		t.Fatalf("400 error = %#v, want StatusError with server message", err)
	}

	err = c.doURL(ctx, http.MethodGet, &url.URL{Path: "/plain"}, nil, &dest)
	if err == nil || !strings.Contains(err.Error(), "returned status 500: boom") {
		t.Fatalf("500 error = %v, want status 500 with body", err)
	}

	err = c.doURL(ctx, http.MethodGet, &url.URL{Path: "/garbage"}, nil, &dest)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("garbage error = %v, want decode response error", err)
	}
}

func TestNew_SelectsBackend(t *testing.T) {
	svc, err := New("", "127.0.0.1:1")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := svc.(*RESTClient); !ok {
		t.Fatalf("New(\"\") = %T, want *RESTClient", svc)
	}
	svc, err = New("OData", "127.0.0.1:1")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := svc.(*ODataClient); !ok {
		t.Fatalf("New(OData) = %T, want *ODataClient", svc)
	}
	if _, err := New("graphql", "127.0.0.1:1"); err == nil {
		t.Fatalf("New(graphql) returned nil error")
	}
}

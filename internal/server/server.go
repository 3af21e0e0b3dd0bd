package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/storage"
	"github.com/five82/shelf/internal/viewstate"
)

// Repository is the storage the handlers serve.
type Repository interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context, collection string, q storage.Query) (int, error)

	ListStores(ctx context.Context, q storage.Query) ([]catalog.Store, error)
	GetStore(ctx context.Context, id int64) (catalog.Store, error)
	CreateStore(ctx context.Context, s catalog.Store) (catalog.Store, error)
	UpdateStore(ctx context.Context, id int64, s catalog.Store) (catalog.Store, error)
	DeleteStore(ctx context.Context, id int64) error

	ListProducts(ctx context.Context, q storage.Query) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id int64) (catalog.Product, error)
	CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error)
	UpdateProduct(ctx context.Context, id int64, p catalog.Product) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListComments(ctx context.Context, q storage.Query) ([]catalog.Comment, error)
	GetComment(ctx context.Context, id int64) (catalog.Comment, error)
	CreateComment(ctx context.Context, c catalog.Comment) (catalog.Comment, error)
}

var _ Repository = (*storage.Repository)(nil)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

// Server routes API requests to a Repository.
type Server struct {
	repo      Repository
	mux       *http.ServeMux
	metrics   *metrics
	endpoints map[string]endpoint
}

// New builds the HTTP handler. Metrics are registered on reg; a nil reg uses
// a private registry.
func New(repo Repository, reg *prometheus.Registry) *Server {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		repo:    repo,
		mux:     http.NewServeMux(),
		metrics: newMetrics(reg),
		endpoints: map[string]endpoint{
			catalog.CollectionStores: &resource[catalog.Store]{
				form:    viewstate.StoreForm,
				fields:  catalog.Store.Fields,
				query:   repo.ListStores,
				fetch:   repo.GetStore,
				insert:  repo.CreateStore,
				replace: repo.UpdateStore,
				remove:  repo.DeleteStore,
			},
			catalog.CollectionProducts: &resource[catalog.Product]{
				form:    viewstate.ProductForm,
				fields:  catalog.Product.Fields,
				query:   repo.ListProducts,
				fetch:   repo.GetProduct,
				insert:  repo.CreateProduct,
				replace: repo.UpdateProduct,
				remove:  repo.DeleteProduct,
			},
			catalog.CollectionComments: &resource[catalog.Comment]{
				form:    viewstate.CommentForm,
				fields:  catalog.Comment.Fields,
				query:   repo.ListComments,
				fetch:   repo.GetComment,
				insert:  repo.CreateComment,
			},
		},
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.mux.HandleFunc("GET /api/{collection}", s.route("list", func(e endpoint, w http.ResponseWriter, r *http.Request) {
		e.list(w, r)
	}))
	s.mux.HandleFunc("GET /api/{collection}/count", s.route("count", func(e endpoint, w http.ResponseWriter, r *http.Request) {
		s.handleCount(w, r)
	}))
	s.mux.HandleFunc("GET /api/{collection}/{id}", s.route("get", withID(endpoint.get)))
	s.mux.HandleFunc("POST /api/{collection}", s.route("create", func(e endpoint, w http.ResponseWriter, r *http.Request) {
		e.create(w, r)
	}))
	s.mux.HandleFunc("PUT /api/{collection}/{id}", s.route("update", withID(endpoint.update)))
	s.mux.HandleFunc("DELETE /api/{collection}/{id}", s.route("delete", withID(endpoint.delete)))
	return s
}

// ServeHTTP implements http.Handler with request ids, logging and metrics.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	s.mux.ServeHTTP(rec, r)
	elapsed := time.Since(start)

	_, pattern := s.mux.Handler(r)
	if pattern == "" {
		pattern = "unmatched"
	}
	s.metrics.observe(r.Method, pattern, rec.status, elapsed)
	glog.V(1).Infof("[%s] %s %s %d %s", id, r.Method, r.URL.RequestURI(), rec.status, elapsed)
}

// route resolves {collection} before calling fn.
func (s *Server) route(op string, fn func(endpoint, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := s.endpoints[r.PathValue("collection")]
		if !ok {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}
		if !e.supports(op) {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, r.PathValue("collection")+" is append-only")
			return
		}
		fn(e, w, r)
	}
}

// withID parses {id} before calling fn.
func withID(fn func(endpoint, http.ResponseWriter, *http.Request, int64)) func(endpoint, http.ResponseWriter, *http.Request) {
	return func(e endpoint, w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		fn(e, w, r, id)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		glog.Errorf("health: %v", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n, err := s.repo.Count(r.Context(), r.PathValue("collection"), q)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

// parseQuery reads the listing parameters shared by list and count.
func parseQuery(r *http.Request) (storage.Query, error) {
	values := r.URL.Query()
	var q storage.Query
	for name, dest := range map[string]*int64{"store": &q.Store, "product": &q.Product} {
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return storage.Query{}, errors.New("invalid " + name)
		}
		*dest = n
	}
	if raw := strings.TrimSpace(values.Get("status")); raw != "" {
		status, err := catalog.ParseStatus(raw)
		if err != nil {
			return storage.Query{}, err
		}
		q.Status = status
	}
	q.Search = values.Get("search")
	q.Ordering = values.Get("ordering")
	return q, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Warningf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStorageError maps repository errors to status codes.
func writeStorageError(w http.ResponseWriter, err error) {
	var invalid *viewstate.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrInvalidQuery), errors.Is(err, storage.ErrMissingParent), errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		glog.Errorf("storage: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

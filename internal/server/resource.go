package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/five82/shelf/internal/storage"
	"github.com/five82/shelf/internal/viewstate"
)

// endpoint serves one collection.
type endpoint interface {
	supports(op string) bool
	list(w http.ResponseWriter, r *http.Request)
	get(w http.ResponseWriter, r *http.Request, id int64)
	create(w http.ResponseWriter, r *http.Request)
	update(w http.ResponseWriter, r *http.Request, id int64)
	delete(w http.ResponseWriter, r *http.Request, id int64)
}

// resource adapts typed repository calls to an endpoint. A nil replace or
// remove makes the collection append-only.
type resource[E any] struct {
	form   viewstate.Form
	fields func(E) map[string]string

	query   func(context.Context, storage.Query) ([]E, error)
	fetch   func(context.Context, int64) (E, error)
	insert  func(context.Context, E) (E, error)
	replace func(context.Context, int64, E) (E, error)
	remove  func(context.Context, int64) error
}

func (res *resource[E]) supports(op string) bool {
	switch op {
	case "update":
		return res.replace != nil
	case "delete":
		return res.remove != nil
	}
	return true
}

func (res *resource[E]) list(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := res.query(r.Context(), q)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (res *resource[E]) get(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := res.fetch(r.Context(), id)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (res *resource[E]) create(w http.ResponseWriter, r *http.Request) {
	item, ok := res.decode(w, r)
	if !ok {
		return
	}
	created, err := res.insert(r.Context(), item)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (res *resource[E]) update(w http.ResponseWriter, r *http.Request, id int64) {
	item, ok := res.decode(w, r)
	if !ok {
		return
	}
	updated, err := res.replace(r.Context(), id, item)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (res *resource[E]) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := res.remove(r.Context(), id); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads and validates the request body, answering 400 on failure.
func (res *resource[E]) decode(w http.ResponseWriter, r *http.Request) (E, bool) {
	var item E
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode body: %v", err))
		return item, false
	}
	if err := res.form.Validate(res.fields(item)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return item, false
	}
	return item, true
}

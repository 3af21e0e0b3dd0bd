package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/viewstate"
)

// ODataClient talks to an OData v2 service under /odata. Property names are
// PascalCase on the wire and snake_case in the catalog types.
type ODataClient struct {
	c *httpClient
}

// NewODataClient builds a client for the service at apiURL.
func NewODataClient(apiURL string) (*ODataClient, error) {
	c, err := newHTTPClient(apiURL)
	if err != nil {
		return nil, err
	}
	return &ODataClient{c: c}, nil
}

type odataEnvelope struct {
	D json.RawMessage `json:"d"`
}

// List implements Service.
func (o *ODataClient) List(ctx context.Context, collection string, q Query, dest any) error {
	if o == nil {
		return fmt.Errorf("client is nil")
	}
	values := odataValues(collection, q)
	if orderby := odataOrderBy(q.Ordering); orderby != "" {
		values.Set("$orderby", orderby)
	}
	rel := &url.URL{Path: odataCollectionPath(collection), RawQuery: values.Encode()}
	var env odataEnvelope
	if err := o.c.doURL(ctx, http.MethodGet, rel, nil, &env); err != nil {
		return fmt.Errorf("list %s: %w", collection, err)
	}
	if err := decodeODataList(env.D, dest); err != nil {
		return fmt.Errorf("list %s: %w", collection, err)
	}
	return nil
}

// Get implements Service.
func (o *ODataClient) Get(ctx context.Context, collection string, id int64, dest any) error {
	if o == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: odataKeyPath(collection, id), RawQuery: "$format=json"}
	var env odataEnvelope
	if err := o.c.doURL(ctx, http.MethodGet, rel, nil, &env); err != nil {
		return fmt.Errorf("get %s %d: %w", collection, id, err)
	}
	if err := decodeODataEntity(env.D, dest); err != nil {
		return fmt.Errorf("get %s %d: %w", collection, id, err)
	}
	return nil
}

// Create implements Service.
func (o *ODataClient) Create(ctx context.Context, collection string, fields, dest any) error {
	if o == nil {
		return fmt.Errorf("client is nil")
	}
	body, err := odataBody(fields, true)
	if err != nil {
		return fmt.Errorf("create %s: %w", collection, err)
	}
	rel := &url.URL{Path: odataCollectionPath(collection)}
	var env odataEnvelope
	if err := o.c.doURL(ctx, http.MethodPost, rel, body, &env); err != nil {
		return fmt.Errorf("create %s: %w", collection, err)
	}
	if dest == nil || len(env.D) == 0 {
		return nil
	}
	if err := decodeODataEntity(env.D, dest); err != nil {
		return fmt.Errorf("create %s: %w", collection, err)
	}
	return nil
}

// Update implements Service. OData v2 answers PUT with 204, so the entity is
// read back when dest is set.
func (o *ODataClient) Update(ctx context.Context, collection string, id int64, fields, dest any) error {
	if o == nil {
		return fmt.Errorf("client is nil")
	}
	body, err := odataBody(fields, false)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", collection, id, err)
	}
	rel := &url.URL{Path: odataKeyPath(collection, id)}
	if err := o.c.doURL(ctx, http.MethodPut, rel, body, nil); err != nil {
		return fmt.Errorf("update %s %d: %w", collection, id, err)
	}
	if dest == nil {
		return nil
	}
	return o.Get(ctx, collection, id, dest)
}

// Delete implements Service.
func (o *ODataClient) Delete(ctx context.Context, collection string, id int64) error {
	if o == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: odataKeyPath(collection, id)}
	if err := o.c.doURL(ctx, http.MethodDelete, rel, nil, nil); err != nil {
		return fmt.Errorf("delete %s %d: %w", collection, id, err)
	}
	return nil
}

// Count implements Service using the $count sub-resource.
func (o *ODataClient) Count(ctx context.Context, collection string, q Query) (int, error) {
	if o == nil {
		return 0, fmt.Errorf("client is nil")
	}
	values := odataValues(collection, q)
	values.Del("$format")
	rel := &url.URL{Path: odataCollectionPath(collection) + "/$count", RawQuery: values.Encode()}
	var n int
	if err := o.c.doURL(ctx, http.MethodGet, rel, nil, &n); err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func odataCollectionPath(collection string) string {
	return "/odata/" + url.PathEscape(collection)
}

func odataKeyPath(collection string, id int64) string {
	return odataCollectionPath(collection) + "(" + strconv.FormatInt(id, 10) + ")"
}

func odataValues(collection string, q Query) url.Values {
	values := url.Values{}
	values.Set("$format", "json")
	if filter := odataFilter(collection, q); filter != "" {
		values.Set("$filter", filter)
	}
	return values
}

// odataFilter renders a Query as a $filter expression: scoping and status
// clauses ANDed with an OR over the collection's searchable fields.
func odataFilter(collection string, q Query) string {
	var clauses []string
	if q.Store > 0 {
		clauses = append(clauses, fmt.Sprintf("%s eq %d", pascal(catalog.FieldStoreID), q.Store))
	}
	if q.Product > 0 {
		clauses = append(clauses, fmt.Sprintf("%s eq %d", pascal(catalog.FieldProductID), q.Product))
	}
	if q.Status.Valid() {
		clauses = append(clauses, fmt.Sprintf("%s eq %s", pascal(catalog.FieldStatus), quote(q.Status.String())))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		if schema, ok := searchSchema(collection); ok {
			var anyOf []string
			needle := quote(strings.ToLower(search))
			for _, field := range schema.TextFields {
				anyOf = append(anyOf, fmt.Sprintf("substringof(%s,tolower(%s))", needle, pascal(field)))
			}
			if n, err := strconv.ParseFloat(search, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
				for _, field := range schema.NumericFields {
					anyOf = append(anyOf, fmt.Sprintf("%s eq %s", pascal(field), strconv.FormatFloat(n, 'f', -1, 64)))
				}
			}
			if len(anyOf) > 0 {
				clauses = append(clauses, "("+strings.Join(anyOf, " or ")+")")
			}
		}
	}
	return strings.Join(clauses, " and ")
}

func odataOrderBy(ordering string) string {
	column, desc := splitOrdering(ordering)
	if column == "" {
		return ""
	}
	if desc {
		return pascal(column) + " desc"
	}
	return pascal(column) + " asc"
}

func searchSchema(collection string) (viewstate.Schema, bool) {
	switch collection {
	case catalog.CollectionStores:
		return viewstate.StoreSchema, true
	case catalog.CollectionProducts:
		return viewstate.ProductSchema, true
	case catalog.CollectionComments:
		return viewstate.CommentSchema, true
	}
	return viewstate.Schema{}, false
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// odataBody re-keys a catalog value for the wire. Create omits the key so the
// service assigns it.
func odataBody(fields any, omitKey bool) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	var snake map[string]json.RawMessage
	if err := json.Unmarshal(raw, &snake); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	out := make(map[string]json.RawMessage, len(snake))
	for k, v := range snake {
		if omitKey && k == catalog.FieldID {
			continue
		}
		out[pascal(k)] = v
	}
	return out, nil
}

func decodeODataList(d json.RawMessage, dest any) error {
	trimmed := bytes.TrimSpace(d)
	var rows []map[string]json.RawMessage
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	} else {
		var wrapped struct {
			Results []map[string]json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		rows = wrapped.Results
	}
	converted := make([]map[string]json.RawMessage, len(rows))
	for i, row := range rows {
		converted[i] = snakeKeys(row)
	}
	return remarshal(converted, dest)
}

func decodeODataEntity(d json.RawMessage, dest any) error {
	var row map[string]json.RawMessage
	if err := json.Unmarshal(d, &row); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return remarshal(snakeKeys(row), dest)
}

func remarshal(v, dest any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func snakeKeys(row map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(row))
	for k, v := range row {
		if strings.HasPrefix(k, "__") {
			continue
		}
		out[snake(k)] = v
	}
	return out
}

// pascal maps supplier_info to SupplierInfo. The key field id is left alone.
func pascal(name string) string {
	if name == catalog.FieldID {
		return name
	}
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, "")
}

// snake maps SupplierInfo to supplier_info.
func snake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

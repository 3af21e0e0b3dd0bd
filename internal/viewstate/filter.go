package viewstate

import (
	"math"
	"strconv"
	"strings"

	"github.com/five82/shelf/internal/catalog"
)

// StatusAll is the filter selection that admits every status.
const StatusAll catalog.Status = 0

// FilterState is the user's current status tab and search text.
type FilterState struct {
	Status catalog.Status
	Search string
}

// StatusParam returns the status as a wire parameter, empty for StatusAll.
func (f FilterState) StatusParam() string {
	if f.Status == StatusAll {
		return ""
	}
	return f.Status.String()
}

// Active reports whether the filter excludes anything.
func (f FilterState) Active() bool {
	return f.Status != StatusAll || f.Search != ""
}

// Match applies the filter to one entity: the status constraint AND any of the
// free-text checks.
func Match[E catalog.Entity](e E, schema Schema, filter FilterState) bool {
	return matchStatus(e, schema, filter.Status) && matchSearch(e, schema, filter.Search)
}

func matchStatus[E catalog.Entity](e E, schema Schema, status catalog.Status) bool {
	if status == StatusAll || schema.StatusField == "" {
		return true
	}
	v, ok := e.Field(schema.StatusField)
	return ok && v.Str == status.String()
}

// matchSearch ignores whitespace around text, as the shelfd and OData
// filters do.
func matchSearch[E catalog.Entity](e E, schema Schema, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	for _, name := range schema.TextFields {
		if v, ok := e.Field(name); ok && strings.Contains(strings.ToLower(v.String()), needle) {
			return true
		}
	}
	num, numeric := parseSearchNumber(text)
	if !numeric {
		return false
	}
	for _, name := range schema.NumericFields {
		if v, ok := e.Field(name); ok && v.Kind == catalog.KindNumber && v.Num == num {
			return true
		}
	}
	return false
}

func parseSearchNumber(text string) (float64, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

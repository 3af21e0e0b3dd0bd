package catalog

import (
	"cmp"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the semantic type of a field value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
)

// Value is a single scalar field of an entity.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Time time.Time
}

// Text builds a string value.
func Text(s string) Value { return Value{Kind: KindString, Str: s} }

// Number builds a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// When builds a date value.
func When(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// Compare orders two values by their natural ordering: lexicographic for
// strings, numeric for numbers, chronological for dates. Values of different
// kinds order by kind.
func (v Value) Compare(other Value) int {
	if v.Kind != other.Kind {
		return cmp.Compare(v.Kind, other.Kind)
	}
	switch v.Kind {
	case KindNumber:
		return cmp.Compare(v.Num, other.Num)
	case KindDate:
		return v.Time.Compare(other.Time)
	default:
		return strings.Compare(v.Str, other.Str)
	}
}

// String renders the value for display and substring matching.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		if v.Time.IsZero() {
			return ""
		}
		return v.Time.Format(DateLayout)
	default:
		return v.Str
	}
}

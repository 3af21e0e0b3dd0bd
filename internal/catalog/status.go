package catalog

import (
	"fmt"
	"strings"
)

// Status is the availability state of a product.
type Status int

const (
	StatusOK Status = iota + 1
	StatusStorage
	StatusOutOfStock
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusOK, StatusStorage, StatusOutOfStock}

// String returns the wire form of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusStorage:
		return "STORAGE"
	case StatusOutOfStock:
		return "OUT_OF_STOCK"
	}
	return ""
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOK, StatusStorage, StatusOutOfStock:
		return true
	}
	return false
}

// ParseStatus accepts the wire form in any case, with dashes or spaces in place
// of underscores.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for _, s := range Statuses {
		if s.String() == normalized {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", value)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

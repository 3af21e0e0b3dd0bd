package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire and display layout for calendar dates.
const DateLayout = "2006-01-02"

// odataDate matches the OData v2 JSON date literal, e.g. /Date(1700000000000)/.
var odataDate = regexp.MustCompile(`^/Date\((-?\d+)(?:[+-]\d{4})?\)/$`)

// ParseTime accepts RFC3339 timestamps, calendar dates and OData date literals.
func ParseTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}
	if m := odataDate.FindStringSubmatch(trimmed); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse odata date %q: %w", value, err)
		}
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", DateLayout} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}

// Date is a calendar date that travels as YYYY-MM-DD.
type Date struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	t, err := unmarshalTime(data)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Timestamp is an instant that travels as RFC3339.
type Timestamp struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339))
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	t, err := unmarshalTime(data)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

func unmarshalTime(data []byte) (time.Time, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return time.Time{}, nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return time.Time{}, err
	}
	return ParseTime(raw)
}

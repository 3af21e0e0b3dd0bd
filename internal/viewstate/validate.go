package viewstate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

// FieldState is the advisory validation display state of one form field.
type FieldState int

const (
	FieldNone FieldState = iota
	FieldError
)

// Rule validates the text of one field.
type Rule func(value string) FieldState

var (
	emailPattern = regexp.MustCompile(`^\w+[\w\-+.]*@\w+([\-.]\w+)*\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)
)

func check(ok bool) FieldState {
	if ok {
		return FieldNone
	}
	return FieldError
}

// Any accepts every value.
func Any(string) FieldState { return FieldNone }

// Required rejects blank values.
func Required(value string) FieldState {
	return check(strings.TrimSpace(value) != "")
}

// Email accepts addresses of the form local@domain.tld.
func Email(value string) FieldState {
	return check(emailPattern.MatchString(strings.TrimSpace(value)))
}

// Phone accepts 7 to 20 digits, spaces, dashes and parentheses with an
// optional leading plus.
func Phone(value string) FieldState {
	return check(phonePattern.MatchString(strings.TrimSpace(value)))
}

// DatePresent requires a YYYY-MM-DD date.
func DatePresent(value string) FieldState {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return FieldError
	}
	_, err := time.Parse(catalog.DateLayout, trimmed)
	return check(err == nil)
}

// StatusValue requires one of the product statuses.
func StatusValue(value string) FieldState {
	_, err := catalog.ParseStatus(value)
	return check(err == nil)
}

// NumberIn requires a finite number in [min, max].
func NumberIn(min, max float64) Rule {
	return func(value string) FieldState {
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return FieldError
		}
		return check(n >= min && n <= max)
	}
}

// Positive requires a finite number greater than zero.
func Positive(value string) FieldState {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return FieldError
	}
	return check(n > 0)
}

package validation

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps a form field to a translation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the offending field names in a stable order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveAmount(field string, val decimal.Decimal, v Violations) {
	if !val.IsPositive() {
		v[field] = "must_be_positive"
	}
}

// AtMost flags val when it exceeds limit, e.g. a payment larger than the open balance.
func AtMost(field string, val, limit decimal.Decimal, v Violations) {
	if val.GreaterThan(limit) {
		v[field] = "exceeds_balance"
	}
}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ISODate requires a yyyy-mm-dd value.
func ISODate(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
		return
	}
	if !isoDate.MatchString(value) {
		v[field] = "invalid_date"
	}
}

// DateOrder flags end when both dates are set and end falls before start.
// Both values are yyyy-mm-dd, so string order is date order.
func DateOrder(field, start, end string, v Violations) {
	if start != "" && end != "" && end < start {
		v[field] = "end_before_start"
	}
}

// Pattern flags a value that does not match re.
func Pattern(field, value string, re *regexp.Regexp, v Violations) {
	if !re.MatchString(strings.TrimSpace(value)) {
		v[field] = "invalid_format"
	}
}

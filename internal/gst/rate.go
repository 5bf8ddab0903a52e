package gst

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Rate is one of the tax-rate options offered on purchase entries.
type Rate string

const (
	Rate2_5   Rate = "2.5"
	Rate5     Rate = "5"
	Rate18    Rate = "18"
	RateOther Rate = "other"
)

// Rates lists the selectable options in display order.
var Rates = []Rate{Rate2_5, Rate5, Rate18, RateOther}

// Valid reports whether r is a known option.
func (r Rate) Valid() bool {
	switch r {
	case Rate2_5, Rate5, Rate18, RateOther:
		return true
	}
	return false
}

// TaxRate applies to a whole document. Custom is only read when Preset is RateOther.
type TaxRate struct {
	Preset Rate
	Custom decimal.Decimal
}

// Percent returns the effective percentage (5 means 5%).
func (t TaxRate) Percent() decimal.Decimal {
	switch t.Preset {
	case Rate2_5, Rate5, Rate18:
		return decimal.RequireFromString(string(t.Preset))
	case RateOther:
		return t.Custom
	}
	return decimal.Zero
}

func (t TaxRate) String() string {
	return t.Percent().String() + "%"
}

// ParseTaxRate builds a TaxRate from the option and custom inputs of a form.
// Unknown options fall back to 5%.
func ParseTaxRate(option, custom string) TaxRate {
	r := Rate(strings.TrimSpace(option))
	if !r.Valid() {
		r = Rate5
	}
	tr := TaxRate{Preset: r}
	if r == RateOther {
		tr.Custom = ParseCustomRate(custom)
	}
	return tr
}

// ParseCustomRate reads a free-form percentage. Anything that does not parse,
// or lies outside 0..100, counts as 0. The value is kept to one decimal place.
func ParseCustomRate(s string) decimal.Decimal {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return decimal.Zero
	}
	d := decimal.NewFromFloat(f)
	if d.IsNegative() || d.GreaterThan(hundred) {
		return decimal.Zero
	}
	return d.Round(1)
}

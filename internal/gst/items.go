package gst

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one row of an invoice or purchase entry.
type LineItem struct {
	SNo         int             `json:"sNo"`
	ProductName string          `json:"productName"`
	HSN         string          `json:"hsn"`
	Quantity    int64           `json:"qty"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// NewLineItem returns the default row: quantity 1, price 0.
func NewLineItem(sNo int) LineItem {
	return LineItem{SNo: sNo, Quantity: 1, UnitPrice: decimal.Zero}
}

// LineTotal is quantity × unit price, never rounded.
func (li LineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromInt(li.Quantity).Mul(li.UnitPrice)
}

// Field names accepted by Items.Set.
type Field string

const (
	FieldProductName Field = "productName"
	FieldHSN         Field = "hsn"
	FieldQuantity    Field = "qty"
	FieldUnitPrice   Field = "price"
)

// Items is an editable list of rows. Every operation returns a new list and
// leaves the receiver untouched.
type Items []LineItem

// NewItems starts a document with a single default row.
func NewItems() Items {
	return Items{NewLineItem(1)}
}

// Add appends a default row.
func (it Items) Add() Items {
	out := append(it.clone(), NewLineItem(len(it)+1))
	return out.Renumber()
}

// Remove deletes row i. The last remaining row is reset to defaults instead,
// so a document never ends up with zero rows.
func (it Items) Remove(i int) Items {
	if i < 0 || i >= len(it) {
		return it.clone()
	}
	if len(it) <= 1 {
		return NewItems()
	}
	out := make(Items, 0, len(it)-1)
	out = append(out, it[:i]...)
	out = append(out, it[i+1:]...)
	return out.Renumber()
}

// Set edits one field of row i from raw form input. Numeric fields that do not
// parse are stored as 0.
func (it Items) Set(i int, f Field, raw string) Items {
	out := it.clone()
	if i < 0 || i >= len(out) {
		return out
	}
	switch f {
	case FieldProductName:
		out[i].ProductName = raw
	case FieldHSN:
		out[i].HSN = raw
	case FieldQuantity:
		out[i].Quantity = ParseQuantity(raw)
	case FieldUnitPrice:
		out[i].UnitPrice = ParsePrice(raw)
	}
	return out
}

// Renumber rewrites S.No so rows count from 1 in order.
func (it Items) Renumber() Items {
	out := it.clone()
	for i := range out {
		out[i].SNo = i + 1
	}
	return out
}

// HasUnnamed reports whether any row is missing its product name.
func (it Items) HasUnnamed() bool {
	for _, li := range it {
		if strings.TrimSpace(li.ProductName) == "" {
			return true
		}
	}
	return false
}

func (it Items) clone() Items {
	out := make(Items, len(it))
	copy(out, it)
	return out
}

// Subtotal sums every line total.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(li.LineTotal())
	}
	return sum
}

// ParseQuantity reads the leading integer of s ("3", "3 bales", "2.7" -> 2).
// Empty, non-numeric or negative input yields 0.
func ParseQuantity(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParsePrice reads a decimal amount. Empty, non-numeric or negative input yields 0.
func ParsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

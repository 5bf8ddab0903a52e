// Package gst holds the pure invoice and purchase arithmetic: line totals,
// subtotals, the split CGST/SGST breakdown used by purchase entries and the
// flat 5% rule used when generating sales invoices.
package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred     = decimal.NewFromInt(100)
	twoHundred  = decimal.NewFromInt(200)
	flatInvoice = decimal.RequireFromString("0.05")
)

// Breakdown is the split-tax result shown on purchase entries.
// GrandTotal always equals SubtotalBeforeTax + CGST + SGST + IGST.
type Breakdown struct {
	SubtotalBeforeTax decimal.Decimal `json:"subtotalBeforeTax"`
	CGST              decimal.Decimal `json:"cgst"`
	SGST              decimal.Decimal `json:"sgst"`
	IGST              decimal.Decimal `json:"igst"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
}

// FlatBreakdown is the single-line tax result of the invoice generation flow.
type FlatBreakdown struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	GST        decimal.Decimal `json:"gst"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// ComputeSplitGst splits the rate evenly between CGST and SGST. Each half is
// rounded to whole currency units on its own (half away from zero), so the
// combined tax can differ by one unit from rounding the total tax once.
func ComputeSplitGst(subtotal decimal.Decimal, rate TaxRate) Breakdown {
	pct := rate.Percent()
	cgst := halfTax(subtotal, pct)
	sgst := halfTax(subtotal, pct)
	return Breakdown{
		SubtotalBeforeTax: subtotal,
		CGST:              cgst,
		SGST:              sgst,
		IGST:              decimal.Zero,
		GrandTotal:        subtotal.Add(cgst).Add(sgst),
	}
}

func halfTax(subtotal, pct decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(pct).Div(twoHundred).Round(0)
}

// ComputeFlatGst applies the unconditional 5% invoice rate. Nothing is rounded;
// callers format to two decimals for display only.
func ComputeFlatGst(subtotal decimal.Decimal) FlatBreakdown {
	tax := subtotal.Mul(flatInvoice)
	return FlatBreakdown{
		Subtotal:   subtotal,
		GST:        tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// FormatMoney renders an amount with the rupee glyph and two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

// FormatAmountIN renders an amount with Indian digit grouping (12,34,567.50).
// PDF core fonts have no rupee glyph, so reports use this without a prefix.
func FormatAmountIN(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	var groups []string
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		if lead := len(head) % 2; lead > 0 {
			groups = append(groups, head[:lead])
			head = head[lead:]
		}
		for ; len(head) > 0; head = head[2:] {
			groups = append(groups, head[:2])
		}
		intPart = intPart[len(intPart)-3:]
	}
	groups = append(groups, intPart)
	out := strings.Join(groups, ",") + "." + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

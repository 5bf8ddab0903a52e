package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
)

func TestDecodeJSONAcceptsNumbersAndStrings(t *testing.T) {
	body := `{"customerName":"Acme","date":"2025-07-31","bankName":"SBI","amount":1250.5}`
	r := httptest.NewRequest(http.MethodPost, "/payments/sales", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	var f SalesPayment
	if err := Decode(r, &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Amount.String() != "1250.5" || f.CustomerName.String() != "Acme" {
		t.Fatalf("unexpected form %+v", f)
	}
	if v := f.Validate(); !v.Empty() {
		t.Fatalf("unexpected violations %v", v)
	}
	if !f.Model().Amount.Equal(decimal.RequireFromString("1250.5")) {
		t.Fatalf("amount %s", f.Model().Amount)
	}
}

func TestZeroPaymentRejected(t *testing.T) {
	f := SalesPayment{CustomerName: "Acme", Date: "2025-07-31", BankName: "SBI", Amount: "0"}
	v := f.Validate()
	if v["amount"] != "must_be_positive" {
		t.Fatalf("expected amount violation, got %v", v)
	}
	f.Amount = "abc"
	if f.Validate()["amount"] != "must_be_positive" {
		t.Fatalf("non numeric amount must be rejected")
	}
}

func TestPurchasePaymentBalanceCap(t *testing.T) {
	f := PurchasePayment{
		PONumber: "PO-7", SupplierName: "Weavers Co", PaymentDate: "2025-08-01", PaymentMode: "NEFT",
		PaymentAmount: "600", Balance: decimal.NewFromInt(500),
	}
	if f.Validate()["paymentAmount"] != "exceeds_balance" {
		t.Fatalf("expected exceeds_balance, got %v", f.Validate())
	}
	f.PaymentAmount = "500"
	if v := f.Validate(); !v.Empty() {
		t.Fatalf("full balance payment should pass, got %v", v)
	}
	f.PaymentAmount = "-1"
	if f.Validate()["paymentAmount"] != "must_be_positive" {
		t.Fatalf("negative amount must be rejected")
	}
}

func TestCustomerRequiresNameAndContact(t *testing.T) {
	v := Customer{Email: "a@b.c"}.Validate()
	if v["name"] != "required" || v["contactNumber"] != "required" {
		t.Fatalf("unexpected violations %v", v)
	}
	if v := (Customer{Name: "Acme", ContactNumber: "98400 12345"}).Validate(); !v.Empty() {
		t.Fatalf("unexpected violations %v", v)
	}
}

func TestInvoiceFormFromHTMLValues(t *testing.T) {
	vals := url.Values{
		"name":        {"Acme"},
		"currentDate": {"2025-07-31"},
		"noOfBales":   {"4"},
		"productName": {"Cotton", "Silk"},
		"hsn":         {"5208", "5007"},
		"qty":         {"3", "1"},
		"price":       {"250", "100"},
	}
	r := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(vals.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var f Invoice
	if err := Decode(r, &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v := f.Validate(); !v.Empty() {
		t.Fatalf("unexpected violations %v", v)
	}
	d := f.Draft("INV-9")
	if len(d.Items) != 2 || d.Items[1].SNo != 2 || d.NoOfBales != 4 {
		t.Fatalf("unexpected draft %+v", d)
	}
	if !d.Subtotal.Equal(decimal.NewFromInt(850)) || !d.GrandTotal.Equal(decimal.RequireFromString("892.5")) {
		t.Fatalf("unexpected totals %s %s", d.Subtotal, d.GrandTotal)
	}
	if d.InvoiceNumber != "INV-9" {
		t.Fatalf("draft must carry the issued number")
	}
}

func TestInvoiceRequiresNamedItems(t *testing.T) {
	f := Invoice{CustomerName: "Acme", Items: []Item{{ProductName: "Cotton", Qty: "1"}, {Qty: "0"}}}
	if f.Validate()["items"] != "item_name_required" {
		t.Fatalf("unnamed row must be rejected, got %v", f.Validate())
	}
	f.Items = nil
	if f.Validate()["items"] != "at_least_one_item" {
		t.Fatalf("empty item list must be rejected")
	}
}

func TestPurchaseEntryUsesAmountBeforeTax(t *testing.T) {
	f := PurchaseEntry{
		SupplierName: "Weavers Co", PONumber: "PO-1", PODate: "2025-07-01",
		AmountBeforeTax: "1000", TaxRate: "other", CustomRate: "7.5",
		Items: []Item{{ProductName: "ignored", Qty: "9", Price: "9"}},
	}
	if v := f.Validate(); !v.Empty() {
		t.Fatalf("unexpected violations %v", v)
	}
	m := f.Model()
	if !m.CGST.Equal(decimal.NewFromInt(38)) || !m.GrandTotal.Equal(decimal.NewFromInt(1076)) {
		t.Fatalf("unexpected breakdown %+v", m.Breakdown)
	}
	if len(m.Items) != 0 {
		t.Fatalf("items should be omitted when a direct amount is entered")
	}
}

func TestPurchaseEntryFromItems(t *testing.T) {
	f := PurchaseEntry{
		SupplierName: "Weavers Co", PONumber: "PO-2", PODate: "2025-07-01", TaxRate: "5",
		Items: []Item{{ProductName: "Yarn", Qty: "2", Price: "100"}},
	}
	b := f.Totals()
	if !b.SubtotalBeforeTax.Equal(decimal.NewFromInt(200)) || !b.GrandTotal.Equal(decimal.NewFromInt(210)) {
		t.Fatalf("unexpected breakdown %+v", b)
	}
	f.Items = nil
	if f.Validate()["amountBeforeTax"] != "must_be_positive" {
		t.Fatalf("zero taxable amount must be rejected")
	}
	f.TaxRate = "12"
	if f.Validate()["taxRate"] != "invalid_option" {
		t.Fatalf("unknown rate option must be rejected")
	}
}

func TestReportValidation(t *testing.T) {
	f := ReportFromQuery(url.Values{"reportType": {"sales"}, "startDate": {"2025-05-01"}, "endDate": {"2025-04-01"}})
	if f.Validate()["endDate"] != "end_before_start" {
		t.Fatalf("expected date order violation, got %v", f.Validate())
	}
	f = ReportFromQuery(url.Values{"reportType": {"refunds"}})
	if f.Validate()["reportType"] != "invalid_option" {
		t.Fatalf("expected invalid report type")
	}
}

func TestResetYearFormat(t *testing.T) {
	for fy, ok := range map[string]bool{"2025-26": true, "1999-00": true, "2025-27": false, "2025": false, "": false} {
		if got := (ResetYear{FinancialYear: Value(fy)}).Validate().Empty(); got != ok {
			t.Fatalf("financial year %q valid=%v want %v", fy, got, ok)
		}
	}
}

func TestEditRowsUsesItemOperations(t *testing.T) {
	rows := []Item{{ProductName: "Cotton", Qty: "2 bales", Price: "10"}, {ProductName: "Silk", Qty: "1", Price: "x"}}

	got := EditRows(rows, func(it gst.Items) gst.Items { return it.Add() })
	if len(got) != 3 {
		t.Fatalf("rows = %d", len(got))
	}
	if got[0].Qty != "2" || got[1].Price != "0" {
		t.Fatalf("numbers not coerced: %+v", got[:2])
	}
	if got[2] != (Item{Qty: "1", Price: "0"}) {
		t.Fatalf("new row = %+v", got[2])
	}

	got = EditRows(rows[:1], func(it gst.Items) gst.Items { return it.Remove(0) })
	if len(got) != 1 || got[0] != BlankRows()[0] {
		t.Fatalf("removing the last row should leave a blank row, got %+v", got)
	}
}

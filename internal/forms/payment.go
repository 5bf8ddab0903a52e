package forms

import (
	"net/url"
	"regexp"
	"strconv"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/validation"
	"github.com/shopspring/decimal"
)

// SalesPayment records money received from a customer.
type SalesPayment struct {
	CustomerName Value `json:"customerName"`
	Date         Value `json:"date"`
	BankName     Value `json:"bankName"`
	Amount       Value `json:"amount"`
}

func (f *SalesPayment) readValues(v url.Values) {
	f.CustomerName = get(v, "customerName")
	f.Date = get(v, "date")
	f.BankName = get(v, "bankName")
	f.Amount = get(v, "amount")
}

func (f SalesPayment) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("customerName", f.CustomerName.String(), v)
	validation.Required("bankName", f.BankName.String(), v)
	validation.ISODate("date", f.Date.String(), v)
	validation.PositiveAmount("amount", gst.ParsePrice(string(f.Amount)), v)
	return v
}

func (f SalesPayment) Model() models.PaymentRecord {
	return models.PaymentRecord{
		CustomerName: f.CustomerName.String(),
		Date:         f.Date.String(),
		BankName:     f.BankName.String(),
		Amount:       gst.ParsePrice(string(f.Amount)),
	}
}

// PurchasePayment records money paid against a purchase order. Balance is the
// open amount reported by the billing API for the selected order; it is never
// read from user input.
type PurchasePayment struct {
	PONumber      Value           `json:"poNumber"`
	SupplierName  Value           `json:"supplierName"`
	PaymentAmount Value           `json:"paymentAmount"`
	PaymentDate   Value           `json:"paymentDate"`
	PaymentMode   Value           `json:"paymentMode"`
	Balance       decimal.Decimal `json:"-"`
}

func (f *PurchasePayment) readValues(v url.Values) {
	f.PONumber = get(v, "poNumber")
	f.SupplierName = get(v, "supplierName")
	f.PaymentAmount = get(v, "paymentAmount")
	f.PaymentDate = get(v, "paymentDate")
	f.PaymentMode = get(v, "paymentMode")
}

func (f PurchasePayment) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("poNumber", f.PONumber.String(), v)
	validation.Required("supplierName", f.SupplierName.String(), v)
	validation.Required("paymentMode", f.PaymentMode.String(), v)
	validation.ISODate("paymentDate", f.PaymentDate.String(), v)
	amt := gst.ParsePrice(string(f.PaymentAmount))
	validation.PositiveAmount("paymentAmount", amt, v)
	if _, bad := v["paymentAmount"]; !bad {
		validation.AtMost("paymentAmount", amt, f.Balance, v)
	}
	return v
}

func (f PurchasePayment) Model() models.PurchasePayment {
	return models.PurchasePayment{
		PONumber:      f.PONumber.String(),
		SupplierName:  f.SupplierName.String(),
		PaymentAmount: gst.ParsePrice(string(f.PaymentAmount)),
		PaymentDate:   f.PaymentDate.String(),
		PaymentMode:   f.PaymentMode.String(),
	}
}

// Report filters the sales or purchase listing.
type Report struct {
	Kind         Value `json:"reportType"`
	StartDate    Value `json:"startDate"`
	EndDate      Value `json:"endDate"`
	CustomerName Value `json:"customerName"`
}

func (f *Report) readValues(v url.Values) {
	f.Kind = get(v, "reportType")
	f.StartDate = get(v, "startDate")
	f.EndDate = get(v, "endDate")
	f.CustomerName = get(v, "customerName")
}

// ReportFromQuery reads the filter of a GET listing or export.
func ReportFromQuery(q url.Values) Report {
	var f Report
	f.readValues(q)
	return f
}

func (f Report) Validate() validation.Violations {
	v := validation.Violations{}
	if !models.ReportKind(f.Kind.String()).Valid() {
		v["reportType"] = "invalid_option"
	}
	if f.StartDate.String() != "" {
		validation.ISODate("startDate", f.StartDate.String(), v)
	}
	if f.EndDate.String() != "" {
		validation.ISODate("endDate", f.EndDate.String(), v)
	}
	validation.DateOrder("endDate", f.StartDate.String(), f.EndDate.String(), v)
	return v
}

func (f Report) Filter() models.ReportFilter {
	return models.ReportFilter{
		Kind:         models.ReportKind(f.Kind.String()),
		StartDate:    f.StartDate.String(),
		EndDate:      f.EndDate.String(),
		CustomerName: f.CustomerName.String(),
	}
}

// ResetYear closes the current financial year, written as 2025-26.
type ResetYear struct {
	FinancialYear Value `json:"financialYear"`
}

func (f *ResetYear) readValues(v url.Values) { f.FinancialYear = get(v, "financialYear") }

var financialYear = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

func (f ResetYear) Validate() validation.Violations {
	v := validation.Violations{}
	fy := f.FinancialYear.String()
	validation.Required("financialYear", fy, v)
	if !v.Empty() {
		return v
	}
	validation.Pattern("financialYear", fy, financialYear, v)
	if !v.Empty() {
		return v
	}
	m := financialYear.FindStringSubmatch(fy)
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		v["financialYear"] = "invalid_format"
	}
	return v
}

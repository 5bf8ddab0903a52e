// Package models holds the JSON shapes exchanged with the remote billing API.
// Nothing here is stored locally; the remote API owns every record.
package models

import "github.com/shopspring/decimal"

func init() {
	// The billing API reads and writes amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Customer is a buyer registered for the partner.
type Customer struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNumber"`
	State         string `json:"state"`
	StateCode     string `json:"stateCode"`
	GSTNo         string `json:"gstNo"`
	Email         string `json:"email"`
}

// Product is an item that can be put on an invoice.
type Product struct {
	ProductName string `json:"productName"`
	HSN         string `json:"hsn,omitempty"`
}

// DashboardSummary feeds the statistics screen.
type DashboardSummary struct {
	TotalOutstanding    decimal.Decimal      `json:"totalOutstanding"`
	TotalPaid           decimal.Decimal      `json:"totalPaid"`
	TotalInvoices       int                  `json:"totalInvoices"`
	ActiveCustomers     int                  `json:"activeCustomers"`
	AverageInvoiceValue decimal.Decimal      `json:"averageInvoiceValue"`
	MonthlyGrowth       decimal.Decimal      `json:"monthlyGrowth"`
	PaymentBalances     []OutstandingBalance `json:"paymentBalances"`
}

// OutstandingBalance is one customer row of the statistics screen.
type OutstandingBalance struct {
	CustomerName      string          `json:"customerName"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	LastPaymentDate   string          `json:"lastPaymentDate"`
}

// ReportKind selects the sales or purchase side of a listing.
type ReportKind string

const (
	ReportSales    ReportKind = "sales"
	ReportPurchase ReportKind = "purchase"
)

// Valid reports whether k is sales or purchase.
func (k ReportKind) Valid() bool { return k == ReportSales || k == ReportPurchase }

// ReportFilter narrows a sales or purchase listing. Dates are yyyy-mm-dd.
type ReportFilter struct {
	Kind         ReportKind
	StartDate    string
	EndDate      string
	CustomerName string
}

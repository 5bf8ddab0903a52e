package models

import (
	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state the remote API reports for an invoice.
type InvoiceStatus string

const (
	InvoiceStatusActive    InvoiceStatus = "active"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// InvoiceDraft is the sales invoice being edited. InvoiceNumber is issued by
// the remote API and is never edited locally.
type InvoiceDraft struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"name"`
	Date          string          `json:"currentDate"`
	NoOfBales     int64           `json:"noOfBales"`
	Transport     string          `json:"transport"`
	Items         []gst.LineItem  `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	GST           decimal.Decimal `json:"gst"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
}

// ApplyTotals copies a flat-rate breakdown onto the draft.
func (d *InvoiceDraft) ApplyTotals(b gst.FlatBreakdown) {
	d.Subtotal = b.Subtotal
	d.GST = b.GST
	d.GrandTotal = b.GrandTotal
}

// GeneratedInvoice is returned once the remote API has stored and rendered an invoice.
type GeneratedInvoice struct {
	InvoiceNumber string `json:"invoiceNumber"`
	FileURL       string `json:"fileUrl"`
}

// BillEntry is one invoice as listed in sales reports and cancel lookups.
type BillEntry struct {
	Date           string          `json:"date"`
	CustomerName   string          `json:"customerName"`
	GSTNumber      string          `json:"gstNumber"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	Qty            decimal.Decimal `json:"qty"`
	TotalBeforeGST decimal.Decimal `json:"totalBeforeGST"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	Status         InvoiceStatus   `json:"status,omitempty"`
}

// Cancelled reports whether the invoice was already cancelled.
func (b BillEntry) Cancelled() bool { return b.Status == InvoiceStatusCancelled }

// PurchaseEntry is a supplier purchase order with its split-GST totals.
type PurchaseEntry struct {
	SupplierName    string          `json:"supplierName"`
	SupplierAddress string          `json:"supplierAddress"`
	GSTNumber       string          `json:"gstNumber,omitempty"`
	PONumber        string          `json:"poNumber"`
	PODate          string          `json:"poDate"`
	Items           []gst.LineItem  `json:"items"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	gst.Breakdown
}

// PurchaseRecord is one purchase order as listed in purchase reports.
type PurchaseRecord struct {
	PODate         string          `json:"poDate"`
	SupplierName   string          `json:"supplierName"`
	GSTNumber      string          `json:"gstNumber"`
	PONumber       string          `json:"poNumber"`
	Qty            decimal.Decimal `json:"qty"`
	TotalBeforeGST decimal.Decimal `json:"totalBeforeGST"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
)

// NextInvoiceNumber asks for the number the next generated invoice will carry.
// The API answers either {"invoiceNumber": "..."} or a bare JSON string.
func (t *Tenant) NextInvoiceNumber(ctx context.Context) (string, error) {
	var raw json.RawMessage
	if err := t.do(ctx, http.MethodGet, "/Invoices/GetNextInvoiceNumber", nil, nil, &raw); err != nil {
		return "", err
	}
	var obj struct {
		InvoiceNumber string `json:"invoiceNumber"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.InvoiceNumber != "" {
		return obj.InvoiceNumber, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
		return s, nil
	}
	return "", fmt.Errorf("unexpected invoice number response: %s", string(raw))
}

// GenerateInvoice stores the draft and returns the issued number and PDF location.
func (t *Tenant) GenerateInvoice(ctx context.Context, d models.InvoiceDraft) (models.GeneratedInvoice, error) {
	var out models.GeneratedInvoice
	err := t.do(ctx, http.MethodPost, "/Invoices/GenerateInvoice", nil, d, &out)
	return out, err
}

// GetInvoice fetches the bill history entry of one invoice, for cancellation.
func (t *Tenant) GetInvoice(ctx context.Context, number string) (models.BillEntry, error) {
	var out models.BillEntry
	q := url.Values{"invoiceNumber": {number}}
	err := t.do(ctx, http.MethodGet, "/Invoices/GetBillHistory", q, nil, &out)
	return out, err
}

func (t *Tenant) CancelInvoice(ctx context.Context, number string) error {
	q := url.Values{"invoiceNumber": {number}}
	return t.do(ctx, http.MethodPost, "/Invoices/CancelInvoice", q, nil, nil)
}

func filterQuery(f models.ReportFilter) url.Values {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.CustomerName != "" {
		q.Set("customerName", f.CustomerName)
	}
	return q
}

func (t *Tenant) SalesList(ctx context.Context, f models.ReportFilter) ([]models.BillEntry, error) {
	var out []models.BillEntry
	if err := t.do(ctx, http.MethodGet, "/Invoices/GetSalesList", filterQuery(f), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Tenant) PurchaseList(ctx context.Context, f models.ReportFilter) ([]models.PurchaseRecord, error) {
	var out []models.PurchaseRecord
	if err := t.do(ctx, http.MethodGet, "/Invoices/GetPurchaseList", filterQuery(f), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Tenant) DashboardSummary(ctx context.Context) (models.DashboardSummary, error) {
	var out models.DashboardSummary
	err := t.do(ctx, http.MethodGet, "/Invoices/DashboardSummary", nil, nil, &out)
	return out, err
}

func (t *Tenant) AddPurchaseEntry(ctx context.Context, p models.PurchaseEntry) error {
	return t.do(ctx, http.MethodPost, "/Invoices/PurchaseEntry", nil, p, nil)
}

// ResetFinancialYear closes the books and starts numbering for year (e.g. 2025-26).
func (t *Tenant) ResetFinancialYear(ctx context.Context, year string) error {
	q := url.Values{"financialYear": {year}}
	return t.do(ctx, http.MethodPost, "/Invoices/resetFinancialYear", q, nil, nil)
}

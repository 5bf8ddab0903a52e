package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
)

func (t *Tenant) RecordSalesPayment(ctx context.Context, p models.PaymentRecord) error {
	q := url.Values{"type": {string(models.PaymentSales)}}
	return t.do(ctx, http.MethodPost, "/Invoices/PaymentEntry", q, p, nil)
}

func (t *Tenant) RecordPurchasePayment(ctx context.Context, p models.PurchasePayment) error {
	q := url.Values{"type": {string(models.PaymentPurchase)}}
	return t.do(ctx, http.MethodPost, "/Invoices/PaymentEntry", q, p, nil)
}

// RecentTransactions lists the latest payments of one kind.
func (t *Tenant) RecentTransactions(ctx context.Context, kind models.PaymentKind) ([]models.Transaction, error) {
	var out []models.Transaction
	q := url.Values{"type": {string(kind)}}
	if err := t.do(ctx, http.MethodGet, "/Invoices/RecentTransactions", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SalesBalances lists unpaid invoices, optionally for one customer.
func (t *Tenant) SalesBalances(ctx context.Context, customer string) ([]models.SalesBalance, error) {
	var out []models.SalesBalance
	q := url.Values{}
	if customer != "" {
		q.Set("customerName", customer)
	}
	if err := t.do(ctx, http.MethodGet, "/Invoices/getSalesBalanceList", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PurchaseBalances lists purchase orders not yet fully paid, optionally for one supplier.
func (t *Tenant) PurchaseBalances(ctx context.Context, supplier string) ([]models.PurchaseBalance, error) {
	var out []models.PurchaseBalance
	q := url.Values{}
	if supplier != "" {
		q.Set("supplierName", supplier)
	}
	if err := t.do(ctx, http.MethodGet, "/Invoices/getPurchaseBalanceList", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

package services

import (
	"context"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
	"github.com/RajevHacker/codespark-invoice-wizard/validation"
)

type PaymentService struct {
	api *backend.Client
}

func NewPaymentService(api *backend.Client) *PaymentService {
	return &PaymentService{api: api}
}

// RecordSales records a customer payment and returns the refreshed recent list.
// Once the payment is stored a failed refresh only leaves the list empty.
func (s *PaymentService) RecordSales(ctx context.Context, sess session.Session, f forms.SalesPayment) ([]models.Transaction, error) {
	if err := invalid(f.Validate()); err != nil {
		return nil, err
	}
	api := s.api.For(sess)
	if err := api.RecordSalesPayment(ctx, f.Model()); err != nil {
		return nil, err
	}
	return recentAfterSave(ctx, api, models.PaymentSales), nil
}

// OpenBalance returns the outstanding amount of a purchase order, or false
// when the order has nothing left to pay.
func (s *PaymentService) OpenBalance(ctx context.Context, sess session.Session, supplier, poNumber string) (decimal.Decimal, bool, error) {
	rows, err := s.api.For(sess).PurchaseBalances(ctx, supplier)
	if err != nil {
		return decimal.Zero, false, err
	}
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.PONumber), strings.TrimSpace(poNumber)) {
			return r.BalanceAmount, r.BalanceAmount.IsPositive(), nil
		}
	}
	return decimal.Zero, false, nil
}

// RecordPurchase records a payment against a purchase order. The amount may
// not exceed the open balance reported by the billing API.
func (s *PaymentService) RecordPurchase(ctx context.Context, sess session.Session, f forms.PurchasePayment) ([]models.Transaction, error) {
	// required fields first, so a balance lookup is never made for an empty form
	if v := f.Validate(); v["poNumber"] != "" || v["supplierName"] != "" {
		return nil, invalid(v)
	}
	balance, open, err := s.OpenBalance(ctx, sess, f.SupplierName.String(), f.PONumber.String())
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, invalid(validation.Violations{"poNumber": "no_open_balance"})
	}
	f.Balance = balance
	if err := invalid(f.Validate()); err != nil {
		return nil, err
	}
	api := s.api.For(sess)
	if err := api.RecordPurchasePayment(ctx, f.Model()); err != nil {
		return nil, err
	}
	return recentAfterSave(ctx, api, models.PaymentPurchase), nil
}

func recentAfterSave(ctx context.Context, api *backend.Tenant, kind models.PaymentKind) []models.Transaction {
	rows, err := api.RecentTransactions(ctx, kind)
	if err != nil {
		log.Printf("%s payment recorded, recent list unavailable: %v", kind, err)
		return []models.Transaction{}
	}
	return rows
}

// Recent lists the latest payments of one side.
func (s *PaymentService) Recent(ctx context.Context, sess session.Session, kind models.PaymentKind) ([]models.Transaction, error) {
	return s.api.For(sess).RecentTransactions(ctx, kind)
}

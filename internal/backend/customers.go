package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
)

// Sheets the search endpoint can look into.
const (
	SheetCustomers = "CustomerDetails"
	SheetProducts  = "ProductDetails"
	SheetBills     = "BillHistory"
)

func (t *Tenant) AddCustomer(ctx context.Context, c models.Customer) error {
	return t.do(ctx, http.MethodPost, "/Invoices/AddCustomer", nil, c, nil)
}

func (t *Tenant) UpdateCustomer(ctx context.Context, c models.Customer) error {
	return t.do(ctx, http.MethodPut, "/Invoices/UpdateCustomer", nil, c, nil)
}

// GetCustomer looks a customer up by exact name.
func (t *Tenant) GetCustomer(ctx context.Context, name string) (models.Customer, error) {
	var out models.Customer
	q := url.Values{"customerName": {name}}
	err := t.do(ctx, http.MethodGet, "/Invoices/GetCustomer", q, nil, &out)
	return out, err
}

// Search returns names from sheet that contain the partial value.
func (t *Tenant) Search(ctx context.Context, sheet, value string) ([]string, error) {
	var out []string
	q := url.Values{"searchValue": {value}, "sheetName": {sheet}}
	if err := t.do(ctx, http.MethodGet, "/Invoices/SearchCustomers", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Tenant) SearchCustomers(ctx context.Context, value string) ([]string, error) {
	return t.Search(ctx, SheetCustomers, value)
}

func (t *Tenant) SearchProducts(ctx context.Context, value string) ([]string, error) {
	return t.Search(ctx, SheetProducts, value)
}

func (t *Tenant) SearchInvoices(ctx context.Context, value string) ([]string, error) {
	return t.Search(ctx, SheetBills, value)
}

func (t *Tenant) AddProduct(ctx context.Context, p models.Product) error {
	return t.do(ctx, http.MethodPost, "/Invoices/AddProduct", nil, p, nil)
}

package models

import "github.com/shopspring/decimal"

// PaymentKind distinguishes money received from customers and money paid to suppliers.
type PaymentKind string

const (
	PaymentSales    PaymentKind = "sales"
	PaymentPurchase PaymentKind = "purchase"
)

// PaymentRecord is a payment received against sales invoices.
type PaymentRecord struct {
	CustomerName string          `json:"CustomerName"`
	Date         string          `json:"Date"`
	BankName     string          `json:"BankName"`
	Amount       decimal.Decimal `json:"Amount"`
}

// PurchasePayment is a payment made against a purchase order.
type PurchasePayment struct {
	PONumber      string          `json:"poNumber"`
	SupplierName  string          `json:"supplierName"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	PaymentDate   string          `json:"paymentDate"`
	PaymentMode   string          `json:"paymentMode"`
}

// Transaction is one entry of the recent transactions list.
type Transaction struct {
	Name   string          `json:"name"`
	Date   string          `json:"date"`
	Mode   string          `json:"mode"`
	Amount decimal.Decimal `json:"amount"`
	Ref    string          `json:"reference,omitempty"`
}

// SalesBalance is an invoice with money still owed by the customer.
type SalesBalance struct {
	CustomerName  string          `json:"customerName"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	BalanceAmount decimal.Decimal `json:"balanceAmount"`
	PaymentStatus string          `json:"paymentStatus"`
}

// PurchaseBalance is a purchase order with money still owed to the supplier.
type PurchaseBalance struct {
	PONumber      string          `json:"poNumber"`
	SupplierName  string          `json:"supplierName"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	BalanceAmount decimal.Decimal `json:"balanceAmount"`
	PODate        string          `json:"poDate"`
}

package handlers

import (
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/services"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/suggest"
)

// RouterConfig holds every configured handler of the web app.
type RouterConfig struct {
	Sessions session.Store

	AuthHandler      *AuthHandler
	DashboardHandler *DashboardHandler
	CustomerHandler  *CustomerHandler
	ProductHandler   *ProductHandler
	InvoiceHandler   *InvoiceHandler
	PurchaseHandler  *PurchaseHandler
	PaymentHandler   *PaymentHandler
	ReportHandler    *ReportHandler
	SuggestHandler   *SuggestHandler
}

// NewRouterConfig wires the services and handlers around one billing API
// client and one session store.
func NewRouterConfig(api *backend.Client, sessions session.Store, sc suggest.Config) *RouterConfig {
	return &RouterConfig{
		Sessions:         sessions,
		AuthHandler:      NewAuthHandler(api, sessions),
		DashboardHandler: NewDashboardHandler(api, sessions),
		CustomerHandler:  NewCustomerHandler(api, sessions),
		ProductHandler:   NewProductHandler(api, sessions),
		InvoiceHandler:   NewInvoiceHandler(api, sessions, services.NewInvoiceService(api)),
		PurchaseHandler:  NewPurchaseHandler(api, sessions, services.NewPurchaseService(api)),
		PaymentHandler:   NewPaymentHandler(api, sessions, services.NewPaymentService(api)),
		ReportHandler:    NewReportHandler(api, sessions, services.NewReportService(api)),
		SuggestHandler:   NewSuggestHandler(api, sessions, sc),
	}
}

package main

import (
	"net/http"

	"github.com/RajevHacker/codespark-invoice-wizard/auth"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/handlers"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/middleware"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	routerCfg *handlers.RouterConfig
	handler   http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(routerCfg *handlers.RouterConfig) *App {
	app := &App{
		mux:       http.NewServeMux(),
		routerCfg: routerCfg,
	}
	app.setupRoutes()
	app.handler = middleware.Chain(app.mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Prefs,
		auth.Middleware(routerCfg.Sessions),
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Public routes (no auth required)
	// ─────────────────────────────────────────────────────────────────────────
	ah := a.routerCfg.AuthHandler

	a.mux.HandleFunc("GET /{$}", a.landingPage)
	a.mux.HandleFunc("GET /health", handlers.Health)
	a.mux.HandleFunc("GET /login", ah.Login)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("POST /logout", ah.Logout)

	// ─────────────────────────────────────────────────────────────────────────
	// Authenticated routes (require a partner session)
	// ─────────────────────────────────────────────────────────────────────────
	dh := a.routerCfg.DashboardHandler
	a.mux.Handle("GET /dashboard", a.requireAuth(dh.Show))
	a.mux.Handle("GET /financial-year/reset", a.requireAuth(dh.ResetForm))
	a.mux.Handle("POST /financial-year/reset", a.requireAuth(dh.ResetYear))

	ch := a.routerCfg.CustomerHandler
	a.mux.Handle("GET /customers/new", a.requireAuth(ch.New))
	a.mux.Handle("POST /customers/new", a.requireAuth(ch.Create))
	a.mux.Handle("GET /customers/edit", a.requireAuth(ch.Edit))
	a.mux.Handle("POST /customers/update", a.requireAuth(ch.Update))

	ph := a.routerCfg.ProductHandler
	a.mux.Handle("GET /products/new", a.requireAuth(ph.New))
	a.mux.Handle("POST /products/new", a.requireAuth(ph.Create))

	ih := a.routerCfg.InvoiceHandler
	a.mux.Handle("GET /invoices/new", a.requireAuth(ih.New))
	a.mux.Handle("POST /invoices/preview", a.requireAuth(ih.Preview))
	a.mux.Handle("POST /invoices", a.requireAuth(ih.Create))
	a.mux.Handle("GET /invoices/cancel", a.requireAuth(ih.CancelForm))
	a.mux.Handle("POST /invoices/cancel", a.requireAuth(ih.Cancel))

	pch := a.routerCfg.PurchaseHandler
	a.mux.Handle("GET /purchases/new", a.requireAuth(pch.New))
	a.mux.Handle("POST /purchases/preview", a.requireAuth(pch.Preview))
	a.mux.Handle("POST /purchases", a.requireAuth(pch.Create))

	pay := a.routerCfg.PaymentHandler
	a.mux.Handle("GET /payments/sales", a.requireAuth(pay.SalesForm))
	a.mux.Handle("POST /payments/sales", a.requireAuth(pay.RecordSales))
	a.mux.Handle("GET /payments/purchase", a.requireAuth(pay.PurchaseForm))
	a.mux.Handle("POST /payments/purchase", a.requireAuth(pay.RecordPurchase))
	a.mux.Handle("GET /payments/purchase/balance", a.requireAuth(pay.Balance))

	rh := a.routerCfg.ReportHandler
	a.mux.Handle("GET /reports", a.requireAuth(rh.List))
	a.mux.Handle("GET /reports/pdf", a.requireAuth(rh.PDF))
	a.mux.Handle("GET /balances", a.requireAuth(rh.Balances))

	sh := a.routerCfg.SuggestHandler
	a.mux.Handle("GET /suggest/customers", a.requireAuth(sh.Customers))
	a.mux.Handle("GET /suggest/products", a.requireAuth(sh.Products))
	a.mux.Handle("GET /suggest/invoices", a.requireAuth(sh.Invoices))
}

// requireAuth wraps a handler to require a stored session.
func (a *App) requireAuth(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(h)
}

func (a *App) landingPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

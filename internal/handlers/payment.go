package handlers

import (
	"net/http"
	"strings"

	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/services"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

// PaymentHandler serves the sales (received) and purchase (paid) payment screens.
type PaymentHandler struct {
	base
	svc *services.PaymentService
}

func NewPaymentHandler(api *backend.Client, sessions session.Store, svc *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{base: base{api: api, sessions: sessions}, svc: svc}
}

// page loads the recent list for kind. A failed lookup leaves it empty; the
// form itself is still usable.
func (h *PaymentHandler) page(r *http.Request, kind models.PaymentKind, data map[string]any) map[string]any {
	if _, ok := data["Recent"]; !ok {
		recent, err := h.svc.Recent(r.Context(), current(r), kind)
		if err == nil {
			data["Recent"] = recent
		}
	}
	return data
}

func (h *PaymentHandler) SalesForm(w http.ResponseWriter, r *http.Request) {
	f := forms.SalesPayment{Date: forms.Value(models.Today())}
	recent, err := h.svc.Recent(r.Context(), current(r), models.PaymentSales)
	if err != nil {
		h.fail(w, r, err, "payment_sales.html", map[string]any{"Form": f})
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, recent)
		return
	}
	render(w, r, http.StatusOK, "payment_sales.html", map[string]any{"Form": f, "Recent": recent})
}

// RecordSales: POST /payments/sales
func (h *PaymentHandler) RecordSales(w http.ResponseWriter, r *http.Request) {
	var f forms.SalesPayment
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	recent, err := h.svc.RecordSales(r.Context(), current(r), f)
	if err != nil {
		h.fail(w, r, err, "payment_sales.html", h.page(r, models.PaymentSales, map[string]any{"Form": f}))
		return
	}
	done(w, r, http.StatusCreated, map[string]any{"recent": recent}, "payment_saved", "/payments/sales")
}

// PurchaseForm: GET /payments/purchase[?supplier=] lists the open orders of a supplier.
func (h *PaymentHandler) PurchaseForm(w http.ResponseWriter, r *http.Request) {
	supplier := strings.TrimSpace(r.URL.Query().Get("supplier"))
	f := forms.PurchasePayment{
		SupplierName: forms.Value(supplier),
		PONumber:     forms.Value(r.URL.Query().Get("po")),
		PaymentDate:  forms.Value(models.Today()),
	}
	data := map[string]any{"Form": f}
	if supplier != "" {
		open, err := h.tenant(r).PurchaseBalances(r.Context(), supplier)
		if err != nil {
			h.fail(w, r, err, "payment_purchase.html", h.page(r, models.PaymentPurchase, data))
			return
		}
		data["Open"] = open
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, data["Open"])
		return
	}
	render(w, r, http.StatusOK, "payment_purchase.html", h.page(r, models.PaymentPurchase, data))
}

// RecordPurchase: POST /payments/purchase
func (h *PaymentHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var f forms.PurchasePayment
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	recent, err := h.svc.RecordPurchase(r.Context(), current(r), f)
	if err != nil {
		h.fail(w, r, err, "payment_purchase.html", h.page(r, models.PaymentPurchase, map[string]any{"Form": f}))
		return
	}
	done(w, r, http.StatusCreated, map[string]any{"recent": recent}, "payment_saved", "/payments/purchase")
}

// Balance: GET /payments/purchase/balance?supplier=&po= reports what is still owed on one order.
func (h *PaymentHandler) Balance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	supplier, po := strings.TrimSpace(q.Get("supplier")), strings.TrimSpace(q.Get("po"))
	if supplier == "" || po == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"supplier": "required", "po": "required"})
		return
	}
	bal, open, err := h.svc.OpenBalance(r.Context(), current(r), supplier, po)
	if err != nil {
		r.Header.Set("Accept", "application/json")
		h.fail(w, r, err, "", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"poNumber": po, "balance": bal, "open": open})
}

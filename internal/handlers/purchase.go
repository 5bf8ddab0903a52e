package handlers

import (
	"net/http"

	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/services"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

type PurchaseHandler struct {
	base
	svc *services.PurchaseService
}

func NewPurchaseHandler(api *backend.Client, sessions session.Store, svc *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{base: base{api: api, sessions: sessions}, svc: svc}
}

func purchasePage(f forms.PurchaseEntry) map[string]any {
	return map[string]any{"Form": f, "Totals": f.Totals(), "Rates": gst.Rates}
}

func (h *PurchaseHandler) New(w http.ResponseWriter, r *http.Request) {
	f := forms.PurchaseEntry{
		PODate:  forms.Value(models.Today()),
		TaxRate: forms.Value(gst.Rate5),
		Items:   forms.BlankRows(),
	}
	render(w, r, http.StatusOK, "purchase_form.html", purchasePage(f))
}

// Preview: POST /purchases/preview recomputes the split breakdown.
func (h *PurchaseHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var f forms.PurchaseEntry
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	f.Items = editRows(r, f.Items)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, h.svc.Preview(f))
		return
	}
	render(w, r, http.StatusOK, "purchase_form.html", purchasePage(f))
}

// Create: POST /purchases
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f forms.PurchaseEntry
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	b, err := h.svc.Submit(r.Context(), current(r), f)
	if err != nil {
		h.fail(w, r, err, "purchase_form.html", purchasePage(f))
		return
	}
	done(w, r, http.StatusCreated, b, "purchase_saved", "/purchases/new")
}

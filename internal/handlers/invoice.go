package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/middleware"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/services"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

// InvoiceHandler mirrors the dual-format pattern used elsewhere.
type InvoiceHandler struct {
	base
	svc *services.InvoiceService
}

func NewInvoiceHandler(api *backend.Client, sessions session.Store, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{base: base{api: api, sessions: sessions}, svc: svc}
}

// blankInvoice is the form state right after the number has been issued.
func blankInvoice(number string) forms.Invoice {
	return forms.Invoice{
		InvoiceNumber: forms.Value(number),
		Date:          forms.Value(models.Today()),
		Items:         forms.BlankRows(),
	}
}

func invoicePage(f forms.Invoice) map[string]any {
	return map[string]any{"Form": f, "Draft": f.Draft(f.InvoiceNumber.String())}
}

// New: GET /invoices/new fetches the next number before anything is edited.
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.StartDraft(r.Context(), current(r))
	if err != nil {
		h.fail(w, r, err, "invoice_form.html", invoicePage(blankInvoice("")))
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, d)
		return
	}
	render(w, r, http.StatusOK, "invoice_form.html", invoicePage(blankInvoice(d.InvoiceNumber)))
}

// Preview: POST /invoices/preview recomputes the totals of the posted rows.
func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var f forms.Invoice
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	f.Items = editRows(r, f.Items)
	d := h.svc.Preview(f)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, d)
		return
	}
	render(w, r, http.StatusOK, "invoice_form.html", map[string]any{"Form": f, "Draft": d})
}

// Create: POST /invoices generates the invoice and resets the form with the next number.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f forms.Invoice
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	out, err := h.svc.Submit(r.Context(), current(r), f)
	if err != nil {
		h.fail(w, r, err, "invoice_form.html", invoicePage(f))
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, out)
		return
	}
	middleware.Flash(w, r, "invoice_generated")
	data := invoicePage(blankInvoice(out.NextNumber))
	data["Generated"] = out.Invoice
	render(w, r, http.StatusOK, "invoice_form.html", data)
}

// CancelForm: GET /invoices/cancel?number= shows an invoice before cancelling it.
func (h *InvoiceHandler) CancelForm(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("number"))
	data := map[string]any{"Number": number}
	if number == "" {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"number": "required"})
			return
		}
		render(w, r, http.StatusOK, "invoice_cancel.html", data)
		return
	}
	entry, err := h.svc.Lookup(r.Context(), current(r), number)
	if err != nil {
		h.fail(w, r, err, "invoice_cancel.html", data)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, entry)
		return
	}
	data["Entry"] = entry
	render(w, r, http.StatusOK, "invoice_cancel.html", data)
}

// Cancel: POST /invoices/cancel
func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var f forms.Cancel
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	data := map[string]any{"Number": f.InvoiceNumber.String()}
	entry, err := h.svc.Cancel(r.Context(), current(r), f)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCancelled) {
			data["Entry"] = entry
		}
		h.fail(w, r, err, "invoice_cancel.html", data)
		return
	}
	done(w, r, http.StatusOK, entry, "invoice_cancelled", "/invoices/cancel?number="+f.InvoiceNumber.String())
}

// editRows applies the "addItem" and "removeItem" buttons of an items table.
func editRows(r *http.Request, rows []forms.Item) []forms.Item {
	add := r.FormValue("addItem") != ""
	raw := r.FormValue("removeItem")
	if !add && raw == "" {
		return rows
	}
	return forms.EditRows(rows, func(items gst.Items) gst.Items {
		if i, err := strconv.Atoi(raw); err == nil {
			items = items.Remove(i)
		}
		if add {
			items = items.Add()
		}
		return items
	})
}

package handlers

import (
	"net/http"

	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

type ProductHandler struct {
	base
}

func NewProductHandler(api *backend.Client, sessions session.Store) *ProductHandler {
	return &ProductHandler{base{api: api, sessions: sessions}}
}

func (h *ProductHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "product_form.html", map[string]any{"Form": forms.Product{}})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f forms.Product
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	data := map[string]any{"Form": f}
	if v := f.Validate(); !v.Empty() {
		invalid(w, r, v, "product_form.html", data)
		return
	}
	p := f.Model()
	if err := h.tenant(r).AddProduct(r.Context(), p); err != nil {
		h.fail(w, r, err, "product_form.html", data)
		return
	}
	done(w, r, http.StatusCreated, p, "product_saved", "/products/new")
}

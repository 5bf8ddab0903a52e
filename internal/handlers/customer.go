package handlers

import (
	"net/http"
	"strings"

	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

type CustomerHandler struct {
	base
}

func NewCustomerHandler(api *backend.Client, sessions session.Store) *CustomerHandler {
	return &CustomerHandler{base{api: api, sessions: sessions}}
}

func (h *CustomerHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "customer_form.html", map[string]any{"Form": forms.Customer{}, "Action": "/customers/new"})
}

// Create: POST /customers/new, JSON or form
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f forms.Customer
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	data := map[string]any{"Form": f, "Action": "/customers/new"}
	if v := f.Validate(); !v.Empty() {
		invalid(w, r, v, "customer_form.html", data)
		return
	}
	c := f.Model()
	if err := h.tenant(r).AddCustomer(r.Context(), c); err != nil {
		h.fail(w, r, err, "customer_form.html", data)
		return
	}
	done(w, r, http.StatusCreated, c, "customer_saved", "/customers/new")
}

// Edit: GET /customers/edit?name= loads a customer for update. Without a name
// it shows the lookup box only.
func (h *CustomerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	data := map[string]any{"Form": forms.Customer{}, "Action": "/customers/update", "Editing": true, "Lookup": name}
	if name == "" {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
			return
		}
		render(w, r, http.StatusOK, "customer_form.html", data)
		return
	}
	c, err := h.tenant(r).GetCustomer(r.Context(), name)
	if err != nil {
		h.fail(w, r, err, "customer_form.html", data)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, c)
		return
	}
	data["Form"] = forms.CustomerFromModel(c)
	data["Loaded"] = true
	render(w, r, http.StatusOK, "customer_form.html", data)
}

// Update: POST /customers/update
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var f forms.Customer
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	data := map[string]any{"Form": f, "Action": "/customers/update", "Editing": true, "Loaded": true}
	if v := f.Validate(); !v.Empty() {
		invalid(w, r, v, "customer_form.html", data)
		return
	}
	c := f.Model()
	if err := h.tenant(r).UpdateCustomer(r.Context(), c); err != nil {
		h.fail(w, r, err, "customer_form.html", data)
		return
	}
	done(w, r, http.StatusOK, c, "customer_updated", "/customers/edit")
}

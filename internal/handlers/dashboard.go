package handlers

import (
	"net/http"

	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

type DashboardHandler struct {
	base
}

func NewDashboardHandler(api *backend.Client, sessions session.Store) *DashboardHandler {
	return &DashboardHandler{base{api: api, sessions: sessions}}
}

// Show: GET /dashboard
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	sum, err := h.tenant(r).DashboardSummary(r.Context())
	if err != nil {
		h.fail(w, r, err, "dashboard.html", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, sum)
		return
	}
	render(w, r, http.StatusOK, "dashboard.html", map[string]any{"Summary": sum})
}

// ResetForm: GET /financial-year/reset
func (h *DashboardHandler) ResetForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "reset_year.html", map[string]any{"Form": forms.ResetYear{}})
}

// ResetYear: POST /financial-year/reset closes the year on the billing API.
func (h *DashboardHandler) ResetYear(w http.ResponseWriter, r *http.Request) {
	var f forms.ResetYear
	if err := forms.Decode(r, &f); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	data := map[string]any{"Form": f}
	if v := f.Validate(); !v.Empty() {
		invalid(w, r, v, "reset_year.html", data)
		return
	}
	if err := h.tenant(r).ResetFinancialYear(r.Context(), f.FinancialYear.String()); err != nil {
		h.fail(w, r, err, "reset_year.html", data)
		return
	}
	done(w, r, http.StatusOK, map[string]string{"financialYear": f.FinancialYear.String()}, "year_reset", "/dashboard")
}

// Health: GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

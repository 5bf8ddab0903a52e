package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/suggest"
)

// SuggestHandler answers the debounced lookups of the browser forms. Queries
// shorter than the minimum length get an empty list without a remote call.
type SuggestHandler struct {
	base
	cfg suggest.Config
}

func NewSuggestHandler(api *backend.Client, sessions session.Store, cfg suggest.Config) *SuggestHandler {
	return &SuggestHandler{base: base{api: api, sessions: sessions}, cfg: cfg}
}

type suggestResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
}

func (h *SuggestHandler) serve(w http.ResponseWriter, r *http.Request, search func(*backend.Tenant, context.Context, string) ([]string, error)) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	out := suggestResponse{Query: q, Results: []string{}}
	if !h.cfg.Eligible(q) {
		httpx.JSON(w, http.StatusOK, out)
		return
	}
	names, err := search(h.tenant(r), r.Context(), q)
	if err != nil {
		// lookups are always answered as JSON, whatever the Accept header says
		r.Header.Set("Accept", "application/json")
		h.fail(w, r, err, "", nil)
		return
	}
	if limit := h.cfg.Limit; limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	if names != nil {
		out.Results = names
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *SuggestHandler) Customers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, (*backend.Tenant).SearchCustomers)
}

func (h *SuggestHandler) Products(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, (*backend.Tenant).SearchProducts)
}

func (h *SuggestHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, (*backend.Tenant).SearchInvoices)
}

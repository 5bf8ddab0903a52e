package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/RajevHacker/codespark-invoice-wizard/httpx"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/report"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/services"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

type ReportHandler struct {
	base
	svc *services.ReportService
}

func NewReportHandler(api *backend.Client, sessions session.Store, svc *services.ReportService) *ReportHandler {
	return &ReportHandler{base: base{api: api, sessions: sessions}, svc: svc}
}

// List: GET /reports?reportType=sales|purchase&startDate=&endDate=&customerName=
// Without a report type only the filter form is shown.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	f := forms.ReportFromQuery(r.URL.Query())
	data := map[string]any{"Form": f}
	if f.Kind.String() == "" && !httpx.WantsJSON(r) {
		render(w, r, http.StatusOK, "reports.html", data)
		return
	}
	l, err := h.svc.List(r.Context(), current(r), f)
	if err != nil {
		h.fail(w, r, err, "reports.html", data)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, l)
		return
	}
	sess := current(r)
	data["Listing"] = l
	data["Title"] = report.Title(sess.PartnerName, l.Filter.Kind)
	data["Subtitle"] = report.Subtitle(l.Count(), l.Filter)
	render(w, r, http.StatusOK, "reports.html", data)
}

// PDF: GET /reports/pdf with the same filter as List.
func (h *ReportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	f := forms.ReportFromQuery(r.URL.Query())
	l, err := h.svc.List(r.Context(), current(r), f)
	if err != nil {
		h.fail(w, r, err, "reports.html", map[string]any{"Form": f})
		return
	}
	var buf bytes.Buffer
	if err := h.svc.WritePDF(&buf, current(r), l); err != nil {
		log.Printf("report pdf: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(l.Filter.Kind)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Balances: GET /balances?kind=sales|purchase&name= lists what is still owed.
func (h *ReportHandler) Balances(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := models.ReportKind(strings.TrimSpace(q.Get("kind")))
	if !kind.Valid() {
		kind = models.ReportSales
	}
	name := strings.TrimSpace(q.Get("name"))
	data := map[string]any{"Kind": string(kind), "Name": name}
	var rows any
	var err error
	if kind == models.ReportPurchase {
		rows, err = h.tenant(r).PurchaseBalances(r.Context(), name)
	} else {
		rows, err = h.tenant(r).SalesBalances(r.Context(), name)
	}
	if err != nil {
		h.fail(w, r, err, "balances.html", data)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, rows)
		return
	}
	data["Rows"] = rows
	render(w, r, http.StatusOK, "balances.html", data)
}

// Package report renders sales and purchase listings as PDF documents.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
)

// Totals sums the numeric columns of a listing.
type Totals struct {
	Qty            decimal.Decimal `json:"qty"`
	TotalBeforeGST decimal.Decimal `json:"totalBeforeGST"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

func (t *Totals) add(qty, before, cgst, sgst, igst, grand decimal.Decimal) {
	t.Qty = t.Qty.Add(qty)
	t.TotalBeforeGST = t.TotalBeforeGST.Add(before)
	t.CGST = t.CGST.Add(cgst)
	t.SGST = t.SGST.Add(sgst)
	t.IGST = t.IGST.Add(igst)
	t.GrandTotal = t.GrandTotal.Add(grand)
}

func (t Totals) cells() []string {
	return []string{
		t.Qty.String(),
		gst.FormatAmountIN(t.TotalBeforeGST),
		gst.FormatAmountIN(t.CGST),
		gst.FormatAmountIN(t.SGST),
		gst.FormatAmountIN(t.IGST),
		gst.FormatAmountIN(t.GrandTotal),
	}
}

// SalesTotals sums a sales listing.
func SalesTotals(rows []models.BillEntry) Totals {
	var t Totals
	for _, r := range rows {
		t.add(r.Qty, r.TotalBeforeGST, r.CGST, r.SGST, r.IGST, r.GrandTotal)
	}
	return t
}

// PurchaseTotals sums a purchase listing.
func PurchaseTotals(rows []models.PurchaseRecord) Totals {
	var t Totals
	for _, r := range rows {
		t.add(r.Qty, r.TotalBeforeGST, r.CGST, r.SGST, r.IGST, r.GrandTotal)
	}
	return t
}

// Title is the heading printed on the first page.
func Title(partner string, kind models.ReportKind) string {
	if kind == models.ReportPurchase {
		return partner + " Purchase Report"
	}
	return partner + " Sales Report"
}

// Subtitle describes the record count and the filter that produced it.
func Subtitle(count int, f models.ReportFilter) string {
	start, end := "Start", "End"
	if strings.TrimSpace(f.StartDate) != "" {
		start = models.DisplayDate(f.StartDate)
	}
	if strings.TrimSpace(f.EndDate) != "" {
		end = models.DisplayDate(f.EndDate)
	}
	s := fmt.Sprintf("%d records found for %s to %s", count, start, end)
	if name := strings.TrimSpace(f.CustomerName); name != "" {
		label := "Customer"
		if f.Kind == models.ReportPurchase {
			label = "Supplier"
		}
		s += " | " + label + ": " + name
	}
	return s
}

// Filename is the suggested download name, e.g. sales-report.pdf.
func Filename(kind models.ReportKind) string {
	return string(kind) + "-report.pdf"
}

var (
	salesHead    = []string{"Date", "Customer", "GST Number", "Invoice Number", "Qty", "Total before GST", "CGST", "SGST", "IGST", "Grand Total"}
	purchaseHead = []string{"PO Date", "Supplier", "GST Number", "PO Number", "Qty", "Total before GST", "CGST", "SGST", "IGST", "Grand Total"}
	widths       = []float64{22, 42, 34, 26, 16, 30, 24, 24, 24, 35}
)

// first four columns are text, the rest are right aligned numbers
const firstNumeric = 4

// Sales writes the sales report PDF to w.
func Sales(w io.Writer, partner string, f models.ReportFilter, rows []models.BillEntry) error {
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		body = append(body, append([]string{
			models.DisplayDate(r.Date), r.CustomerName, r.GSTNumber, r.InvoiceNumber,
		}, amounts(r.Qty, r.TotalBeforeGST, r.CGST, r.SGST, r.IGST, r.GrandTotal)...))
	}
	f.Kind = models.ReportSales
	return render(w, table{
		title:    Title(partner, models.ReportSales),
		subtitle: Subtitle(len(rows), f),
		head:     salesHead,
		body:     body,
		foot:     append([]string{"", "", "", "Grand Total"}, SalesTotals(rows).cells()...),
	})
}

// Purchase writes the purchase report PDF to w.
func Purchase(w io.Writer, partner string, f models.ReportFilter, rows []models.PurchaseRecord) error {
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		body = append(body, append([]string{
			models.DisplayDate(r.PODate), r.SupplierName, r.GSTNumber, r.PONumber,
		}, amounts(r.Qty, r.TotalBeforeGST, r.CGST, r.SGST, r.IGST, r.GrandTotal)...))
	}
	f.Kind = models.ReportPurchase
	return render(w, table{
		title:    Title(partner, models.ReportPurchase),
		subtitle: Subtitle(len(rows), f),
		head:     purchaseHead,
		body:     body,
		foot:     append([]string{"", "", "", "Grand Total"}, PurchaseTotals(rows).cells()...),
	})
}

func amounts(qty decimal.Decimal, money ...decimal.Decimal) []string {
	out := []string{qty.String()}
	for _, m := range money {
		out = append(out, gst.FormatAmountIN(m))
	}
	return out
}

type table struct {
	title, subtitle string
	head            []string
	body            [][]string
	foot            []string
}

const (
	margin    = 10.0
	rowHeight = 7.0
)

func render(w io.Writer, t table) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin+5)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin - 2)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	drawHead := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range t.head {
			pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}
	drawRow := func(cells []string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 8)
		for i, c := range cells {
			align := "L"
			if i >= firstNumeric {
				align = "R"
			}
			pdf.CellFormat(widths[i], rowHeight, tr(c), "1", 0, align, bold, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(t.title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 8, tr(t.subtitle), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	drawHead()

	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - margin - 5 - rowHeight
	for _, row := range t.body {
		if pdf.GetY() > limit {
			pdf.AddPage()
			drawHead()
		}
		drawRow(row, false)
	}
	if pdf.GetY() > limit {
		pdf.AddPage()
		drawHead()
	}
	pdf.SetFillColor(236, 240, 241)
	drawRow(t.foot, true)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}

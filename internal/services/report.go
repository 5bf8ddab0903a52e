package services

import (
	"context"
	"io"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/report"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

type ReportService struct {
	api *backend.Client
}

func NewReportService(api *backend.Client) *ReportService {
	return &ReportService{api: api}
}

// Listing is one fetched sales or purchase report.
type Listing struct {
	Filter    models.ReportFilter     `json:"filter"`
	Sales     []models.BillEntry      `json:"sales,omitempty"`
	Purchases []models.PurchaseRecord `json:"purchases,omitempty"`
	Totals    report.Totals           `json:"totals"`
}

// Count is the number of rows of the selected side.
func (l Listing) Count() int {
	if l.Filter.Kind == models.ReportPurchase {
		return len(l.Purchases)
	}
	return len(l.Sales)
}

// List validates the filter and fetches the matching rows.
func (s *ReportService) List(ctx context.Context, sess session.Session, f forms.Report) (Listing, error) {
	if err := invalid(f.Validate()); err != nil {
		return Listing{}, err
	}
	filter := f.Filter()
	api := s.api.For(sess)
	out := Listing{Filter: filter}
	if filter.Kind == models.ReportPurchase {
		rows, err := api.PurchaseList(ctx, filter)
		if err != nil {
			return Listing{}, err
		}
		out.Purchases = rows
		out.Totals = report.PurchaseTotals(rows)
		return out, nil
	}
	rows, err := api.SalesList(ctx, filter)
	if err != nil {
		return Listing{}, err
	}
	out.Sales = rows
	out.Totals = report.SalesTotals(rows)
	return out, nil
}

// WritePDF renders l for the partner of sess.
func (s *ReportService) WritePDF(w io.Writer, sess session.Session, l Listing) error {
	if l.Filter.Kind == models.ReportPurchase {
		return report.Purchase(w, sess.PartnerName, l.Filter, l.Purchases)
	}
	return report.Sales(w, sess.PartnerName, l.Filter, l.Sales)
}

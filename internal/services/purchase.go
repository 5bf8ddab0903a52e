package services

import (
	"context"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

type PurchaseService struct {
	api *backend.Client
}

func NewPurchaseService(api *backend.Client) *PurchaseService {
	return &PurchaseService{api: api}
}

// Preview returns the split GST breakdown the entry would be saved with.
func (s *PurchaseService) Preview(f forms.PurchaseEntry) gst.Breakdown {
	return f.Totals()
}

// Submit validates and records a purchase entry.
func (s *PurchaseService) Submit(ctx context.Context, sess session.Session, f forms.PurchaseEntry) (gst.Breakdown, error) {
	if err := invalid(f.Validate()); err != nil {
		return gst.Breakdown{}, err
	}
	m := f.Model()
	if err := s.api.For(sess).AddPurchaseEntry(ctx, m); err != nil {
		return gst.Breakdown{}, err
	}
	return m.Breakdown, nil
}

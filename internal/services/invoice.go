package services

import (
	"context"
	"log"
	"strings"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/forms"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

type InvoiceService struct {
	api *backend.Client
}

func NewInvoiceService(api *backend.Client) *InvoiceService {
	return &InvoiceService{api: api}
}

// StartDraft returns an empty draft carrying the next server issued number,
// dated today, with one blank line item.
func (s *InvoiceService) StartDraft(ctx context.Context, sess session.Session) (models.InvoiceDraft, error) {
	number, err := s.api.For(sess).NextInvoiceNumber(ctx)
	if err != nil {
		return models.InvoiceDraft{}, err
	}
	return models.InvoiceDraft{
		InvoiceNumber: number,
		Date:          models.Today(),
		Items:         gst.NewItems(),
	}, nil
}

// Preview computes the flat 5% totals of a form without sending anything.
func (s *InvoiceService) Preview(f forms.Invoice) models.InvoiceDraft {
	return f.Draft(f.InvoiceNumber.String())
}

// Submitted is what the invoice screen shows after a successful generation.
type Submitted struct {
	Invoice    models.GeneratedInvoice `json:"invoice"`
	Draft      models.InvoiceDraft     `json:"draft"`
	NextNumber string                  `json:"nextInvoiceNumber"`
}

// Submit validates f, generates the invoice and fetches the number for the next one.
// A failure to fetch the next number does not undo a generated invoice.
func (s *InvoiceService) Submit(ctx context.Context, sess session.Session, f forms.Invoice) (Submitted, error) {
	if err := invalid(f.Validate()); err != nil {
		return Submitted{}, err
	}
	api := s.api.For(sess)
	number := f.InvoiceNumber.String()
	if number == "" {
		n, err := api.NextInvoiceNumber(ctx)
		if err != nil {
			return Submitted{}, err
		}
		number = n
	}
	draft := f.Draft(number)
	if draft.Date == "" {
		draft.Date = models.Today()
	}
	gen, err := api.GenerateInvoice(ctx, draft)
	if err != nil {
		return Submitted{}, err
	}
	if strings.TrimSpace(gen.InvoiceNumber) == "" {
		gen.InvoiceNumber = number
	}
	out := Submitted{Invoice: gen, Draft: draft}
	if next, err := api.NextInvoiceNumber(ctx); err != nil {
		log.Printf("invoice %s generated, next number unavailable: %v", gen.InvoiceNumber, err)
	} else {
		out.NextNumber = next
	}
	return out, nil
}

// Lookup fetches an invoice so the user can confirm a cancellation.
func (s *InvoiceService) Lookup(ctx context.Context, sess session.Session, number string) (models.BillEntry, error) {
	return s.api.For(sess).GetInvoice(ctx, strings.TrimSpace(number))
}

// Cancel cancels an active invoice. Cancelled invoices cannot be processed further.
func (s *InvoiceService) Cancel(ctx context.Context, sess session.Session, f forms.Cancel) (models.BillEntry, error) {
	if err := invalid(f.Validate()); err != nil {
		return models.BillEntry{}, err
	}
	api := s.api.For(sess)
	entry, err := api.GetInvoice(ctx, f.InvoiceNumber.String())
	if err != nil {
		return models.BillEntry{}, err
	}
	if entry.Cancelled() {
		return entry, ErrAlreadyCancelled
	}
	if err := api.CancelInvoice(ctx, f.InvoiceNumber.String()); err != nil {
		return entry, err
	}
	entry.Status = models.InvoiceStatusCancelled
	return entry, nil
}

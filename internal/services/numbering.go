package services

import (
	"context"
	"fmt"

	"github.com/diewo77/freelance-invoices/internal/store"
	"github.com/diewo77/freelance-invoices/validation"
)

// NumberingService computes the next sequential invoice number for a
// freelancer by counting existing invoices.
//
// This is read-then-format, not an atomically reserved counter: two
// concurrent creations for the same freelancer can observe the same count
// and collide on the owner-scoped unique number index, which the store then surfaces as
// a constraint violation. Numbers are only guaranteed unique under
// sequential use.
type NumberingService struct {
	store store.Store
}

func NewNumberingService(st store.Store) *NumberingService {
	return &NumberingService{store: st}
}

// NextInvoiceNumber returns "INV-" followed by count+1 zero-padded to at
// least three digits, e.g. INV-001 for a fresh freelancer. Stores that keep
// their own persisted counter (the file store) hand out the counter value
// instead. Storage read errors surface verbatim.
func (s *NumberingService) NextInvoiceNumber(ctx context.Context, freelancerID string) (string, error) {
	if !validation.IsUUID(freelancerID) {
		return "", validationErrf("Freelancer ID must be a valid UUID")
	}
	if seq, ok := s.store.(store.Sequencer); ok {
		return seq.NextInvoiceNumber(ctx)
	}
	count, err := s.store.CountInvoices(ctx, freelancerID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%03d", count+1), nil
}

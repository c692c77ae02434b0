package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/money"
	"github.com/diewo77/freelance-invoices/internal/store"
	"github.com/diewo77/freelance-invoices/validation"
)

// InvoiceService encapsulates invoice-related business logic: the creation
// protocol, status transitions, and owner-scoped reads.
type InvoiceService struct {
	store     store.Store
	numbering *NumberingService
}

func NewInvoiceService(st store.Store, numbering *NumberingService) *InvoiceService {
	return &InvoiceService{store: st, numbering: numbering}
}

// InvoiceDraft carries the invoice-level fields for creation. Number is
// optional; when absent the numbering service assigns the next sequential
// number. Totals are always computed server-side from the items and tax rate.
type InvoiceDraft struct {
	FreelancerID string               `json:"freelancer_id"`
	ClientID     string               `json:"client_id"`
	Number       string               `json:"invoice_number"`
	IssueDate    string               `json:"issue_date"`
	DueDate      string               `json:"due_date"`
	TaxRate      decimal.Decimal      `json:"tax_rate"`
	Status       models.InvoiceStatus `json:"status"`
	Notes        string               `json:"notes"`
}

// ItemInput carries one line item for creation.
type ItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// InvoiceUpdate carries a partial field set; nil fields are left unchanged.
// Changing the tax rate recomputes tax amount and total from the stored
// items. Status changes go through UpdateStatus.
type InvoiceUpdate struct {
	IssueDate *string          `json:"issue_date"`
	DueDate   *string          `json:"due_date"`
	TaxRate   *decimal.Decimal `json:"tax_rate"`
	Notes     *string          `json:"notes"`
}

// validateDraft checks every structural constraint before any storage call.
// Item errors are 1-indexed so messages match what the user submitted.
func validateDraft(draft *InvoiceDraft, items []ItemInput) error {
	if !validation.IsUUID(draft.FreelancerID) {
		return validationErrf("Freelancer ID must be a valid UUID")
	}
	if !validation.IsUUID(draft.ClientID) {
		return validationErrf("Client ID must be a valid UUID")
	}
	if validation.TrimEmpty(draft.Number) {
		return validationErrf("Invoice number is required")
	}
	if !validation.IsDate(draft.IssueDate) {
		return validationErrf("Issue date must be a valid date in YYYY-MM-DD format")
	}
	if !validation.IsDate(draft.DueDate) {
		return validationErrf("Due date must be a valid date in YYYY-MM-DD format")
	}
	if draft.TaxRate.IsNegative() {
		return validationErrf("Tax rate must not be negative")
	}
	if draft.Status != "" && !models.ValidStatus(draft.Status) {
		return validationErrf("Status must be one of draft, sent, paid, overdue")
	}
	if len(items) == 0 {
		return validationErrf("At least one item is required")
	}
	for i, it := range items {
		n := i + 1
		if validation.TrimEmpty(it.Description) {
			return validationErrf("Item %d: Description is required", n)
		}
		if !it.Quantity.IsPositive() {
			return validationErrf("Item %d: Quantity must be greater than 0", n)
		}
		if it.Rate.IsNegative() {
			return validationErrf("Item %d: Rate must not be negative", n)
		}
	}
	return nil
}

// Create runs the invoice creation protocol: resolve the number, validate
// structure, verify relationships, write the invoice row, then write the
// item rows. If the item write fails the just-created invoice row is deleted
// again (best effort; a rollback failure is logged and never masks the item
// write error), so no invoice is ever left persisted without at least one
// item.
func (s *InvoiceService) Create(ctx context.Context, draft InvoiceDraft, items []ItemInput) (*models.Invoice, error) {
	if draft.Number == "" {
		number, err := s.numbering.NextInvoiceNumber(ctx, draft.FreelancerID)
		if err != nil {
			return nil, err
		}
		draft.Number = number
	}

	if err := validateDraft(&draft, items); err != nil {
		return nil, err
	}

	if _, err := s.store.GetFreelancer(ctx, draft.FreelancerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "Freelancer"}
		}
		return nil, err
	}
	client, err := s.store.GetClient(ctx, draft.ClientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "Client"}
		}
		return nil, err
	}
	if !owns(draft.FreelancerID, client) {
		return nil, &RelationshipError{Message: "Client does not belong to the specified freelancer"}
	}

	amounts := make([]decimal.Decimal, len(items))
	for i, it := range items {
		amounts[i] = money.ItemAmount(it.Quantity, it.Rate)
	}
	subtotal := money.Subtotal(amounts)
	taxAmount := money.TaxAmount(subtotal, draft.TaxRate)
	total := money.Total(subtotal, taxAmount)

	status := draft.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}
	issueDate, _ := validation.ParseDate(draft.IssueDate)
	dueDate, _ := validation.ParseDate(draft.DueDate)

	inv := &models.Invoice{
		FreelancerID: draft.FreelancerID,
		ClientID:     draft.ClientID,
		Number:       strings.TrimSpace(draft.Number),
		IssueDate:    issueDate,
		DueDate:      dueDate,
		Subtotal:     subtotal,
		TaxRate:      draft.TaxRate.Round(2),
		TaxAmount:    taxAmount,
		Total:        total,
		Status:       status,
		Notes:        draft.Notes,
	}
	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, &ConstraintError{
				Message: fmt.Sprintf("Invoice number %s is already in use", inv.Number),
				Err:     err,
			}
		}
		return nil, err
	}

	rows := make([]models.InvoiceItem, len(items))
	for i, it := range items {
		rows[i] = models.InvoiceItem{
			InvoiceID:   inv.ID,
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			Rate:        it.Rate.Round(2),
			Amount:      amounts[i],
			Position:    i,
		}
	}
	if err := s.store.CreateInvoiceItems(ctx, rows); err != nil {
		// Compensating delete: undo the invoice row so no partial invoice
		// survives. Its own failure must not mask the item write error.
		if delErr := s.store.DeleteInvoice(ctx, inv.ID); delErr != nil && !errors.Is(delErr, store.ErrNotFound) {
			slog.Error("rollback of invoice after item write failure also failed",
				"invoice_id", inv.ID, "number", inv.Number, "error", delErr)
		}
		return nil, err
	}

	created, err := s.store.GetInvoice(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns an invoice with its items, scoped to its owner.
func (s *InvoiceService) Get(ctx context.Context, freelancerID, id string) (*models.Invoice, error) {
	if !validation.IsUUID(id) {
		return nil, validationErrf("Invoice ID must be a valid UUID")
	}
	inv, err := s.store.GetInvoice(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "Invoice"}
	}
	if err != nil {
		return nil, err
	}
	if !owns(freelancerID, inv) {
		return nil, &NotFoundError{Entity: "Invoice"}
	}
	return inv, nil
}

// List returns the freelancer's invoices newest first, plus the total count
// for pagination.
func (s *InvoiceService) List(ctx context.Context, freelancerID string, limit, offset int) ([]models.Invoice, int64, error) {
	if !validation.IsUUID(freelancerID) {
		return nil, 0, validationErrf("Freelancer ID must be a valid UUID")
	}
	return s.store.ListInvoices(ctx, freelancerID, limit, offset)
}

// UpdateStatus sets the invoice status. The status must be one of the four
// recognized values; anything else fails before any storage call.
func (s *InvoiceService) UpdateStatus(ctx context.Context, freelancerID, id string, status models.InvoiceStatus) (*models.Invoice, error) {
	if !models.ValidStatus(status) {
		return nil, validationErrf("Status must be one of draft, sent, paid, overdue")
	}
	inv, err := s.Get(ctx, freelancerID, id)
	if err != nil {
		return nil, err
	}
	inv.Status = status
	if err := s.store.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Update applies a partial update to invoice-level fields.
func (s *InvoiceService) Update(ctx context.Context, freelancerID, id string, in InvoiceUpdate) (*models.Invoice, error) {
	inv, err := s.Get(ctx, freelancerID, id)
	if err != nil {
		return nil, err
	}
	if in.IssueDate != nil {
		if !validation.IsDate(*in.IssueDate) {
			return nil, validationErrf("Issue date must be a valid date in YYYY-MM-DD format")
		}
		inv.IssueDate, _ = validation.ParseDate(*in.IssueDate)
	}
	if in.DueDate != nil {
		if !validation.IsDate(*in.DueDate) {
			return nil, validationErrf("Due date must be a valid date in YYYY-MM-DD format")
		}
		inv.DueDate, _ = validation.ParseDate(*in.DueDate)
	}
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, validationErrf("Tax rate must not be negative")
		}
		inv.TaxRate = in.TaxRate.Round(2)
		amounts := make([]decimal.Decimal, len(inv.Items))
		for i, it := range inv.Items {
			amounts[i] = it.Amount
		}
		inv.Subtotal = money.Subtotal(amounts)
		inv.TaxAmount = money.TaxAmount(inv.Subtotal, inv.TaxRate)
		inv.Total = money.Total(inv.Subtotal, inv.TaxAmount)
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if err := s.store.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete removes an invoice and, with it, its items.
func (s *InvoiceService) Delete(ctx context.Context, freelancerID, id string) error {
	if _, err := s.Get(ctx, freelancerID, id); err != nil {
		return err
	}
	err := s.store.DeleteInvoice(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: "Invoice"}
	}
	return err
}

// Revenue sums the totals of the freelancer's paid invoices.
func (s *InvoiceService) Revenue(ctx context.Context, freelancerID string) (decimal.Decimal, error) {
	if !validation.IsUUID(freelancerID) {
		return decimal.Zero, validationErrf("Freelancer ID must be a valid UUID")
	}
	invoices, _, err := s.store.ListInvoices(ctx, freelancerID, 0, 0)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.IsPaid() {
			total = total.Add(inv.Total)
		}
	}
	return total.Round(2), nil
}

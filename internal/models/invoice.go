package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus represents the status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// ValidStatus reports whether s is one of the four recognized statuses.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Invoice represents a billing document with line items, tax, and status.
type Invoice struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// FreelancerID is the owner of this invoice.
	FreelancerID string `gorm:"type:uuid;uniqueIndex:idx_invoices_owner_number;not null" json:"freelancer_id"`

	// ClientID must reference a client owned by the same freelancer.
	ClientID string  `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Number is unique per freelancer, not system-wide, so every
	// freelancer's sequence starts at INV-001.
	Number    string    `gorm:"size:50;uniqueIndex:idx_invoices_owner_number;not null" json:"invoice_number"`
	IssueDate time.Time `gorm:"type:date;not null" json:"issue_date"`
	DueDate   time.Time `gorm:"type:date;not null" json:"due_date"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(7,2);not null" json:"tax_rate"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"tax_amount"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`

	Status InvoiceStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	Notes  string        `gorm:"type:text" json:"notes,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// GetOwnerID implements the Ownable interface for authorization scoping.
func (i *Invoice) GetOwnerID() string {
	return i.FreelancerID
}

// IsDraft returns true if the invoice is in draft status.
func (i *Invoice) IsDraft() bool {
	return i.Status == InvoiceStatusDraft
}

// IsPaid returns true if the invoice has been paid.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOverdue returns true if the invoice is unpaid and its due date has
// passed relative to now.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status == InvoiceStatusPaid {
		return false
	}
	return i.DueDate.Before(now.Truncate(24 * time.Hour))
}

// InvoiceItem represents one billable line within an invoice.
type InvoiceItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvoiceID string `gorm:"type:uuid;index;not null" json:"invoice_id"`

	Description string          `gorm:"size:500;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`

	// Position preserves the order items were submitted in.
	Position int `gorm:"not null;default:0" json:"position"`
}

func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return nil
}

// Package store provides abstractions for persistent data storage.
package store

import (
	"context"
	"errors"
	"io"

	"github.com/diewo77/freelance-invoices/internal/models"
)

var (
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness or
	// foreign-key constraint.
	ErrConflict = errors.New("constraint violation")
)

// Store defines the persistence operations required by the service layer.
// This abstraction allows swapping backends (sqlite, postgres, local JSON
// file) without changing the services.
type Store interface {
	// Users (authenticated identities)
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Freelancer profile
	CreateFreelancer(ctx context.Context, f *models.Freelancer) error
	GetFreelancer(ctx context.Context, id string) (*models.Freelancer, error)
	GetFreelancerByUserID(ctx context.Context, userID string) (*models.Freelancer, error)
	UpdateFreelancer(ctx context.Context, f *models.Freelancer) error

	// Clients
	CreateClient(ctx context.Context, c *models.Client) error
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context, freelancerID string) ([]models.Client, error)
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id string) error

	// Invoices. CreateInvoice persists the invoice row only; items are
	// written separately by CreateInvoiceItems so the creation protocol can
	// compensate when the item write fails.
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	CreateInvoiceItems(ctx context.Context, items []models.InvoiceItem) error
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)
	ListInvoices(ctx context.Context, freelancerID string, limit, offset int) ([]models.Invoice, int64, error)
	UpdateInvoice(ctx context.Context, inv *models.Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
	CountInvoices(ctx context.Context, freelancerID string) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}

// Sequencer is implemented by stores that maintain a persisted invoice
// counter instead of deriving numbers from a row count (the file store).
// NextInvoiceNumber is a pure read; the counter advances when an invoice is
// actually created.
type Sequencer interface {
	NextInvoiceNumber(ctx context.Context) (string, error)
}

// Snapshotter is implemented by stores that support whole-dataset export and
// import (the file store).
type Snapshotter interface {
	Export(w io.Writer) error
	Import(r io.Reader) error
}

// Package state holds the authoritative in-process snapshot of the signed-in
// freelancer's profile, client list, and invoice list. All mutation funnels
// through named operations; the snapshot only changes when the underlying
// service call succeeds. Loading and error flags are tracked independently
// per entity group so one failing area does not block the others.
package state

import (
	"context"
	"sync"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/services"
)

// Group identifies one independently tracked slice of the snapshot.
type Group string

const (
	GroupProfile  Group = "profile"
	GroupClients  Group = "clients"
	GroupInvoices Group = "invoices"
)

type AppState struct {
	freelancers *services.FreelancerService
	clients     *services.ClientService
	invoices    *services.InvoiceService

	mu          sync.RWMutex
	profile     *models.Freelancer
	clientList  []models.Client
	invoiceList []models.Invoice
	loading     map[Group]bool
	errs        map[Group]string
}

func New(fs *services.FreelancerService, cs *services.ClientService, is *services.InvoiceService) *AppState {
	return &AppState{
		freelancers: fs,
		clients:     cs,
		invoices:    is,
		loading:     make(map[Group]bool),
		errs:        make(map[Group]string),
	}
}

func (a *AppState) begin(g Group) {
	a.mu.Lock()
	a.loading[g] = true
	a.errs[g] = ""
	a.mu.Unlock()
}

func (a *AppState) finish(g Group, err error, apply func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading[g] = false
	if err != nil {
		a.errs[g] = err.Error()
		return
	}
	apply()
}

// LoadProfile fetches the profile into the snapshot.
func (a *AppState) LoadProfile(ctx context.Context, userID string) error {
	a.begin(GroupProfile)
	profile, err := a.freelancers.Profile(ctx, userID)
	a.finish(GroupProfile, err, func() { a.profile = profile })
	return err
}

// SaveProfile creates or updates the profile and patches the snapshot.
func (a *AppState) SaveProfile(ctx context.Context, userID string, in services.ProfileInput) error {
	a.begin(GroupProfile)
	profile, err := a.freelancers.SaveProfile(ctx, userID, in)
	a.finish(GroupProfile, err, func() { a.profile = profile })
	return err
}

// LoadClients fetches the client list into the snapshot.
func (a *AppState) LoadClients(ctx context.Context, freelancerID string) error {
	a.begin(GroupClients)
	list, err := a.clients.List(ctx, freelancerID)
	a.finish(GroupClients, err, func() { a.clientList = list })
	return err
}

// AddClient creates a client and prepends it to the snapshot.
func (a *AppState) AddClient(ctx context.Context, freelancerID string, in services.ClientInput) error {
	a.begin(GroupClients)
	c, err := a.clients.Create(ctx, freelancerID, in)
	a.finish(GroupClients, err, func() {
		a.clientList = append([]models.Client{*c}, a.clientList...)
	})
	return err
}

// UpdateClient edits a client and patches it in place in the snapshot.
func (a *AppState) UpdateClient(ctx context.Context, freelancerID, id string, in services.ClientUpdate) error {
	a.begin(GroupClients)
	c, err := a.clients.Update(ctx, freelancerID, id, in)
	a.finish(GroupClients, err, func() {
		for i := range a.clientList {
			if a.clientList[i].ID == c.ID {
				a.clientList[i] = *c
				return
			}
		}
	})
	return err
}

// RemoveClient deletes a client and drops it from the snapshot.
func (a *AppState) RemoveClient(ctx context.Context, freelancerID, id string) error {
	a.begin(GroupClients)
	err := a.clients.Delete(ctx, freelancerID, id)
	a.finish(GroupClients, err, func() {
		for i := range a.clientList {
			if a.clientList[i].ID == id {
				a.clientList = append(a.clientList[:i], a.clientList[i+1:]...)
				return
			}
		}
	})
	return err
}

// LoadInvoices fetches the invoice list into the snapshot.
func (a *AppState) LoadInvoices(ctx context.Context, freelancerID string) error {
	a.begin(GroupInvoices)
	list, _, err := a.invoices.List(ctx, freelancerID, 0, 0)
	a.finish(GroupInvoices, err, func() { a.invoiceList = list })
	return err
}

// CreateInvoice runs the creation protocol and prepends the result.
func (a *AppState) CreateInvoice(ctx context.Context, draft services.InvoiceDraft, items []services.ItemInput) error {
	a.begin(GroupInvoices)
	inv, err := a.invoices.Create(ctx, draft, items)
	a.finish(GroupInvoices, err, func() {
		a.invoiceList = append([]models.Invoice{*inv}, a.invoiceList...)
	})
	return err
}

// SetInvoiceStatus updates one invoice's status and patches the snapshot.
func (a *AppState) SetInvoiceStatus(ctx context.Context, freelancerID, id string, status models.InvoiceStatus) error {
	a.begin(GroupInvoices)
	inv, err := a.invoices.UpdateStatus(ctx, freelancerID, id, status)
	a.finish(GroupInvoices, err, func() {
		for i := range a.invoiceList {
			if a.invoiceList[i].ID == inv.ID {
				a.invoiceList[i] = *inv
				return
			}
		}
	})
	return err
}

// RemoveInvoice deletes an invoice and drops it from the snapshot.
func (a *AppState) RemoveInvoice(ctx context.Context, freelancerID, id string) error {
	a.begin(GroupInvoices)
	err := a.invoices.Delete(ctx, freelancerID, id)
	a.finish(GroupInvoices, err, func() {
		for i := range a.invoiceList {
			if a.invoiceList[i].ID == id {
				a.invoiceList = append(a.invoiceList[:i], a.invoiceList[i+1:]...)
				return
			}
		}
	})
	return err
}

// Profile returns the snapshot profile, or nil when not loaded.
func (a *AppState) Profile() *models.Freelancer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.profile
}

// Clients returns a copy of the snapshot client list.
func (a *AppState) Clients() []models.Client {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.Client(nil), a.clientList...)
}

// Invoices returns a copy of the snapshot invoice list.
func (a *AppState) Invoices() []models.Invoice {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.Invoice(nil), a.invoiceList...)
}

// ClientByID looks a client up in the local snapshot without a remote call.
func (a *AppState) ClientByID(id string) (*models.Client, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.clientList {
		if a.clientList[i].ID == id {
			c := a.clientList[i]
			return &c, true
		}
	}
	return nil, false
}

// InvoiceByID looks an invoice up in the local snapshot without a remote call.
func (a *AppState) InvoiceByID(id string) (*models.Invoice, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.invoiceList {
		if a.invoiceList[i].ID == id {
			inv := a.invoiceList[i]
			return &inv, true
		}
	}
	return nil, false
}

// Loading reports whether an operation is in flight for the group.
func (a *AppState) Loading(g Group) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading[g]
}

// Err returns the last error message recorded for the group, or "".
func (a *AppState) Err(g Group) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.errs[g]
}

// Reset clears the entire snapshot. Used on sign-out.
func (a *AppState) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.profile = nil
	a.clientList = nil
	a.invoiceList = nil
	a.loading = make(map[Group]bool)
	a.errs = make(map[Group]string)
}

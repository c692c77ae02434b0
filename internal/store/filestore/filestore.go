// Package filestore implements store.Store as a single JSON document on
// disk. It is the offline variant of the persistence layer: one freelancer,
// per-entity blobs, and a persisted invoice counter, with whole-dataset
// export and import.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/store"
)

// document is the on-disk shape. The users key is the store's own addition
// for the hosted-auth flow; Export and Import exchange only the four
// interchange keys (freelancer, clients, invoices, counter).
type document struct {
	Freelancer *models.Freelancer `json:"freelancer"`
	Clients    []models.Client    `json:"clients"`
	Invoices   []models.Invoice   `json:"invoices"`
	Counter    int64              `json:"counter"`
	Users      []models.User      `json:"users,omitempty"`
}

// snapshot is the export/import interchange format. Pointer fields
// distinguish an absent key (leave the store untouched) from an empty one.
type snapshot struct {
	Freelancer *models.Freelancer `json:"freelancer,omitempty"`
	Clients    *[]models.Client   `json:"clients,omitempty"`
	Invoices   *[]models.Invoice  `json:"invoices,omitempty"`
	Counter    *int64             `json:"counter,omitempty"`
}

type Store struct {
	mu   sync.Mutex
	path string
	doc  document
}

// Open loads the document at path, creating an empty store if the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.doc); err != nil {
			return nil, fmt.Errorf("parse store file: %w", err)
		}
	}
	return s, nil
}

// persist writes the document atomically: full marshal to a temp file in the
// same directory, then rename over the target.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".invoices-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.doc.Users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email already registered", store.ErrConflict)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.doc.Users = append(s.doc.Users, *user)
	return s.persist()
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Users {
		if s.doc.Users[i].ID == id {
			u := s.doc.Users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Users {
		if s.doc.Users[i].Email == email {
			u := s.doc.Users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateFreelancer(_ context.Context, f *models.Freelancer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Freelancer != nil {
		return fmt.Errorf("%w: profile already exists", store.ErrConflict)
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now()
	f.CreatedAt, f.UpdatedAt = now, now
	cp := *f
	cp.Clients, cp.Invoices = nil, nil
	s.doc.Freelancer = &cp
	return s.persist()
}

func (s *Store) GetFreelancer(_ context.Context, id string) (*models.Freelancer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Freelancer == nil || s.doc.Freelancer.ID != id {
		return nil, store.ErrNotFound
	}
	f := *s.doc.Freelancer
	return &f, nil
}

func (s *Store) GetFreelancerByUserID(_ context.Context, userID string) (*models.Freelancer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Freelancer == nil || s.doc.Freelancer.UserID != userID {
		return nil, store.ErrNotFound
	}
	f := *s.doc.Freelancer
	return &f, nil
}

func (s *Store) UpdateFreelancer(_ context.Context, f *models.Freelancer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Freelancer == nil || s.doc.Freelancer.ID != f.ID {
		return store.ErrNotFound
	}
	f.UpdatedAt = time.Now()
	cp := *f
	cp.Clients, cp.Invoices = nil, nil
	s.doc.Freelancer = &cp
	return s.persist()
}

func (s *Store) CreateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	cp.Invoices = nil
	s.doc.Clients = append(s.doc.Clients, cp)
	return s.persist()
}

func (s *Store) GetClient(_ context.Context, id string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Clients {
		if s.doc.Clients[i].ID == id {
			c := s.doc.Clients[i]
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListClients(_ context.Context, freelancerID string) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Client
	for _, c := range s.doc.Clients {
		if c.FreelancerID == freelancerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Clients {
		if s.doc.Clients[i].ID == c.ID {
			c.UpdatedAt = time.Now()
			cp := *c
			cp.Invoices = nil
			s.doc.Clients[i] = cp
			return s.persist()
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Clients {
		if s.doc.Clients[i].ID == id {
			s.doc.Clients = append(s.doc.Clients[:i], s.doc.Clients[i+1:]...)
			return s.persist()
		}
	}
	return store.ErrNotFound
}

func (s *Store) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.doc.Invoices {
		if existing.FreelancerID == inv.FreelancerID && existing.Number == inv.Number {
			return fmt.Errorf("%w: invoice number %s already used", store.ErrConflict, inv.Number)
		}
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	now := time.Now()
	inv.CreatedAt, inv.UpdatedAt = now, now
	cp := *inv
	cp.Items, cp.Client = nil, nil
	s.doc.Invoices = append(s.doc.Invoices, cp)
	s.doc.Counter++
	return s.persist()
}

func (s *Store) CreateInvoiceItems(_ context.Context, items []models.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfInvoice(items[0].InvoiceID)
	if idx < 0 {
		return fmt.Errorf("%w: invoice does not exist", store.ErrConflict)
	}
	now := time.Now()
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].CreatedAt, items[i].UpdatedAt = now, now
	}
	s.doc.Invoices[idx].Items = append(s.doc.Invoices[idx].Items, items...)
	return s.persist()
}

func (s *Store) GetInvoice(_ context.Context, id string) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfInvoice(id)
	if idx < 0 {
		return nil, store.ErrNotFound
	}
	inv := s.cloneInvoice(idx)
	return &inv, nil
}

func (s *Store) ListInvoices(_ context.Context, freelancerID string, limit, offset int) ([]models.Invoice, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Invoice
	for i := range s.doc.Invoices {
		if s.doc.Invoices[i].FreelancerID == freelancerID {
			out = append(out, s.cloneInvoice(i))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	total := int64(len(out))
	if offset > 0 {
		if offset >= len(out) {
			return nil, total, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (s *Store) UpdateInvoice(_ context.Context, inv *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfInvoice(inv.ID)
	if idx < 0 {
		return store.ErrNotFound
	}
	inv.UpdatedAt = time.Now()
	items := s.doc.Invoices[idx].Items
	cp := *inv
	cp.Client = nil
	cp.Items = items
	s.doc.Invoices[idx] = cp
	return s.persist()
}

func (s *Store) DeleteInvoice(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfInvoice(id)
	if idx < 0 {
		return store.ErrNotFound
	}
	s.doc.Invoices = append(s.doc.Invoices[:idx], s.doc.Invoices[idx+1:]...)
	return s.persist()
}

func (s *Store) CountInvoices(_ context.Context, freelancerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, inv := range s.doc.Invoices {
		if inv.FreelancerID == freelancerID {
			count++
		}
	}
	return count, nil
}

// NextInvoiceNumber implements store.Sequencer. The counter only advances
// when an invoice is created, so this is a side-effect-free peek.
func (s *Store) NextInvoiceNumber(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("INV-%04d", s.doc.Counter+1), nil
}

// Export writes the freelancer/clients/invoices/counter snapshot as a single
// JSON document.
func (s *Store) Export(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clients := s.doc.Clients
	if clients == nil {
		clients = []models.Client{}
	}
	invoices := s.doc.Invoices
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	counter := s.doc.Counter
	snap := snapshot{
		Freelancer: s.doc.Freelancer,
		Clients:    &clients,
		Invoices:   &invoices,
		Counter:    &counter,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Import replaces each top-level key present in the document and leaves
// absent keys untouched. The whole document is decoded before anything is
// applied, so malformed JSON never partially overwrites the store.
func (s *Store) Import(r io.Reader) error {
	var snap snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return fmt.Errorf("parse import document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Freelancer != nil {
		s.doc.Freelancer = snap.Freelancer
	}
	if snap.Clients != nil {
		s.doc.Clients = *snap.Clients
	}
	if snap.Invoices != nil {
		s.doc.Invoices = *snap.Invoices
	}
	if snap.Counter != nil {
		s.doc.Counter = *snap.Counter
	}
	return s.persist()
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) indexOfInvoice(id string) int {
	for i := range s.doc.Invoices {
		if s.doc.Invoices[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) cloneInvoice(idx int) models.Invoice {
	inv := s.doc.Invoices[idx]
	inv.Items = append([]models.InvoiceItem(nil), inv.Items...)
	return inv
}

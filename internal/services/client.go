package services

import (
	"context"
	"errors"
	"strings"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/store"
	"github.com/diewo77/freelance-invoices/validation"
)

// ClientService manages the clients owned by a freelancer.
type ClientService struct {
	store store.Store
}

func NewClientService(st store.Store) *ClientService {
	return &ClientService{store: st}
}

// ClientInput carries the fields for creating a client.
type ClientInput struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// ClientUpdate carries a partial field set; nil fields are left unchanged.
type ClientUpdate struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
}

func (s *ClientService) Create(ctx context.Context, freelancerID string, in ClientInput) (*models.Client, error) {
	if !validation.IsUUID(freelancerID) {
		return nil, validationErrf("Freelancer ID must be a valid UUID")
	}
	if validation.TrimEmpty(in.CompanyName) {
		return nil, validationErrf("Company name is required")
	}
	in.Email = validation.NormalizeEmail(in.Email)
	if in.Email == "" {
		return nil, validationErrf("Email is required")
	}
	if !validation.IsEmail(in.Email) {
		return nil, validationErrf("Email must be a valid address")
	}

	if _, err := s.store.GetFreelancer(ctx, freelancerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "Freelancer"}
		}
		return nil, err
	}

	c := &models.Client{
		FreelancerID: freelancerID,
		CompanyName:  strings.TrimSpace(in.CompanyName),
		ContactName:  strings.TrimSpace(in.ContactName),
		Email:        in.Email,
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := s.store.CreateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a client by id, scoped to its owner. A client belonging to a
// different freelancer is reported as not found.
func (s *ClientService) Get(ctx context.Context, freelancerID, id string) (*models.Client, error) {
	if !validation.IsUUID(id) {
		return nil, validationErrf("Client ID must be a valid UUID")
	}
	c, err := s.store.GetClient(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "Client"}
	}
	if err != nil {
		return nil, err
	}
	if !owns(freelancerID, c) {
		return nil, &NotFoundError{Entity: "Client"}
	}
	return c, nil
}

// List returns the freelancer's clients, newest first.
func (s *ClientService) List(ctx context.Context, freelancerID string) ([]models.Client, error) {
	if !validation.IsUUID(freelancerID) {
		return nil, validationErrf("Freelancer ID must be a valid UUID")
	}
	return s.store.ListClients(ctx, freelancerID)
}

func (s *ClientService) Update(ctx context.Context, freelancerID, id string, in ClientUpdate) (*models.Client, error) {
	c, err := s.Get(ctx, freelancerID, id)
	if err != nil {
		return nil, err
	}
	if in.CompanyName != nil {
		if validation.TrimEmpty(*in.CompanyName) {
			return nil, validationErrf("Company name is required")
		}
		c.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.ContactName != nil {
		c.ContactName = strings.TrimSpace(*in.ContactName)
	}
	if in.Email != nil {
		email := validation.NormalizeEmail(*in.Email)
		if !validation.IsEmail(email) {
			return nil, validationErrf("Email must be a valid address")
		}
		c.Email = email
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if err := s.store.UpdateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a client. Its invoices keep their client reference here;
// the relational schema cascades at the database level.
func (s *ClientService) Delete(ctx context.Context, freelancerID, id string) error {
	if _, err := s.Get(ctx, freelancerID, id); err != nil {
		return err
	}
	err := s.store.DeleteClient(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: "Client"}
	}
	return err
}

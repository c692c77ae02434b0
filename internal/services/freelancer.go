package services

import (
	"context"
	"errors"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/store"
	"github.com/diewo77/freelance-invoices/validation"
)

// FreelancerService manages the business profile of the signed-in user.
type FreelancerService struct {
	store store.Store
}

func NewFreelancerService(st store.Store) *FreelancerService {
	return &FreelancerService{store: st}
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

func (in *ProfileInput) validate() error {
	if validation.TrimEmpty(in.Name) {
		return validationErrf("Name is required")
	}
	in.Email = validation.NormalizeEmail(in.Email)
	if in.Email == "" {
		return validationErrf("Email is required")
	}
	if !validation.IsEmail(in.Email) {
		return validationErrf("Email must be a valid address")
	}
	if validation.TrimEmpty(in.Address) {
		return validationErrf("Address is required")
	}
	return nil
}

// SaveProfile creates the profile on first save and updates it afterwards.
func (s *FreelancerService) SaveProfile(ctx context.Context, userID string, in ProfileInput) (*models.Freelancer, error) {
	if !validation.IsUUID(userID) {
		return nil, validationErrf("User ID must be a valid UUID")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetFreelancerByUserID(ctx, userID)
	switch {
	case err == nil:
		existing.Name = in.Name
		existing.Email = in.Email
		existing.Address = in.Address
		existing.Phone = in.Phone
		existing.Website = in.Website
		if err := s.store.UpdateFreelancer(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, store.ErrNotFound):
		f := &models.Freelancer{
			UserID:  userID,
			Name:    in.Name,
			Email:   in.Email,
			Address: in.Address,
			Phone:   in.Phone,
			Website: in.Website,
		}
		if err := s.store.CreateFreelancer(ctx, f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, err
	}
}

// Profile returns the profile owned by userID.
func (s *FreelancerService) Profile(ctx context.Context, userID string) (*models.Freelancer, error) {
	if !validation.IsUUID(userID) {
		return nil, validationErrf("User ID must be a valid UUID")
	}
	f, err := s.store.GetFreelancerByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "Freelancer"}
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Get returns a freelancer by id.
func (s *FreelancerService) Get(ctx context.Context, id string) (*models.Freelancer, error) {
	if !validation.IsUUID(id) {
		return nil, validationErrf("Freelancer ID must be a valid UUID")
	}
	f, err := s.store.GetFreelancer(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "Freelancer"}
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

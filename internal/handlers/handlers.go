// Package handlers exposes the JSON HTTP surface over the service layer.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/diewo77/freelance-invoices/auth"
	"github.com/diewo77/freelance-invoices/httpx"
	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/services"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is surfaced with the store's raw message.
func writeServiceError(w http.ResponseWriter, err error) {
	var constraintErr *services.ConstraintError
	var relationshipErr *services.RelationshipError
	switch {
	case services.IsValidation(err):
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
	case services.IsNotFound(err):
		httpx.JSONError(w, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &relationshipErr):
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.As(err, &constraintErr):
		httpx.JSONError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, services.ErrAuthenticationRequired):
		httpx.JSONError(w, http.StatusUnauthorized, err.Error(), nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
	}
}

// currentFreelancer resolves the authenticated user's profile. It returns
// ErrAuthenticationRequired when there is no session, and the profile
// not-found error when the user has not saved a profile yet.
func currentFreelancer(ctx context.Context, fs *services.FreelancerService) (*models.Freelancer, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, services.ErrAuthenticationRequired
	}
	return fs.Profile(ctx, userID)
}

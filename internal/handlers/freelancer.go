package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/freelance-invoices/auth"
	"github.com/diewo77/freelance-invoices/httpx"
	"github.com/diewo77/freelance-invoices/internal/services"
)

type FreelancerHandler struct {
	Svc *services.FreelancerService
}

func NewFreelancerHandler(svc *services.FreelancerService) *FreelancerHandler {
	return &FreelancerHandler{Svc: svc}
}

// Profile: GET /profile
func (h *FreelancerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, services.ErrAuthenticationRequired)
		return
	}
	profile, err := h.Svc.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

// Save: PUT /profile – creates the profile on first save, updates after.
func (h *FreelancerHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, services.ErrAuthenticationRequired)
		return
	}
	var in services.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	profile, err := h.Svc.SaveProfile(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/freelance-invoices/httpx"
	"github.com/diewo77/freelance-invoices/internal/services"
)

type ClientHandler struct {
	Clients     *services.ClientService
	Freelancers *services.FreelancerService
}

func NewClientHandler(clients *services.ClientService, freelancers *services.FreelancerService) *ClientHandler {
	return &ClientHandler{Clients: clients, Freelancers: freelancers}
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	clients, err := h.Clients.List(r.Context(), fl.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var in services.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	client, err := h.Clients.Create(r.Context(), fl.ID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// Get: GET /clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	client, err := h.Clients.Get(r.Context(), fl.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Update: PUT /clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var in services.ClientUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	client, err := h.Clients.Update(r.Context(), fl.ID, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete: DELETE /clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.Clients.Delete(r.Context(), fl.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.NoContent(w)
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/diewo77/freelance-invoices/httpx"
	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/pdf"
	"github.com/diewo77/freelance-invoices/internal/services"
)

type InvoiceHandler struct {
	Invoices    *services.InvoiceService
	Clients     *services.ClientService
	Freelancers *services.FreelancerService
	Numbering   *services.NumberingService
}

func NewInvoiceHandler(invoices *services.InvoiceService, clients *services.ClientService, freelancers *services.FreelancerService, numbering *services.NumberingService) *InvoiceHandler {
	return &InvoiceHandler{Invoices: invoices, Clients: clients, Freelancers: freelancers, Numbering: numbering}
}

type createInvoiceRequest struct {
	services.InvoiceDraft
	Items []services.ItemInput `json:"items"`
}

type invoiceListResponse struct {
	Invoices []models.Invoice `json:"invoices"`
	Total    int64            `json:"total"`
}

// List: GET /invoices?limit=&offset=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	invoices, total, err := h.Invoices.List(r.Context(), fl.ID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoiceListResponse{Invoices: invoices, Total: total})
}

// Create: POST /invoices
//
// The freelancer ID always comes from the session, never from the body.
// An empty invoice number is assigned by the service.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	req.FreelancerID = fl.ID
	invoice, err := h.Invoices.Create(r.Context(), req.InvoiceDraft, req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, invoice)
}

// NextNumber: GET /invoices/next-number
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	number, err := h.Numbering.NextInvoiceNumber(r.Context(), fl.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"invoice_number": number})
}

// Get: GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	invoice, err := h.Invoices.Get(r.Context(), fl.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// Update: PUT /invoices/{id}
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var in services.InvoiceUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	invoice, err := h.Invoices.Update(r.Context(), fl.ID, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

type statusRequest struct {
	Status models.InvoiceStatus `json:"status"`
}

// UpdateStatus: PATCH /invoices/{id}/status
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	invoice, err := h.Invoices.UpdateStatus(r.Context(), fl.ID, r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// Delete: DELETE /invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.Invoices.Delete(r.Context(), fl.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.NoContent(w)
}

// Revenue: GET /invoices/revenue
func (h *InvoiceHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	revenue, err := h.Invoices.Revenue(r.Context(), fl.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"revenue": revenue.StringFixed(2)})
}

// PDF: GET /invoices/{id}/pdf
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	fl, err := currentFreelancer(r.Context(), h.Freelancers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	invoice, err := h.Invoices.Get(r.Context(), fl.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	client, err := h.Clients.Get(r.Context(), fl.ID, invoice.ClientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	doc, err := pdf.InvoicePDF(pdf.InvoiceData{Invoice: invoice, Freelancer: fl, Client: client})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed to render PDF", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+invoice.Number+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

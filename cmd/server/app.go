package main

import (
	"net/http"

	"github.com/diewo77/freelance-invoices/auth"
	"github.com/diewo77/freelance-invoices/internal/handlers"
	"github.com/diewo77/freelance-invoices/internal/services"
	"github.com/diewo77/freelance-invoices/internal/store"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
}

// NewApp wires the service layer over the store and configures all routes.
func NewApp(st store.Store, ah *handlers.AuthHandler) *App {
	numbering := services.NewNumberingService(st)
	freelancers := services.NewFreelancerService(st)
	clients := services.NewClientService(st)
	invoices := services.NewInvoiceService(st, numbering)

	app := &App{mux: http.NewServeMux()}
	app.setupRoutes(
		ah,
		handlers.NewFreelancerHandler(freelancers),
		handlers.NewClientHandler(clients, freelancers),
		handlers.NewInvoiceHandler(invoices, clients, freelancers, numbering),
		handlers.NewExportHandler(st),
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.Middleware(a.mux).ServeHTTP(w, r)
}

func (a *App) setupRoutes(ah *handlers.AuthHandler, fh *handlers.FreelancerHandler, ch *handlers.ClientHandler, ih *handlers.InvoiceHandler, eh *handlers.ExportHandler) {
	// Public routes
	a.mux.HandleFunc("POST /signup", ah.Signup)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("POST /logout", ah.Logout)

	protected := func(h http.HandlerFunc) http.Handler {
		return auth.RequireAuth(h)
	}

	// Profile
	a.mux.Handle("GET /profile", protected(fh.Profile))
	a.mux.Handle("PUT /profile", protected(fh.Save))

	// Clients
	a.mux.Handle("GET /clients", protected(ch.List))
	a.mux.Handle("POST /clients", protected(ch.Create))
	a.mux.Handle("GET /clients/{id}", protected(ch.Get))
	a.mux.Handle("PUT /clients/{id}", protected(ch.Update))
	a.mux.Handle("DELETE /clients/{id}", protected(ch.Delete))

	// Invoices
	a.mux.Handle("GET /invoices", protected(ih.List))
	a.mux.Handle("POST /invoices", protected(ih.Create))
	a.mux.Handle("GET /invoices/next-number", protected(ih.NextNumber))
	a.mux.Handle("GET /invoices/revenue", protected(ih.Revenue))
	a.mux.Handle("GET /invoices/{id}", protected(ih.Get))
	a.mux.Handle("PUT /invoices/{id}", protected(ih.Update))
	a.mux.Handle("PATCH /invoices/{id}/status", protected(ih.UpdateStatus))
	a.mux.Handle("DELETE /invoices/{id}", protected(ih.Delete))
	a.mux.Handle("GET /invoices/{id}/pdf", protected(ih.PDF))

	// Snapshot exchange
	a.mux.Handle("GET /export", protected(eh.Export))
	a.mux.Handle("POST /import", protected(eh.Import))
}

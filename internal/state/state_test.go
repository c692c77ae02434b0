package state

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/services"
	"github.com/diewo77/freelance-invoices/internal/store"
	"github.com/diewo77/freelance-invoices/internal/store/gormstore"
)

func setupState(t *testing.T) (*AppState, store.Store, *models.User) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Freelancer{}, &models.Client{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st := gormstore.New(db)

	user := &models.User{Email: "jane@dev.example", PasswordHash: "x"}
	if err := st.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	numbering := services.NewNumberingService(st)
	app := New(
		services.NewFreelancerService(st),
		services.NewClientService(st),
		services.NewInvoiceService(st, numbering),
	)
	return app, st, user
}

func TestSnapshotPatchedOnSuccess(t *testing.T) {
	app, _, user := setupState(t)
	ctx := context.Background()

	if err := app.SaveProfile(ctx, user.ID, services.ProfileInput{
		Name: "Jane Dev", Email: "jane@dev.example", Address: "1 Main St",
	}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	profile := app.Profile()
	if profile == nil || profile.Name != "Jane Dev" {
		t.Fatalf("profile snapshot = %+v", profile)
	}

	if err := app.AddClient(ctx, profile.ID, services.ClientInput{
		CompanyName: "Acme", Email: "a@acme.example",
	}); err != nil {
		t.Fatalf("add client: %v", err)
	}
	clients := app.Clients()
	if len(clients) != 1 || clients[0].CompanyName != "Acme" {
		t.Fatalf("client snapshot = %+v", clients)
	}

	draft := services.InvoiceDraft{
		FreelancerID: profile.ID,
		ClientID:     clients[0].ID,
		IssueDate:    "2026-08-01",
		DueDate:      "2026-08-31",
	}
	items := []services.ItemInput{{Description: "Work", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(50)}}
	if err := app.CreateInvoice(ctx, draft, items); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	invoices := app.Invoices()
	if len(invoices) != 1 {
		t.Fatalf("invoice snapshot = %+v", invoices)
	}
	if _, ok := app.InvoiceByID(invoices[0].ID); !ok {
		t.Error("InvoiceByID missed a snapshot entry")
	}
	if app.Err(GroupInvoices) != "" {
		t.Errorf("unexpected error flag: %s", app.Err(GroupInvoices))
	}
}

func TestSnapshotUntouchedOnFailure(t *testing.T) {
	app, _, user := setupState(t)
	ctx := context.Background()

	if err := app.SaveProfile(ctx, user.ID, services.ProfileInput{
		Name: "Jane Dev", Email: "jane@dev.example", Address: "1 Main St",
	}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	profile := app.Profile()

	// Invalid input: the snapshot must stay as it was and the error flag
	// for the group must be set.
	err := app.AddClient(ctx, profile.ID, services.ClientInput{CompanyName: "  "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(app.Clients()) != 0 {
		t.Errorf("snapshot changed on failure: %+v", app.Clients())
	}
	if app.Err(GroupClients) == "" {
		t.Error("error flag not recorded")
	}
	if app.Loading(GroupClients) {
		t.Error("loading flag stuck")
	}

	// Profile group is unaffected by the clients failure.
	if app.Err(GroupProfile) != "" {
		t.Errorf("profile error flag leaked: %s", app.Err(GroupProfile))
	}

	// A subsequent success clears the group error.
	if err := app.AddClient(ctx, profile.ID, services.ClientInput{CompanyName: "Acme", Email: "a@acme.example"}); err != nil {
		t.Fatalf("add client: %v", err)
	}
	if app.Err(GroupClients) != "" {
		t.Errorf("error flag not cleared: %s", app.Err(GroupClients))
	}
}

func TestResetClearsEverything(t *testing.T) {
	app, _, user := setupState(t)
	ctx := context.Background()

	if err := app.SaveProfile(ctx, user.ID, services.ProfileInput{
		Name: "Jane Dev", Email: "jane@dev.example", Address: "1 Main St",
	}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	app.Reset()
	if app.Profile() != nil || len(app.Clients()) != 0 || len(app.Invoices()) != 0 {
		t.Error("reset left snapshot data behind")
	}
}

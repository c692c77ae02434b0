package filestore

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/store"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoices.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, path
}

func seedProfile(t *testing.T, s *Store) *models.Freelancer {
	t.Helper()
	f := &models.Freelancer{UserID: "u-1", Name: "Jane Dev", Email: "jane@dev.example", Address: "1 Main St"}
	if err := s.CreateFreelancer(context.Background(), f); err != nil {
		t.Fatalf("seed freelancer: %v", err)
	}
	return f
}

func TestFreelancerSingleton(t *testing.T) {
	s, _ := openTestStore(t)
	seedProfile(t, s)

	second := &models.Freelancer{UserID: "u-2", Name: "Other", Email: "o@x.example", Address: "2 St"}
	err := s.CreateFreelancer(context.Background(), second)
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict for second profile, got %v", err)
	}
}

func TestCounterAdvancesOnCreateOnly(t *testing.T) {
	s, _ := openTestStore(t)
	f := seedProfile(t, s)
	ctx := context.Background()

	// Peeking never advances the counter.
	for i := 0; i < 3; i++ {
		n, err := s.NextInvoiceNumber(ctx)
		if err != nil {
			t.Fatalf("next number: %v", err)
		}
		if n != "INV-0001" {
			t.Fatalf("peek %d = %s, want INV-0001", i, n)
		}
	}

	inv := &models.Invoice{FreelancerID: f.ID, ClientID: "c-1", Number: "INV-0001", Status: models.InvoiceStatusDraft}
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	n, err := s.NextInvoiceNumber(ctx)
	if err != nil {
		t.Fatalf("next number: %v", err)
	}
	if n != "INV-0002" {
		t.Errorf("after create = %s, want INV-0002", n)
	}
}

func TestPersistenceSurvivesReopen(t *testing.T) {
	s, path := openTestStore(t)
	f := seedProfile(t, s)
	ctx := context.Background()

	client := &models.Client{FreelancerID: f.ID, CompanyName: "Acme", Email: "a@acme.example"}
	if err := s.CreateClient(ctx, client); err != nil {
		t.Fatalf("create client: %v", err)
	}
	inv := &models.Invoice{
		FreelancerID: f.ID, ClientID: client.ID, Number: "INV-0001",
		Subtotal: decimal.NewFromInt(100), Total: decimal.NewFromInt(100),
		Status: models.InvoiceStatusSent,
	}
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if err := s.CreateInvoiceItems(ctx, []models.InvoiceItem{
		{InvoiceID: inv.ID, Description: "Work", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
	}); err != nil {
		t.Fatalf("create items: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Number != "INV-0001" || len(got.Items) != 1 {
		t.Errorf("reloaded invoice = %+v", got)
	}
	if n, _ := reopened.NextInvoiceNumber(ctx); n != "INV-0002" {
		t.Errorf("counter after reopen = %s, want INV-0002", n)
	}
}

func TestDuplicateInvoiceNumberConflicts(t *testing.T) {
	s, _ := openTestStore(t)
	f := seedProfile(t, s)
	ctx := context.Background()

	a := &models.Invoice{FreelancerID: f.ID, ClientID: "c-1", Number: "INV-0001"}
	if err := s.CreateInvoice(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	b := &models.Invoice{FreelancerID: f.ID, ClientID: "c-1", Number: "INV-0001"}
	if err := s.CreateInvoice(ctx, b); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	f := seedProfile(t, s)
	ctx := context.Background()

	client := &models.Client{FreelancerID: f.ID, CompanyName: "Acme", Email: "a@acme.example"}
	if err := s.CreateClient(ctx, client); err != nil {
		t.Fatalf("create client: %v", err)
	}
	inv := &models.Invoice{FreelancerID: f.ID, ClientID: client.ID, Number: "INV-0001"}
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Contains(buf.String(), `"users"`) {
		t.Error("export leaked the users key")
	}

	dest, _ := openTestStore(t)
	if err := dest.Import(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("import: %v", err)
	}
	got, err := dest.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("get imported invoice: %v", err)
	}
	if got.Number != "INV-0001" {
		t.Errorf("imported number = %s", got.Number)
	}
	if n, _ := dest.NextInvoiceNumber(ctx); n != "INV-0002" {
		t.Errorf("imported counter: next = %s, want INV-0002", n)
	}
	clients, err := dest.ListClients(ctx, f.ID)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(clients) != 1 {
		t.Errorf("imported clients = %d, want 1", len(clients))
	}
}

func TestImportPartialDocument(t *testing.T) {
	s, _ := openTestStore(t)
	f := seedProfile(t, s)
	ctx := context.Background()

	client := &models.Client{FreelancerID: f.ID, CompanyName: "Keep Me", Email: "k@x.example"}
	if err := s.CreateClient(ctx, client); err != nil {
		t.Fatalf("create client: %v", err)
	}

	// Only the counter key is present; clients must be left untouched.
	if err := s.Import(strings.NewReader(`{"counter": 41}`)); err != nil {
		t.Fatalf("import: %v", err)
	}
	if n, _ := s.NextInvoiceNumber(ctx); n != "INV-0042" {
		t.Errorf("next = %s, want INV-0042", n)
	}
	clients, _ := s.ListClients(ctx, f.ID)
	if len(clients) != 1 {
		t.Errorf("clients after partial import = %d, want 1", len(clients))
	}
}

func TestImportMalformedLeavesStoreUntouched(t *testing.T) {
	s, _ := openTestStore(t)
	f := seedProfile(t, s)
	ctx := context.Background()

	if err := s.Import(strings.NewReader(`{"counter": `)); err == nil {
		t.Fatal("expected parse error")
	}
	if got, err := s.GetFreelancerByUserID(ctx, f.UserID); err != nil || got.Name != "Jane Dev" {
		t.Errorf("store changed after failed import: %v %v", got, err)
	}
}

func TestDeleteMissingInvoice(t *testing.T) {
	s, _ := openTestStore(t)
	err := s.DeleteInvoice(context.Background(), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

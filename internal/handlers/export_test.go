package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/store/filestore"
)

func TestExportUnsupportedBackend(t *testing.T) {
	// The relational store does not implement snapshots.
	h := NewExportHandler(setupHandlerStore(t))

	w := httptest.NewRecorder()
	h.Export(w, httptest.NewRequest(http.MethodGet, "/export", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("export: expected 400 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Import(w, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader("{}")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("import: expected 400 got %d", w.Code)
	}
}

func TestExportFileBackend(t *testing.T) {
	fs, err := filestore.Open(filepath.Join(t.TempDir(), "invoices.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := fs.CreateFreelancer(context.Background(), &models.Freelancer{
		UserID: "u-1", Name: "Jane Dev", Email: "jane@dev.example", Address: "1 Main St",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewExportHandler(fs)

	w := httptest.NewRecorder()
	h.Export(w, httptest.NewRequest(http.MethodGet, "/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %s", ct)
	}
	body := w.Body.String()
	for _, key := range []string{`"freelancer"`, `"clients"`, `"invoices"`, `"counter"`} {
		if !strings.Contains(body, key) {
			t.Errorf("export missing %s key", key)
		}
	}

	// Round-trip into a fresh store through the import endpoint.
	dest, err := filestore.Open(filepath.Join(t.TempDir(), "invoices.json"))
	if err != nil {
		t.Fatalf("open dest: %v", err)
	}
	h2 := NewExportHandler(dest)
	w = httptest.NewRecorder()
	h2.Import(w, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(body)))
	if w.Code != http.StatusNoContent {
		t.Fatalf("import: expected 204 got %d body=%s", w.Code, w.Body.String())
	}
	if _, err := dest.GetFreelancerByUserID(context.Background(), "u-1"); err != nil {
		t.Errorf("imported profile missing: %v", err)
	}
}

package handlers

import (
	"net/http"

	"github.com/diewo77/freelance-invoices/httpx"
	"github.com/diewo77/freelance-invoices/internal/store"
)

// ExportHandler moves whole-dataset snapshots in and out of the store.
// Only stores that implement store.Snapshotter support it; everything
// else answers 400.
type ExportHandler struct {
	Store store.Store
}

func NewExportHandler(st store.Store) *ExportHandler {
	return &ExportHandler{Store: st}
}

// Export: GET /export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Store.(store.Snapshotter)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "export is not supported by this storage backend", nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices-export.json"`)
	if err := snap.Export(w); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
	}
}

// Import: POST /import
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Store.(store.Snapshotter)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "import is not supported by this storage backend", nil)
		return
	}
	if err := snap.Import(r.Body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	httpx.NoContent(w)
}

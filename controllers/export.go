package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Chaukil/scanchi/logger"
	"github.com/Chaukil/scanchi/services"
	"github.com/go-chi/chi/v5"
)

// ExportController serves session tallies as downloadable spreadsheets.
type ExportController struct {
	store  *services.SessionStore
	export *services.ExportService
}

func NewExportController(store *services.SessionStore, export *services.ExportService) *ExportController {
	return &ExportController{store: store, export: export}
}

// Download handles GET /sessions/{session_id}/export.
func (c *ExportController) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	s, err := c.store.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	buf, err := c.export.BuildWorkbook(s.Records())
	if errors.Is(err, services.ErrNothingToExport) {
		http.Error(w, "No records to export", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("export failed", "session_id", id, "error", err)
		http.Error(w, "Failed to build spreadsheet", http.StatusInternalServerError)
		return
	}

	filename := c.export.Filename(time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("failed to write export", "session_id", id, "error", err)
	}
}

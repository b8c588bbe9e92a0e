package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Chaukil/scanchi/logger"
	"github.com/Chaukil/scanchi/models"
	"github.com/Chaukil/scanchi/services"
	"github.com/go-chi/chi/v5"
)

// SessionController manages scan sessions and their accumulated records.
type SessionController struct {
	store *services.SessionStore
}

func NewSessionController(store *services.SessionStore) *SessionController {
	return &SessionController{store: store}
}

// RecordsResponse lists a session's accumulated records.
type RecordsResponse struct {
	SessionID string                 `json:"session_id"`
	Records   []models.SessionRecord `json:"records"`
	Total     int                    `json:"total"`
}

// ConfirmRequest carries the reviewer-confirmed candidates. The payload
// crosses the human confirmation boundary and is re-validated by the
// reconciler.
type ConfirmRequest struct {
	Candidates []models.CandidateRecord `json:"candidates"`
}

// UpdateRecordRequest replaces one record's item and quantity.
type UpdateRecordRequest struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// Create handles POST /sessions.
func (c *SessionController) Create(w http.ResponseWriter, r *http.Request) {
	s := c.store.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": s.ID})
}

// Remove handles DELETE /sessions/{session_id}.
func (c *SessionController) Remove(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	c.store.Remove(s.ID)
	logger.Info("session removed", "session_id", s.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ListRecords handles GET /sessions/{session_id}/records.
func (c *SessionController) ListRecords(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	records := s.Records()
	writeJSON(w, http.StatusOK, RecordsResponse{SessionID: s.ID, Records: records, Total: len(records)})
}

// Confirm handles POST /sessions/{session_id}/records: merge the confirmed
// candidates into the session tally.
func (c *SessionController) Confirm(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}

	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("invalid confirm payload", "error", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	applied := s.Reconcile(req.Candidates)
	logger.Info("candidates reconciled", "session_id", s.ID, "confirmed", len(req.Candidates), "applied", applied)

	records := s.Records()
	writeJSON(w, http.StatusOK, RecordsResponse{SessionID: s.ID, Records: records, Total: len(records)})
}

// UpdateRecord handles PATCH /sessions/{session_id}/records/{index}.
func (c *SessionController) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	index, ok := recordIndex(w, r)
	if !ok {
		return
	}

	var req UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := s.Update(index, req.Item, req.Quantity); err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteRecord handles DELETE /sessions/{session_id}/records/{index}.
func (c *SessionController) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	index, ok := recordIndex(w, r)
	if !ok {
		return
	}

	if err := s.Delete(index); err != nil {
		writeRecordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Clear handles DELETE /sessions/{session_id}/records.
func (c *SessionController) Clear(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	s.Clear()
	logger.Info("session cleared", "session_id", s.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (c *SessionController) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	id := chi.URLParam(r, "session_id")
	s, err := c.store.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func recordIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		http.Error(w, "Invalid record index", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func writeRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		http.Error(w, "Record not found", http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidRecord):
		http.Error(w, "Item must be non-empty and quantity at least 1", http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/Chaukil/scanchi/logger"
	"github.com/Chaukil/scanchi/models"
	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned for unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")
	// ErrRecordNotFound is returned when a record index is out of range.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidRecord is returned when an edit would leave a record with an
	// empty item or a non-positive quantity.
	ErrInvalidRecord = errors.New("invalid record")
)

// Session accumulates confirmed records for one scanning run. The record
// list is single-writer: every mutation goes through the session mutex.
type Session struct {
	ID string

	mu      sync.Mutex
	records []models.SessionRecord
}

// Records returns a copy of the accumulated record list.
func (s *Session) Records() []models.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SessionRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Reconcile merges confirmed candidates into the session. Items are matched
// case-insensitively: a hit adds the candidate quantity to the existing
// record, a miss appends a new record preserving the candidate's casing.
// Candidates with an empty item or a quantity below 1 arrive from an
// untrusted edit boundary and are skipped, not fatal. Returns the number of
// candidates applied.
func (s *Session) Reconcile(confirmed []models.CandidateRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0
	for _, c := range confirmed {
		item := strings.TrimSpace(c.Item)
		if item == "" || c.Quantity < 1 {
			logger.Warn("skipping invalid candidate", "session_id", s.ID, "item", c.Item, "quantity", c.Quantity)
			continue
		}

		matched := false
		for i := range s.records {
			if strings.EqualFold(s.records[i].Item, item) {
				s.records[i].Quantity += c.Quantity
				matched = true
				break
			}
		}
		if !matched {
			s.records = append(s.records, models.SessionRecord{Item: item, Quantity: c.Quantity})
		}
		applied++
	}
	return applied
}

// Update replaces the record at index with a new item and quantity.
func (s *Session) Update(index int, item string, quantity int) error {
	item = strings.TrimSpace(item)
	if item == "" || quantity < 1 {
		return ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return ErrRecordNotFound
	}
	s.records[index] = models.SessionRecord{Item: item, Quantity: quantity}
	return nil
}

// Delete removes the record at index.
func (s *Session) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return ErrRecordNotFound
	}
	s.records = append(s.records[:index], s.records[index+1:]...)
	return nil
}

// Clear discards every record in the session.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// SessionStore owns all in-memory scan sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create registers a new empty session and returns it.
func (st *SessionStore) Create() *Session {
	s := &Session{ID: uuid.NewString()}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	logger.Info("session created", "session_id", s.ID)
	return s
}

// Get looks up a session by ID.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session entirely.
func (st *SessionStore) Remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

package services

import (
	"testing"

	"github.com/Chaukil/scanchi/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileAccumulatesCaseInsensitively(t *testing.T) {
	s := NewSessionStore().Create()

	s.Reconcile([]models.CandidateRecord{{Item: "ABC123", Quantity: 5}})
	applied := s.Reconcile([]models.CandidateRecord{{Item: "abc123", Quantity: 3}})

	assert.Equal(t, 1, applied)
	records := s.Records()
	require.Len(t, records, 1)
	// Original casing from the first occurrence is preserved.
	assert.Equal(t, models.SessionRecord{Item: "ABC123", Quantity: 8}, records[0])
}

func TestReconcileIdempotentAccumulation(t *testing.T) {
	s := NewSessionStore().Create()
	batch := []models.CandidateRecord{{Item: "WNK79255", Quantity: 35}}

	s.Reconcile(batch)
	s.Reconcile(batch)

	records := s.Records()
	require.Len(t, records, 1)
	assert.Equal(t, 70, records[0].Quantity)
}

func TestReconcilePreservesFirstAppearanceOrder(t *testing.T) {
	s := NewSessionStore().Create()

	s.Reconcile([]models.CandidateRecord{
		{Item: "BBB222", Quantity: 1},
		{Item: "AAA111", Quantity: 2},
	})
	s.Reconcile([]models.CandidateRecord{
		{Item: "aaa111", Quantity: 3},
		{Item: "CCC333", Quantity: 4},
	})

	records := s.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "BBB222", records[0].Item)
	assert.Equal(t, "AAA111", records[1].Item)
	assert.Equal(t, 5, records[1].Quantity)
	assert.Equal(t, "CCC333", records[2].Item)
}

func TestReconcileSkipsInvalidCandidates(t *testing.T) {
	s := NewSessionStore().Create()

	applied := s.Reconcile([]models.CandidateRecord{
		{Item: "", Quantity: 5},
		{Item: "   ", Quantity: 5},
		{Item: "ABC123", Quantity: 0},
		{Item: "ABC123", Quantity: -2},
	})

	assert.Equal(t, 0, applied)
	assert.Empty(t, s.Records())
}

func TestReconcileTrimsItemBeforeMatching(t *testing.T) {
	s := NewSessionStore().Create()

	s.Reconcile([]models.CandidateRecord{{Item: "ABC123", Quantity: 1}})
	s.Reconcile([]models.CandidateRecord{{Item: "  abc123 ", Quantity: 2}})

	records := s.Records()
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Quantity)
}

func TestUpdateValidatesInput(t *testing.T) {
	s := NewSessionStore().Create()
	s.Reconcile([]models.CandidateRecord{{Item: "ABC123", Quantity: 1}})

	assert.ErrorIs(t, s.Update(0, "", 5), ErrInvalidRecord)
	assert.ErrorIs(t, s.Update(0, "XYZ", 0), ErrInvalidRecord)
	assert.ErrorIs(t, s.Update(3, "XYZ99", 5), ErrRecordNotFound)

	require.NoError(t, s.Update(0, "XYZ99", 5))
	assert.Equal(t, models.SessionRecord{Item: "XYZ99", Quantity: 5}, s.Records()[0])
}

func TestDeleteAndClear(t *testing.T) {
	s := NewSessionStore().Create()
	s.Reconcile([]models.CandidateRecord{
		{Item: "AAA111", Quantity: 1},
		{Item: "BBB222", Quantity: 2},
	})

	assert.ErrorIs(t, s.Delete(5), ErrRecordNotFound)
	require.NoError(t, s.Delete(0))

	records := s.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "BBB222", records[0].Item)

	s.Clear()
	assert.Empty(t, s.Records())
}

func TestSessionStoreLookup(t *testing.T) {
	store := NewSessionStore()
	s := store.Create()

	got, err := store.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	store.Remove(s.ID)
	_, err = store.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoraes/controlog/internal/common"
	"github.com/dmoraes/controlog/internal/models"
	"github.com/dmoraes/controlog/internal/replication"
)

// recorder captures replication enqueues.
type recorder struct {
	actions  []replication.Action
	payloads []any
}

func (r *recorder) Enqueue(action replication.Action, payload any) {
	r.actions = append(r.actions, action)
	r.payloads = append(r.payloads, payload)
}

// memNotes is an in-memory notes.Repository.
type memNotes struct {
	stored    []models.Note
	insertErr error
}

func (m *memNotes) Insert(ctx context.Context, n *models.Note) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.stored = append(m.stored, *n)
	return nil
}

func (m *memNotes) GetAll(ctx context.Context) ([]models.Note, error) {
	return append([]models.Note(nil), m.stored...), nil
}

func (m *memNotes) GetByDocument(ctx context.Context, cte, serie string) ([]models.Note, error) {
	var out []models.Note
	for _, n := range m.stored {
		if n.CTE == cte && n.Serie == serie {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotes) GetByOriginUnit(ctx context.Context, unit string) ([]models.Note, error) {
	var out []models.Note
	for _, n := range m.stored {
		if n.OriginUnit == unit {
			out = append(out, n)
		}
	}
	return out, nil
}

func validNote() models.Note {
	return models.Note{
		CTE:             "1001",
		Serie:           "1",
		User:            "maria",
		Content:         "destinatário fechado",
		OriginUnit:      "UnitA",
		DestinationUnit: "UnitB",
	}
}

func TestNoteSave_AssignsIdentityAndReplicates(t *testing.T) {
	repo := &memNotes{}
	repl := &recorder{}
	s := NewNoteService(repo, repl)

	saved, err := s.Save(context.Background(), validNote())
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.Timestamp.IsZero())
	require.Len(t, repo.stored, 1)

	require.Equal(t, []replication.Action{replication.ActionSaveNote}, repl.actions)
	assert.Equal(t, saved, repl.payloads[0])
}

func TestNoteSave_KeepsCallerProvidedIdentity(t *testing.T) {
	s := NewNoteService(&memNotes{}, &recorder{})

	n := validNote()
	n.ID = "fixed"
	n.Timestamp = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	saved, err := s.Save(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, "fixed", saved.ID)
	assert.Equal(t, n.Timestamp, saved.Timestamp)
}

func TestNoteSave_Validation(t *testing.T) {
	s := NewNoteService(&memNotes{}, &recorder{})

	tests := []struct {
		name   string
		mutate func(*models.Note)
	}{
		{"missing cte", func(n *models.Note) { n.CTE = "" }},
		{"missing serie", func(n *models.Note) { n.Serie = " " }},
		{"missing user", func(n *models.Note) { n.User = "" }},
		{"missing content", func(n *models.Note) { n.Content = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := validNote()
			tt.mutate(&n)
			_, err := s.Save(context.Background(), n)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestNoteSave_PersistenceFailureNotMasked(t *testing.T) {
	repo := &memNotes{insertErr: errors.New("disk full")}
	repl := &recorder{}
	s := NewNoteService(repo, repl)

	_, err := s.Save(context.Background(), validNote())
	require.Error(t, err)
	// Nothing persisted means nothing replicated either.
	assert.Empty(t, repl.actions)
}

func TestNoteSave_DistinctIDsPerSave(t *testing.T) {
	repo := &memNotes{}
	s := NewNoteService(repo, &recorder{})

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		saved, err := s.Save(context.Background(), validNote())
		require.NoError(t, err)
		assert.False(t, seen[saved.ID], "duplicate id %s", saved.ID)
		seen[saved.ID] = true
	}
	assert.Len(t, repo.stored, 10)
}

func TestHistory_SortedAscending(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &memNotes{stored: []models.Note{
		{ID: "b", CTE: "1", Serie: "1", Timestamp: base.Add(2 * time.Hour)},
		{ID: "a", CTE: "1", Serie: "1", Timestamp: base},
		{ID: "c", CTE: "1", Serie: "1", Timestamp: base.Add(time.Hour)},
		{ID: "x", CTE: "2", Serie: "1", Timestamp: base},
	}}
	s := NewNoteService(repo, &recorder{})

	got, err := s.History(context.Background(), "1", "1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "b", got[2].ID)
}

func TestInbox(t *testing.T) {
	repo := &memNotes{stored: []models.Note{
		{ID: "a", OriginUnit: "UnitA"},
		{ID: "b", OriginUnit: "UnitB"},
	}}
	s := NewNoteService(repo, &recorder{})

	got, err := s.Inbox(context.Background(), "UnitA")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	// An empty unit never matches anything.
	got, err = s.Inbox(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

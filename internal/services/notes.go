// Package services implements the engine's write and query operations on
// top of the repositories: annotation creation and history, roster
// management with the authentication lookup, and the unit-visibility policy.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmoraes/controlog/internal/common"
	"github.com/dmoraes/controlog/internal/models"
	"github.com/dmoraes/controlog/internal/replication"
	"github.com/dmoraes/controlog/internal/repositories/notes"
)

// Enqueuer is the replication surface the services depend on. Enqueue is
// fire-and-forget: it never blocks and never reports an outcome.
type Enqueuer interface {
	Enqueue(action replication.Action, payload any)
}

// NoteService owns annotation writes and reads.
type NoteService struct {
	repo notes.Repository
	repl Enqueuer

	now   func() time.Time
	newID func() string
}

// NewNoteService wires a NoteService to its repository and replicator.
func NewNoteService(repo notes.Repository, repl Enqueuer) *NoteService {
	return &NoteService{
		repo:  repo,
		repl:  repl,
		now:   time.Now,
		newID: newNoteID,
	}
}

// newNoteID produces a creation-time-ordered unique id, so ids double as a
// tie-breaker when timestamps collide.
func newNoteID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Save validates, completes and persists a note, then hands it to the
// replicator. The note is returned with its assigned id and timestamp.
// Persistence failures propagate; replication never does.
func (s *NoteService) Save(ctx context.Context, n models.Note) (models.Note, error) {
	switch {
	case strings.TrimSpace(n.CTE) == "":
		return models.Note{}, fmt.Errorf("%w: cte", common.ErrValidation)
	case strings.TrimSpace(n.Serie) == "":
		return models.Note{}, fmt.Errorf("%w: serie", common.ErrValidation)
	case strings.TrimSpace(n.User) == "":
		return models.Note{}, fmt.Errorf("%w: user", common.ErrValidation)
	case strings.TrimSpace(n.Content) == "":
		return models.Note{}, fmt.Errorf("%w: content", common.ErrValidation)
	}

	if n.ID == "" {
		n.ID = s.newID()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = s.now()
	}

	if err := s.repo.Insert(ctx, &n); err != nil {
		return models.Note{}, fmt.Errorf("saving note: %w", err)
	}

	s.repl.Enqueue(replication.ActionSaveNote, n)
	return n, nil
}

// History returns every note for one document key, oldest first. Ties on the
// timestamp fall back to the creation-ordered id.
func (s *NoteService) History(ctx context.Context, cte, serie string) ([]models.Note, error) {
	result, err := s.repo.GetByDocument(ctx, cte, serie)
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.Before(result[j].Timestamp)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Inbox returns the notes directed back at originUnit, read fresh on every
// call. An empty unit has an empty inbox.
func (s *NoteService) Inbox(ctx context.Context, originUnit string) ([]models.Note, error) {
	if originUnit == "" {
		return nil, nil
	}
	return s.repo.GetByOriginUnit(ctx, originUnit)
}

// ListAll returns every stored note.
func (s *NoteService) ListAll(ctx context.Context) ([]models.Note, error) {
	return s.repo.GetAll(ctx)
}

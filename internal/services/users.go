package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmoraes/controlog/internal/common"
	"github.com/dmoraes/controlog/internal/models"
	"github.com/dmoraes/controlog/internal/replication"
	"github.com/dmoraes/controlog/internal/repositories/users"
)

// BootstrapUsername is the distinguished administrator account seeded on
// first initialization. The calling layer keeps it out of deletion flows.
const BootstrapUsername = "admin"

// bootstrapSecret is the account's fixed initial secret, carried over from
// the system this replaces.
// TODO: hash roster secrets instead of storing them in clear.
const bootstrapSecret = "02965740155"

// UserService owns the roster: creation, replacement, removal,
// bootstrapping and the authentication lookup.
type UserService struct {
	repo users.Repository
	repl Enqueuer

	newID func() string
}

// NewUserService wires a UserService to its repository and replicator.
func NewUserService(repo users.Repository, repl Enqueuer) *UserService {
	return &UserService{repo: repo, repl: repl, newID: uuid.NewString}
}

// List returns every roster entry.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// Upsert validates and stores a roster entry, replacing any record with the
// same case-folded username, then replicates the write. Regular users must
// carry both unit affiliations; admins may leave them empty.
func (s *UserService) Upsert(ctx context.Context, u models.User) (models.User, error) {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))

	switch {
	case u.Username == "":
		return models.User{}, fmt.Errorf("%w: username", common.ErrValidation)
	case u.Password == "":
		return models.User{}, fmt.Errorf("%w: password", common.ErrValidation)
	case u.Role != models.RoleAdmin && u.Role != models.RoleUser:
		return models.User{}, fmt.Errorf("%w: role %q", common.ErrValidation, u.Role)
	case u.Role == models.RoleUser && (u.UnitOrigin == "" || u.UnitDestination == ""):
		return models.User{}, fmt.Errorf("%w: unit affiliations", common.ErrValidation)
	}

	if u.ID == "" {
		u.ID = s.newID()
	}

	if err := s.repo.Upsert(ctx, &u); err != nil {
		return models.User{}, fmt.Errorf("saving user: %w", err)
	}

	s.repl.Enqueue(replication.ActionCreateUser, u)
	return u, nil
}

// Remove deletes the roster entry with the case-folded username and
// replicates the deletion. Protecting the bootstrap admin is the caller's
// job, not the store's.
func (s *UserService) Remove(ctx context.Context, username string) error {
	username = strings.ToLower(strings.TrimSpace(username))

	if err := s.repo.DeleteByUsername(ctx, username); err != nil {
		return err
	}

	s.repl.Enqueue(replication.ActionDeleteUser, map[string]string{"username": username})
	return nil
}

// EnsureBootstrap seeds the fixed administrator account when the roster is
// empty. Seeding is a local bootstrap, not a user action, so it does not
// replicate. Safe to call on every startup.
func (s *UserService) EnsureBootstrap(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking roster: %w", err)
	}
	if n > 0 {
		return nil
	}

	admin := &models.User{
		ID:       BootstrapUsername,
		Username: BootstrapUsername,
		Password: bootstrapSecret,
		Role:     models.RoleAdmin,
	}
	if err := s.repo.Upsert(ctx, admin); err != nil {
		return fmt.Errorf("seeding bootstrap admin: %w", err)
	}
	return nil
}

// Authenticate looks up a roster entry by case-insensitive username and
// exact secret. The first match wins, which is only a tie-break in case the
// upsert invariant was somehow violated.
func (s *UserService) Authenticate(ctx context.Context, username, secret string) (models.User, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("reading roster: %w", err)
	}

	username = strings.ToLower(strings.TrimSpace(username))
	for _, u := range all {
		if u.Username == username && u.Password == secret {
			return u, nil
		}
	}
	return models.User{}, common.ErrInvalidCredentials
}

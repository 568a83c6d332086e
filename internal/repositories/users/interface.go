package users

import (
	"context"

	"github.com/dmoraes/controlog/internal/models"
)

// Repository is the durable user roster. Usernames arrive already
// normalized (lower case); the repository enforces at most one record per
// username via upsert semantics.
type Repository interface {
	// GetAll lists every roster entry.
	GetAll(ctx context.Context) ([]models.User, error)

	// Upsert inserts the user or replaces the existing record with the same
	// username.
	Upsert(ctx context.Context, u *models.User) error

	// DeleteByUsername removes the record with the exact username.
	// Returns common.ErrNotFound when no such record exists.
	DeleteByUsername(ctx context.Context, username string) error

	// Count reports the number of roster entries.
	Count(ctx context.Context) (int, error)
}

package notes

import (
	"context"

	"github.com/dmoraes/controlog/internal/models"
)

// Repository is the durable annotation collection. It is append-only by
// contract: there is no update or delete. Reads return rows in storage
// order; chronological ordering is the caller's concern.
type Repository interface {
	// Insert appends a note to the collection.
	Insert(ctx context.Context, n *models.Note) error

	// GetAll lists every stored note.
	GetAll(ctx context.Context) ([]models.Note, error)

	// GetByDocument lists the notes attached to one (cte, serie) document key.
	GetByDocument(ctx context.Context, cte, serie string) ([]models.Note, error)

	// GetByOriginUnit lists the notes whose origin unit matches: the inbox
	// feed for that unit.
	GetByOriginUnit(ctx context.Context, unit string) ([]models.Note, error)
}

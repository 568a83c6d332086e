package syncstate

import (
	"context"
	"time"

	"github.com/dmoraes/controlog/internal/models"
)

// Repository holds the single replication-state record: the mirror endpoint
// and the advisory timestamp of the last successful send.
type Repository interface {
	// Get returns the current state. An unconfigured endpoint comes back as
	// an empty URL, not an error.
	Get(ctx context.Context) (models.SyncState, error)

	// SaveEndpoint stores the replication target URL.
	SaveEndpoint(ctx context.Context, url string) error

	// TouchLastSync records the time of a successful send. Advisory only.
	TouchLastSync(ctx context.Context, at time.Time) error
}

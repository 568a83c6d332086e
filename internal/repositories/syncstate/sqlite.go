package syncstate

import (
	"context"
	"fmt"
	"time"

	"github.com/dmoraes/controlog/internal/dbx"
	"github.com/dmoraes/controlog/internal/models"
)

// SQLiteRepository implements Repository over the fixed single-row
// sync_state table seeded by the schema migration.
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository returns a SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (models.SyncState, error) {
	var st models.SyncState
	var last string
	row := r.db.QueryRowContext(ctx, `SELECT endpoint_url, last_sync FROM sync_state WHERE id=1`)
	if err := row.Scan(&st.EndpointURL, &last); err != nil {
		return models.SyncState{}, fmt.Errorf("failed to read sync state: %w", err)
	}
	if last != "" {
		t, err := time.Parse(time.RFC3339Nano, last)
		if err != nil {
			return models.SyncState{}, fmt.Errorf("bad last_sync value %q: %w", last, err)
		}
		st.LastSync = t
	}
	return st, nil
}

func (r *SQLiteRepository) SaveEndpoint(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sync_state SET endpoint_url=? WHERE id=1`, url)
	if err != nil {
		return fmt.Errorf("failed to save endpoint: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) TouchLastSync(ctx context.Context, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sync_state SET last_sync=? WHERE id=1`,
		at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record last sync: %w", err)
	}
	return nil
}

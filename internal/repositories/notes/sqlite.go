package notes

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmoraes/controlog/internal/dbx"
	"github.com/dmoraes/controlog/internal/models"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository returns a SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, n *models.Note) error {
	query := `INSERT INTO notes
		(id, cte, serie, user, content, timestamp, image_url, origin_unit, destination_unit, read_by_origin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.CTE, n.Serie, n.User, n.Content,
		n.Timestamp.UTC().Format(time.RFC3339Nano),
		n.ImageURL, n.OriginUnit, n.DestinationUnit, n.ReadByOrigin)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Note, error) {
	return r.query(ctx, selectColumns+` FROM notes`)
}

func (r *SQLiteRepository) GetByDocument(ctx context.Context, cte, serie string) ([]models.Note, error) {
	return r.query(ctx, selectColumns+` FROM notes WHERE cte=? AND serie=?`, cte, serie)
}

func (r *SQLiteRepository) GetByOriginUnit(ctx context.Context, unit string) ([]models.Note, error) {
	return r.query(ctx, selectColumns+` FROM notes WHERE origin_unit=?`, unit)
}

const selectColumns = `SELECT id, cte, serie, user, content, timestamp, image_url, origin_unit, destination_unit, read_by_origin`

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanNote(rows *sql.Rows) (models.Note, error) {
	var n models.Note
	var ts string
	if err := rows.Scan(&n.ID, &n.CTE, &n.Serie, &n.User, &n.Content, &ts,
		&n.ImageURL, &n.OriginUnit, &n.DestinationUnit, &n.ReadByOrigin); err != nil {
		return models.Note{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return models.Note{}, fmt.Errorf("bad note timestamp %q: %w", ts, err)
	}
	n.Timestamp = t
	return n, nil
}

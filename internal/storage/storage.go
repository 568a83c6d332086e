// Package storage opens the local sqlite database, applies migrations and
// wires the repositories. The local store is the durable source of truth for
// the running client; a failure here is not maskable.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmoraes/controlog/internal/repositories/notes"
	"github.com/dmoraes/controlog/internal/repositories/syncstate"
	"github.com/dmoraes/controlog/internal/repositories/users"
	"github.com/dmoraes/controlog/internal/storage/migrations"
)

// Repositories bundles the engine's three durable stores, all bound to one
// sqlite database.
type Repositories struct {
	Notes     notes.Repository
	Users     users.Repository
	SyncState syncstate.Repository

	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at dsn, runs the
// embedded migrations and returns the wired repositories.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Repositories{
		Notes:     notes.NewSQLiteRepository(db),
		Users:     users.NewSQLiteRepository(db),
		SyncState: syncstate.NewSQLiteRepository(db),
		db:        db,
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.db.Close()
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

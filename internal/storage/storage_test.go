package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoraes/controlog/internal/models"

	_ "modernc.org/sqlite"
)

func TestOpen_MigratesAndWires(t *testing.T) {
	ctx := context.Background()

	repos, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	// All three stores are usable right after Open.
	all, err := repos.Users.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	ns, err := repos.Notes.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, ns)

	st, err := repos.SyncState.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.EndpointURL)
}

func TestOpen_FileDatabaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := t.TempDir() + "/controlog.db"

	repos, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, repos.Users.Upsert(ctx, &models.User{
		ID: "u1", Username: "maria", Password: "pw", Role: models.RoleUser,
	}))
	require.NoError(t, repos.Close())

	// Re-opening must re-run migrations as a no-op and keep the data.
	repos, err = Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	all, err := repos.Users.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "maria", all[0].Username)
}

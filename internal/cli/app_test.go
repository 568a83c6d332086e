package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoraes/controlog/internal/common"
	"github.com/dmoraes/controlog/internal/models"
	"github.com/dmoraes/controlog/internal/replication"
	"github.com/dmoraes/controlog/internal/services"
)

// rosterStub is a map-backed roster repository for shell tests.
type rosterStub struct {
	byName map[string]models.User
}

func newRosterStub(users ...models.User) *rosterStub {
	m := make(map[string]models.User, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &rosterStub{byName: m}
}

func (r *rosterStub) GetAll(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.byName))
	for _, u := range r.byName {
		out = append(out, u)
	}
	return out, nil
}

func (r *rosterStub) Upsert(ctx context.Context, u *models.User) error {
	r.byName[u.Username] = *u
	return nil
}

func (r *rosterStub) DeleteByUsername(ctx context.Context, username string) error {
	if _, ok := r.byName[username]; !ok {
		return common.ErrNotFound
	}
	delete(r.byName, username)
	return nil
}

func (r *rosterStub) Count(ctx context.Context) (int, error) {
	return len(r.byName), nil
}

// dropEnqueuer discards replication jobs.
type dropEnqueuer struct{}

func (dropEnqueuer) Enqueue(action replication.Action, payload any) {}

func newUserApp(repo *rosterStub, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		users:  services.NewUserService(repo, dropEnqueuer{}),
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
	}, &out
}

// The bootstrap administrator stays protected however the username is
// typed: lookups fold case, so the guard has to fold along with them.
func TestDelUser_BootstrapGuardFoldsCase(t *testing.T) {
	for _, input := range []string{"admin\n", "Admin\n", " ADMIN \n"} {
		repo := newRosterStub(models.User{Username: services.BootstrapUsername, Role: models.RoleAdmin})
		app, out := newUserApp(repo, input)

		require.NoError(t, app.DelUser(context.Background()))

		assert.Contains(t, out.String(), "cannot be deleted")
		_, ok := repo.byName[services.BootstrapUsername]
		assert.True(t, ok, "bootstrap admin deleted for input %q", input)
	}
}

func TestDelUser_RemovesOtherUsers(t *testing.T) {
	repo := newRosterStub(
		models.User{Username: services.BootstrapUsername, Role: models.RoleAdmin},
		models.User{Username: "joana", Role: models.RoleUser},
	)
	app, out := newUserApp(repo, "Joana\n")

	require.NoError(t, app.DelUser(context.Background()))

	assert.Contains(t, out.String(), "deleted")
	_, ok := repo.byName["joana"]
	assert.False(t, ok)
	_, ok = repo.byName[services.BootstrapUsername]
	assert.True(t, ok)
}

func TestDelUser_UnknownUser(t *testing.T) {
	repo := newRosterStub(models.User{Username: services.BootstrapUsername, Role: models.RoleAdmin})
	app, out := newUserApp(repo, "ghost\n")

	require.NoError(t, app.DelUser(context.Background()))
	assert.Contains(t, out.String(), "No such user")
}

// Package cli is the interactive shell over the pendency engine. It owns no
// business rules beyond one calling convention: the bootstrap administrator
// cannot be deleted from here.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmoraes/controlog/internal/common"
	"github.com/dmoraes/controlog/internal/config"
	"github.com/dmoraes/controlog/internal/feed"
	"github.com/dmoraes/controlog/internal/logging"
	"github.com/dmoraes/controlog/internal/models"
	"github.com/dmoraes/controlog/internal/repositories/syncstate"
	"github.com/dmoraes/controlog/internal/services"
	"github.com/dmoraes/controlog/internal/timex"
)

// App holds the wired services plus the current session.
type App struct {
	feed   *feed.Service
	notes  *services.NoteService
	users  *services.UserService
	states syncstate.Repository
	policy services.Policy
	log    logging.Logger

	current *models.User
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp wires the shell. The visibility policy comes from configuration and
// is validated here, before any session starts.
func NewApp(cfg *config.Config, fd *feed.Service, notes *services.NoteService,
	users *services.UserService, states syncstate.Repository, log logging.Logger) (*App, error) {

	policy, err := services.ParsePolicy(cfg.VisibilityPolicy)
	if err != nil {
		return nil, err
	}

	return &App{
		feed:   fd,
		notes:  notes,
		users:  users,
		states: states,
		policy: policy,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the command loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) isLoggedIn() bool { return a.current != nil }

func (a *App) isAdmin() bool {
	return a.current != nil && a.current.Role == models.RoleAdmin
}

func (a *App) Login(ctx context.Context) error {
	username, err := promptLine(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	secret, err := promptSecret("Password", a.out)
	if err != nil {
		return err
	}

	u, err := a.users.Authenticate(ctx, username, secret)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid username or password.")
			return nil
		}
		return err
	}
	a.current = &u
	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", u.Username, u.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.current = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Items fetches the feed and lists the items visible to the current user.
func (a *App) Items(ctx context.Context) error {
	res, err := a.feed.FetchPendingItems(ctx)
	if err != nil {
		return err
	}

	visible := services.FilterItems(res.Items, *a.current, a.policy)
	if len(visible) == 0 {
		fmt.Fprintln(a.out, "No pending items.")
		return nil
	}
	for _, item := range visible {
		flag := " "
		if item.HasNotes {
			flag = "*"
		}
		fmt.Fprintf(a.out, "%s %s/%s  %-12s  %s -> %s  deadline %s  (%s)\n",
			flag, item.CTE, item.Serie, item.ComputedStatus,
			item.OriginUnit, item.DestinationUnit, item.Deadline, item.Consignee)
	}
	return nil
}

// Stalled lists the chronically stalled subset, admins only.
func (a *App) Stalled(ctx context.Context) error {
	res, err := a.feed.FetchPendingItems(ctx)
	if err != nil {
		return err
	}
	if len(res.StalledItems) == 0 {
		fmt.Fprintln(a.out, "No stalled items.")
		return nil
	}
	for _, item := range res.StalledItems {
		fmt.Fprintf(a.out, "%s/%s  %d days past deadline (%s)  %s -> %s\n",
			item.CTE, item.Serie, item.DaysStalled, item.Deadline,
			item.OriginUnit, item.DestinationUnit)
	}
	return nil
}

// Inbox lists notes directed back at the user's origin unit.
func (a *App) Inbox(ctx context.Context) error {
	inbox, err := a.notes.Inbox(ctx, a.current.UnitOrigin)
	if err != nil {
		return err
	}
	if len(inbox) == 0 {
		fmt.Fprintln(a.out, "Inbox is empty.")
		return nil
	}
	for _, n := range inbox {
		fmt.Fprintf(a.out, "[%s] %s/%s %s: %s\n",
			n.Timestamp.Local().Format("02/01/2006 15:04"), n.CTE, n.Serie, n.User, n.Content)
	}
	return nil
}

// History shows the chronological annotation trail of one document.
func (a *App) History(ctx context.Context) error {
	cte, err := promptLine(a.reader, "Document number", a.out)
	if err != nil {
		return err
	}
	serie, err := promptLine(a.reader, "Serie", a.out)
	if err != nil {
		return err
	}

	history, err := a.notes.History(ctx, cte, serie)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Fprintln(a.out, "No annotations for this document.")
		return nil
	}
	for _, n := range history {
		fmt.Fprintf(a.out, "[%s] %s: %s\n",
			n.Timestamp.Local().Format("02/01/2006 15:04"), n.User, n.Content)
		if n.ImageURL != "" {
			fmt.Fprintln(a.out, "  (has attached image)")
		}
	}
	return nil
}

// AddNote creates an annotation against a document key.
func (a *App) AddNote(ctx context.Context) error {
	cte, err := promptLine(a.reader, "Document number", a.out)
	if err != nil {
		return err
	}
	serie, err := promptLine(a.reader, "Serie", a.out)
	if err != nil {
		return err
	}
	content, err := promptMultiline(a.reader, "Justification", a.out)
	if err != nil {
		return err
	}

	n := models.Note{
		CTE:             cte,
		Serie:           serie,
		User:            a.current.Username,
		Content:         content,
		OriginUnit:      a.current.UnitOrigin,
		DestinationUnit: a.current.UnitDestination,
	}
	saved, err := a.notes.Save(ctx, n)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Fprintf(a.out, "Cannot save: %v\n", err)
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "Annotation %s saved at %s.\n", saved.ID, timex.FormatDate(saved.Timestamp))
	return nil
}

// Users lists the roster (admin).
func (a *App) Users(ctx context.Context) error {
	all, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range all {
		fmt.Fprintf(a.out, "%-20s %-6s origin=%s destination=%s\n",
			u.Username, u.Role, u.UnitOrigin, u.UnitDestination)
	}
	return nil
}

// AddUser creates or replaces a roster entry (admin).
func (a *App) AddUser(ctx context.Context) error {
	username, err := promptLine(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	secret, err := promptSecret("Password", a.out)
	if err != nil {
		return err
	}
	role, err := promptLine(a.reader, "Role (ADMIN/USER)", a.out)
	if err != nil {
		return err
	}
	origin, err := promptLine(a.reader, "Origin unit", a.out)
	if err != nil {
		return err
	}
	destination, err := promptLine(a.reader, "Destination unit", a.out)
	if err != nil {
		return err
	}

	u := models.User{
		Username:        username,
		Password:        secret,
		Role:            models.Role(role),
		UnitOrigin:      origin,
		UnitDestination: destination,
	}
	saved, err := a.users.Upsert(ctx, u)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Fprintf(a.out, "Cannot save: %v\n", err)
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "User %s saved.\n", saved.Username)
	return nil
}

// DelUser removes a roster entry (admin). The bootstrap administrator is
// protected here, by calling convention.
func (a *App) DelUser(ctx context.Context) error {
	username, err := promptLine(a.reader, "Username to delete", a.out)
	if err != nil {
		return err
	}
	// Usernames are case-insensitive, so the guard folds before comparing.
	username = strings.ToLower(strings.TrimSpace(username))
	if username == services.BootstrapUsername {
		fmt.Fprintln(a.out, "The bootstrap administrator cannot be deleted.")
		return nil
	}

	if err := a.users.Remove(ctx, username); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintf(a.out, "No such user: %s\n", username)
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "User %s deleted.\n", username)
	return nil
}

// Endpoint shows or updates the replication target (admin).
func (a *App) Endpoint(ctx context.Context) error {
	st, err := a.states.Get(ctx)
	if err != nil {
		return err
	}
	if st.EndpointURL == "" {
		fmt.Fprintln(a.out, "Replication endpoint: (not configured)")
	} else {
		fmt.Fprintf(a.out, "Replication endpoint: %s\n", st.EndpointURL)
		if !st.LastSync.IsZero() {
			fmt.Fprintf(a.out, "Last successful send: %s\n", st.LastSync.Local())
		}
	}

	url, err := promptLine(a.reader, "New endpoint URL (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if url == "" {
		return nil
	}
	if err := a.states.SaveEndpoint(ctx, url); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Endpoint updated.")
	return nil
}

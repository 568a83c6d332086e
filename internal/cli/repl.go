package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// executor is the command surface the REPL dispatches to. App satisfies it;
// tests can substitute a stub.
type executor interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Items(ctx context.Context) error
	Stalled(ctx context.Context) error
	Inbox(ctx context.Context) error
	History(ctx context.Context) error
	AddNote(ctx context.Context) error
	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	DelUser(ctx context.Context) error
	Endpoint(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them. Handler errors
// are reported and the loop continues; the loop exits on EOF or "exit".
func runREPL(ctx context.Context, a executor, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprint(out, "controlog> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)
		if cmd == "" {
			continue
		}

		if cmd == "exit" || cmd == "quit" {
			return
		}
		if cmd == "help" {
			printHelp(a, out)
			continue
		}

		if err := dispatch(ctx, a, cmd); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func dispatch(ctx context.Context, a executor, cmd string) error {
	if !a.isLoggedIn() {
		if cmd == "login" {
			return a.Login(ctx)
		}
		return fmt.Errorf("please login first (unknown command %q)", cmd)
	}

	switch cmd {
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "items":
		return a.Items(ctx)
	case "inbox":
		return a.Inbox(ctx)
	case "history":
		return a.History(ctx)
	case "note":
		return a.AddNote(ctx)
	}

	if a.isAdmin() {
		switch cmd {
		case "stalled":
			return a.Stalled(ctx)
		case "users":
			return a.Users(ctx)
		case "adduser":
			return a.AddUser(ctx)
		case "deluser":
			return a.DelUser(ctx)
		case "endpoint":
			return a.Endpoint(ctx)
		}
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func printHelp(a executor, out io.Writer) {
	if !a.isLoggedIn() {
		fmt.Fprintln(out, "Commands: login, help, exit")
		return
	}
	fmt.Fprintln(out, "Commands: items, inbox, history, note, logout, help, exit")
	if a.isAdmin() {
		fmt.Fprintln(out, "Admin:    stalled, users, adduser, deluser, endpoint")
	}
}

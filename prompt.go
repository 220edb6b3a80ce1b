package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"sports-unit/sports"
)

var errNoInput = errors.New("no input")

// prompt prints label and returns the next trimmed input line.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", errNoInput
	}
	return strings.TrimSpace(a.in.Text()), nil
}

// readPassword reads a password without echo when stdin is a terminal and
// falls back to a plain line otherwise (pipes, tests).
func (a *app) readPassword(label string) (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return a.prompt(label)
}

// login resolves a session for username. An empty username takes the
// limited-view path without asking for a password.
func (a *app) login(username string) (*sports.Session, error) {
	if username == "" {
		return a.facility.Users.Guest(), nil
	}
	password, err := a.readPassword(fmt.Sprintf("Password for %s: ", username))
	if err != nil {
		return nil, err
	}
	return a.facility.Users.Login(username, password)
}

// adminLogin is login for commands that change records.
func (a *app) adminLogin(username string) (*sports.Session, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: pass --user with an admin account", sports.ErrForbidden)
	}
	s, err := a.login(username)
	if err != nil {
		return nil, err
	}
	if err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	return s, nil
}

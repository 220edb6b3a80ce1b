package sports

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Directory stores accounts and resolves sessions.
//
// Passwords are stored and compared as plain text unless hashing was enabled
// when the Facility was opened. Plain storage is insecure and kept only so
// databases written by the earlier tool keep working.
type Directory struct {
	db       *Database
	log      zerolog.Logger
	validate *validator.Validate
	hash     bool
}

type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func newDirectory(db *Database, log zerolog.Logger, hash bool) *Directory {
	return &Directory{
		db:       db,
		log:      log.With().Str("component", "users").Logger(),
		validate: newValidator(),
		hash:     hash,
	}
}

// Upsert creates the user or overwrites the password and role of an existing
// one. An empty role means RoleStudent.
func (d *Directory) Upsert(username, password string, role Role) error {
	if err := check(d.validate, credentials{Username: username, Password: password}); err != nil {
		return err
	}
	if role == RoleNone {
		role = RoleStudent
	}

	stored := password
	if d.hash {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		stored = string(h)
	}

	if err := d.db.UpsertUser(&User{Username: username, Password: stored, Role: role}); err != nil {
		return fmt.Errorf("upsert user %q: %w", username, err)
	}
	d.log.Info().Str("username", username).Str("role", string(role)).Msg("user saved")
	return nil
}

// Authenticate returns the user when both username and password match.
// Every mismatch yields ErrAuthFailure.
func (d *Directory) Authenticate(username, password string) (*User, error) {
	u, err := d.db.GetUser(username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAuthFailure
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !passwordMatches(u.Password, password) {
		return nil, ErrAuthFailure
	}
	return u, nil
}

// passwordMatches compares against a bcrypt hash when one is stored, and
// byte-for-byte otherwise.
func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// RoleOf looks up the role of username. ok is false when the user does not
// exist.
func (d *Directory) RoleOf(username string) (role Role, ok bool, err error) {
	u, err := d.db.GetUser(username)
	if errors.Is(err, ErrNotFound) {
		return RoleNone, false, nil
	}
	if err != nil {
		return RoleNone, false, fmt.Errorf("role of %q: %w", username, err)
	}
	return u.Role, true, nil
}

// Login authenticates and resolves the session used for the rest of the run.
func (d *Directory) Login(username, password string) (*Session, error) {
	u, err := d.Authenticate(username, password)
	if err != nil {
		d.log.Warn().Msg("login failed")
		return nil, err
	}
	s := &Session{ID: uuid.New(), Username: u.Username, Role: u.Role}
	d.log.Info().Str("session", s.ID.String()).Str("username", s.Username).Msg("logged in")
	return s, nil
}

// Guest returns the session of a caller who skipped login.
func (d *Directory) Guest() *Session {
	return &Session{ID: uuid.New(), Role: RoleNone}
}

// List returns every account. Passwords are included; callers must not
// display them.
func (d *Directory) List() ([]*User, error) {
	users, err := d.db.GetAllUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

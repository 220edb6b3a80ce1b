package sports

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role decides which projection of the equipment table a caller may see.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	// RoleNone is the role of a caller who skipped login.
	RoleNone Role = ""
)

// IsAdmin reports whether r grants the full equipment view.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Equipment is a single row of the sports_equipment table.
type Equipment struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Equipment string          `json:"equipment"`
	Quantity  int64           `json:"quantity"`
	Sport     string          `json:"sport"`
	Price     decimal.Decimal `json:"price"`
}

// EquipmentView is the limited projection shown to non-admin callers.
// It deliberately has no ID, Name or Price.
type EquipmentView struct {
	Equipment string `json:"equipment"`
	Quantity  int64  `json:"quantity"`
	Sport     string `json:"sport"`
}

// Row is one line of an equipment listing, ready for display.
type Row interface {
	Values() []string
}

func (e *Equipment) Values() []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.Name,
		e.Equipment,
		strconv.FormatInt(e.Quantity, 10),
		e.Sport,
		e.Price.StringFixed(2),
	}
}

func (v EquipmentView) Values() []string {
	return []string{v.Equipment, strconv.FormatInt(v.Quantity, 10), v.Sport}
}

var (
	adminColumns   = []string{"ID", "Name", "Equipment", "Quantity Available", "Sport", "Price"}
	limitedColumns = []string{"Equipment", "Quantity Available", "Sport"}
)

// Columns returns the table headings matching ListAll(role).
func Columns(role Role) []string {
	if role.IsAdmin() {
		return append([]string(nil), adminColumns...)
	}
	return append([]string(nil), limitedColumns...)
}

// User is a registered account. Password holds whatever was stored: plain
// text by default, a bcrypt hash when hashing is enabled.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// Session is the caller identity resolved once at login and passed to every
// inventory read afterwards.
type Session struct {
	ID       uuid.UUID
	Username string
	Role     Role
}

// IsGuest reports whether the session was opened without logging in.
func (s *Session) IsGuest() bool { return s == nil || s.Username == "" }

// RequireAdmin returns ErrForbidden unless the session belongs to an admin.
func (s *Session) RequireAdmin() error {
	if s == nil || !s.Role.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// Booking is one reserved arena slot. Bookings have no identity; identical
// rows are allowed.
type Booking struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Time  string `json:"time" validate:"required"`
	Arena string `json:"arena" validate:"required,arena"`
}

// arenas lists the venues that can be booked, in menu order.
var arenas = []string{
	"Unit Sukan",
	"Football Field",
	"Tennis Court",
	"Badminton Court",
	"Mini Stadium",
}

// Arenas returns the bookable venues.
func Arenas() []string { return append([]string(nil), arenas...) }

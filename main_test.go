package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-unit/sports"
)

type harness struct {
	dbPath, bookingsPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SPORTS_SEED_ADMIN_USER", "anis")
	t.Setenv("SPORTS_SEED_ADMIN_PASSWORD", "497144")
	t.Setenv("SPORTS_LOG_LEVEL", "error")
	return &harness{dbPath: filepath.Join(dir, "sports.db"), bookingsPath: filepath.Join(dir, "events.csv")}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--db", h.dbPath, "--bookings", h.bookingsPath}, args...)
	err := run(args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), err
}

func TestBookingCommands(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "booking", "add", "2024-05-01", "10:00", "Tennis Court")
	require.NoError(t, err)
	assert.Contains(t, out, "Event booked successfully.")

	_, err = h.run(t, "", "booking", "add", "2024-05-01", "10:00", "Car Park")
	require.ErrorIs(t, err, sports.ErrValidation)

	out, err = h.run(t, "", "booking", "list")
	require.NoError(t, err)
	assert.Equal(t, "Date: 2024-05-01\nTime: 10:00\nArena: Tennis Court\n\n", out)

	out, err = h.run(t, "", "booking", "arenas")
	require.NoError(t, err)
	assert.Contains(t, out, "5. Mini Stadium")
}

func TestEquipmentCommandsRespectRole(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "497144\n", "equipment", "add", "--user", "anis", "Hall store", "Racket", "6", "Tennis", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "Added equipment ID 1.")
	assert.Contains(t, out, "Price")
	assert.Contains(t, out, "Hall store")

	out, err = h.run(t, "", "equipment", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Racket")
	assert.NotContains(t, out, "Price")
	assert.NotContains(t, out, "Hall store")
	assert.NotContains(t, out, "120.00")

	_, err = h.run(t, "wrong\n", "equipment", "list", "--user", "anis")
	assert.ErrorIs(t, err, sports.ErrAuthFailure)

	_, err = h.run(t, "", "equipment", "delete", "1")
	assert.ErrorIs(t, err, sports.ErrForbidden)

	out, err = h.run(t, "497144\n", "equipment", "update", "--user", "anis", "1", "Main store", "4", "Tennis")
	require.NoError(t, err)
	assert.Contains(t, out, "Main store")

	_, err = h.run(t, "497144\n", "equipment", "delete", "--user", "anis", "7")
	assert.ErrorIs(t, err, sports.ErrNotFound)

	out, err = h.run(t, "497144\n", "equipment", "delete", "--user", "anis", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No equipment recorded.")
}

func TestUserCommands(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "497144\nkick\n", "user", "set", "--user", "anis", "amir")
	require.NoError(t, err)

	// Students are limited viewers and cannot manage accounts.
	_, err = h.run(t, "kick\n", "user", "list", "--user", "amir")
	assert.ErrorIs(t, err, sports.ErrForbidden)

	out, err := h.run(t, "497144\n", "user", "list", "--user", "anis")
	require.NoError(t, err)
	assert.Contains(t, out, "amir")
	assert.Contains(t, out, "student")
	assert.NotContains(t, out, "kick")
}

func TestInteractiveMenu(t *testing.T) {
	h := newHarness(t)

	script := strings.Join([]string{
		"anis", "nope", // failed login, asked again
		"anis", "497144",
		"add equipment", "Store", "Ball", "ten", "Netball", "5",
		"add equipment", "Store", "Ball", "10", "Netball", "5",
		"update equipment", "99",
		"book arena", "2024-07-01", "09:00", "2",
		"list bookings",
		"exit",
	}, "\n") + "\n"

	out, err := h.run(t, script)
	require.NoError(t, err)
	assert.Contains(t, out, "Login failed: invalid username or password")
	assert.Contains(t, out, "Logged in as anis (admin).")
	assert.Contains(t, out, "Invalid input: quantity must be a whole number")
	assert.Contains(t, out, "Added equipment ID 1.")
	assert.Contains(t, out, "That equipment record no longer exists.")
	assert.Contains(t, out, "Arena: Football Field")
	assert.Contains(t, out, "Goodbye!")
}

func TestInteractiveMenuGuest(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "\nadd equipment\nlist equipment\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Limited view.")
	assert.Contains(t, out, "Only admins can do that.")
	assert.Contains(t, out, "No equipment recorded.")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))

	// Multi-byte names are cut on rune boundaries.
	got := truncateString("Bola Sépak Stor Utama", 10)
	assert.Equal(t, "Bola Sé...", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Sépak", truncateString("Sépak", 5))
}

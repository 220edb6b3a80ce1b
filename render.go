package main

import (
	"fmt"
	"io"
	"strings"

	"sports-unit/sports"
)

const columnWidth = 20

// printEquipment renders rows with the heading set that matches role.
func printEquipment(w io.Writer, role sports.Role, rows []sports.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No equipment recorded.")
		return
	}
	printTable(w, sports.Columns(role), rows)
}

func printTable(w io.Writer, headings []string, rows []sports.Row) {
	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprintf("%-*s", columnWidth, truncateString(c, columnWidth))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, " "), " "))
	}

	line(headings)
	fmt.Fprintln(w, strings.Repeat("-", len(headings)*(columnWidth+1)-1))
	for _, r := range rows {
		line(r.Values())
	}
}

func printBookings(w io.Writer, bookings []sports.Booking) {
	if len(bookings) == 0 {
		fmt.Fprintln(w, "No bookings yet.")
		return
	}
	for _, b := range bookings {
		fmt.Fprintf(w, "Date: %s\nTime: %s\nArena: %s\n\n", b.Date, b.Time, b.Arena)
	}
}

// truncateString shortens s to maxLength runes.
func truncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(r[:maxLength])
	}
	return string(r[:maxLength-3]) + "..."
}

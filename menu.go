package main

import (
	"errors"
	"fmt"
	"strconv"

	"sports-unit/sports"
)

// runMenu is the interactive session started when no subcommand is given.
func (a *app) runMenu() error {
	fmt.Fprintln(a.out, "Welcome to the Sports Unit system!")

	s, err := a.menuLogin()
	if err != nil {
		if errors.Is(err, errNoInput) {
			return nil
		}
		return err
	}

	a.printMenuHelp(s)
	for {
		cmd, err := a.prompt("\n> ")
		if errors.Is(err, errNoInput) {
			return nil
		}
		if err != nil {
			return err
		}

		switch cmd {
		case "list equipment":
			a.report(a.showEquipment(s))
		case "add equipment":
			a.report(a.handleAddEquipment(s))
		case "update equipment":
			a.report(a.handleUpdateEquipment(s))
		case "delete equipment":
			a.report(a.handleDeleteEquipment(s))
		case "book arena":
			a.report(a.handleBookArena())
		case "list bookings":
			printBookings(a.out, a.facility.Bookings.Bookings())
		case "help":
			a.printMenuHelp(s)
		case "exit":
			fmt.Fprintln(a.out, "Goodbye!")
			return nil
		case "":
			continue
		default:
			fmt.Fprintln(a.out, "Unknown command. Type 'help' to see the available commands.")
		}
	}
}

// menuLogin keeps asking until the user logs in or skips with a blank
// username.
func (a *app) menuLogin() (*sports.Session, error) {
	for {
		username, err := a.prompt("Username (press Enter to skip, not an admin): ")
		if err != nil {
			return nil, err
		}
		s, err := a.login(username)
		if errors.Is(err, sports.ErrAuthFailure) {
			fmt.Fprintln(a.out, "Login failed: invalid username or password")
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.IsGuest() {
			fmt.Fprintln(a.out, "Limited view.")
		} else {
			fmt.Fprintf(a.out, "Logged in as %s (%s).\n", s.Username, s.Role)
		}
		return s, nil
	}
}

func (a *app) printMenuHelp(s *sports.Session) {
	fmt.Fprintln(a.out, "Available commands:")
	if s.Role.IsAdmin() {
		fmt.Fprintln(a.out, "  Equipment: list equipment, add equipment, update equipment, delete equipment")
	} else {
		fmt.Fprintln(a.out, "  Equipment: list equipment")
	}
	fmt.Fprintln(a.out, "  Bookings: book arena, list bookings")
	fmt.Fprintln(a.out, "  System: help, exit")
}

// report prints a failed operation inline; the menu keeps running.
func (a *app) report(err error) {
	if err == nil {
		return
	}
	var ve *sports.ValidationError
	switch {
	case errors.As(err, &ve):
		fmt.Fprintf(a.out, "Invalid input: %v\n", ve)
	case errors.Is(err, sports.ErrNotFound):
		fmt.Fprintln(a.out, "That equipment record no longer exists.")
	case errors.Is(err, sports.ErrForbidden):
		fmt.Fprintln(a.out, "Only admins can do that.")
	case errors.Is(err, errNoInput):
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *app) handleAddEquipment(s *sports.Session) error {
	if err := s.RequireAdmin(); err != nil {
		return err
	}
	name, err := a.prompt("Name: ")
	if err != nil {
		return err
	}
	equipment, err := a.prompt("Equipment: ")
	if err != nil {
		return err
	}
	quantity, err := a.prompt("Quantity available: ")
	if err != nil {
		return err
	}
	sport, err := a.prompt("Sport: ")
	if err != nil {
		return err
	}
	price, err := a.prompt("Price: ")
	if err != nil {
		return err
	}

	e, err := a.facility.Inventory.Create(name, equipment, quantity, sport, price)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added equipment ID %d.\n", e.ID)
	return a.showEquipment(s)
}

func (a *app) handleUpdateEquipment(s *sports.Session) error {
	if err := s.RequireAdmin(); err != nil {
		return err
	}
	id, err := a.promptID()
	if err != nil {
		return err
	}
	current, err := a.facility.Inventory.Get(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Editing '%s' (%s, %s). Equipment type and price stay as they are.\n",
		current.Name, current.Equipment, current.Sport)

	name, err := a.prompt("Name: ")
	if err != nil {
		return err
	}
	quantity, err := a.prompt("Quantity available: ")
	if err != nil {
		return err
	}
	sport, err := a.prompt("Sport: ")
	if err != nil {
		return err
	}

	if err := a.facility.Inventory.Update(id, name, quantity, sport); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated equipment ID %d.\n", id)
	return a.showEquipment(s)
}

func (a *app) handleDeleteEquipment(s *sports.Session) error {
	if err := s.RequireAdmin(); err != nil {
		return err
	}
	id, err := a.promptID()
	if err != nil {
		return err
	}
	if err := a.facility.Inventory.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted equipment ID %d.\n", id)
	return a.showEquipment(s)
}

func (a *app) handleBookArena() error {
	date, err := a.prompt("Date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	time, err := a.prompt("Time (HH:MM): ")
	if err != nil {
		return err
	}

	arenas := a.facility.Bookings.Arenas()
	for i, name := range arenas {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, name)
	}
	choice, err := a.prompt("Arena number: ")
	if err != nil {
		return err
	}
	arena := choice
	if n, convErr := strconv.Atoi(choice); convErr == nil && n >= 1 && n <= len(arenas) {
		arena = arenas[n-1]
	}

	if _, err := a.facility.Bookings.Add(date, time, arena); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Event booked successfully.")
	return nil
}

func (a *app) promptID() (int64, error) {
	raw, err := a.prompt("Equipment ID: ")
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &sports.ValidationError{Field: "id", Reason: "must be a whole number"}
	}
	return id, nil
}

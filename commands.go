package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sports-unit/sports"
)

func newEquipmentCmd(a *app) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "List and maintain the equipment inventory",
	}
	cmd.PersistentFlags().StringVarP(&username, "user", "u", "", "log in as this user (empty for the limited view)")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show equipment; admins see every column",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, err := a.login(username)
			if err != nil {
				return err
			}
			return a.showEquipment(s)
		},
	}

	add := &cobra.Command{
		Use:   "add <name> <equipment> <quantity> <sport> <price>",
		Short: "Add an equipment record (admin)",
		Args:  cobra.ExactArgs(5),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := a.adminLogin(username)
			if err != nil {
				return err
			}
			e, err := a.facility.Inventory.Create(args[0], args[1], args[2], args[3], args[4])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added equipment ID %d.\n", e.ID)
			return a.showEquipment(s)
		},
	}

	update := &cobra.Command{
		Use:   "update <id> <name> <quantity> <sport>",
		Short: "Change name, quantity and sport of a record (admin)",
		Args:  cobra.ExactArgs(4),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.adminLogin(username)
			if err != nil {
				return err
			}
			if err := a.facility.Inventory.Update(id, args[1], args[2], args[3]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated equipment ID %d.\n", id)
			return a.showEquipment(s)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an equipment record (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.adminLogin(username)
			if err != nil {
				return err
			}
			if err := a.facility.Inventory.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted equipment ID %d.\n", id)
			return a.showEquipment(s)
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

func newUserCmd(a *app) *cobra.Command {
	var (
		username string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts (admin)",
	}
	cmd.PersistentFlags().StringVarP(&username, "user", "u", "", "admin account to log in as")

	set := &cobra.Command{
		Use:   "set <username>",
		Short: "Create an account or replace its password and role",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := a.adminLogin(username); err != nil {
				return err
			}
			password, err := a.readPassword(fmt.Sprintf("New password for %s: ", args[0]))
			if err != nil {
				return err
			}
			if err := a.facility.Users.Upsert(args[0], password, sports.Role(role)); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved account '%s'.\n", args[0])
			return nil
		},
	}
	set.Flags().StringVar(&role, "role", string(sports.RoleStudent), "role for the account (admin or student)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts and their roles",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if _, err := a.adminLogin(username); err != nil {
				return err
			}
			users, err := a.facility.Users.List()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%-30s %-10s\n", "Username", "Role")
			fmt.Fprintln(a.out, "----------------------------------------")
			for _, u := range users {
				fmt.Fprintf(a.out, "%-30s %-10s\n", truncateString(u.Username, 30), u.Role)
			}
			return nil
		},
	}

	cmd.AddCommand(set, list)
	return cmd
}

func newBookingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Book arenas and list bookings",
	}

	add := &cobra.Command{
		Use:   "add <date YYYY-MM-DD> <time HH:MM> <arena>",
		Short: "Book an arena",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := a.facility.Bookings.Add(args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Event booked successfully.")
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show booked events",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			printBookings(a.out, a.facility.Bookings.Bookings())
			return nil
		},
	}

	arenas := &cobra.Command{
		Use:   "arenas",
		Short: "Show the arenas that can be booked",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for i, name := range a.facility.Bookings.Arenas() {
				fmt.Fprintf(a.out, "%d. %s\n", i+1, name)
			}
			return nil
		},
	}

	cmd.AddCommand(add, list, arenas)
	return cmd
}

// showEquipment re-reads the table so what is printed matches storage.
func (a *app) showEquipment(s *sports.Session) error {
	rows, err := a.facility.Inventory.ListAll(s.Role)
	if err != nil {
		return err
	}
	printEquipment(a.out, s.Role, rows)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, &sports.ValidationError{Field: "id", Reason: "must be a positive whole number"}
	}
	return id, nil
}

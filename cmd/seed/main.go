package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sports-unit/internal/config"
	"sports-unit/internal/logger"
	"sports-unit/sports"
)

type options struct {
	fresh         bool
	adminUser     string
	adminPassword string
	equipmentCSV  string
}

func main() {
	if err := newSeedCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Prepare the inventory database: admin account and equipment import",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(context.Background())
			if err != nil {
				return err
			}
			return seed(cmd.OutOrStdout(), cfg, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "remove the existing database files first")
	cmd.Flags().StringVar(&opts.adminUser, "admin-user", "", "admin account to create or reset")
	cmd.Flags().StringVar(&opts.adminPassword, "admin-password", "", "password for --admin-user")
	cmd.Flags().StringVar(&opts.equipmentCSV, "equipment", "", "CSV file with name,equipment,quantity,sport,price rows")
	cmd.MarkFlagsRequiredTogether("admin-user", "admin-password")
	return cmd
}

func seed(out io.Writer, cfg *config.Config, opts options) error {
	if opts.fresh {
		fmt.Fprintln(out, "Cleaning up existing database files...")
		for _, file := range []string{cfg.DBPath, cfg.DBPath + "-shm", cfg.DBPath + "-wal"} {
			if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(out, "Warning: Could not remove %s: %v\n", file, err)
			}
		}
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	facility, err := sports.Open(sports.Options{
		DBPath:        cfg.DBPath,
		BookingsPath:  cfg.BookingsPath,
		HashPasswords: cfg.HashPasswords,
		Logger:        &log,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer facility.Close()

	if opts.adminUser != "" {
		if err := facility.Users.Upsert(opts.adminUser, opts.adminPassword, sports.RoleAdmin); err != nil {
			return err
		}
		fmt.Fprintf(out, "Admin account '%s' ready.\n", opts.adminUser)
	}

	if opts.equipmentCSV == "" {
		return nil
	}
	f, err := os.Open(opts.equipmentCSV)
	if err != nil {
		return err
	}
	defer f.Close()

	imported, failed, err := importEquipment(out, facility.Inventory, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nImport complete!\n")
	fmt.Fprintf(out, "Successfully imported: %d items\n", imported)
	fmt.Fprintf(out, "Errors: %d\n", failed)
	return nil
}

// importEquipment adds one record per CSV row. Rows that fail validation are
// reported and skipped; a malformed file stops the import.
func importEquipment(out io.Writer, inv *sports.Inventory, r io.Reader) (imported, failed int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 5
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, 0, fmt.Errorf("read equipment csv: %w", err)
	}
	if len(records) > 0 && strings.EqualFold(records[0][0], "name") {
		records = records[1:]
	}

	for i, rec := range records {
		fmt.Fprintf(out, "Importing: %s (%s)... ", rec[1], rec[3])
		e, err := inv.Create(rec[0], rec[1], rec[2], rec[3], rec[4])
		if err != nil {
			fmt.Fprintf(out, "ERROR - row %d: %v\n", i+1, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "SUCCESS (ID: %d)\n", e.ID)
		imported++
	}
	return imported, failed, nil
}

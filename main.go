package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sports-unit/internal/config"
	"sports-unit/internal/logger"
	"sports-unit/sports"
)

// app carries what every command needs. It is filled in by PersistentPreRunE
// and closed by run.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	facility *sports.Facility

	in  *bufio.Scanner
	out io.Writer
	// stdin is consulted to decide whether passwords can be read without echo.
	stdin io.Reader
}

type flags struct {
	dbPath       string
	bookingsPath string
	logLevel     string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one CLI invocation and always releases the database,
// including when the command fails.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "sports",
		Short:         "Sports unit arena bookings and equipment inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd, f)
		},
		RunE: func(*cobra.Command, []string) error {
			return a.runMenu()
		},
	}

	root.PersistentFlags().StringVar(&f.dbPath, "db", "", "SQLite database file (overrides SPORTS_DB_PATH)")
	root.PersistentFlags().StringVar(&f.bookingsPath, "bookings", "", "bookings CSV file (overrides SPORTS_BOOKINGS_PATH)")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "trace, debug, info, warn or error (overrides SPORTS_LOG_LEVEL)")

	root.AddCommand(
		newEquipmentCmd(a),
		newUserCmd(a),
		newBookingCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, f flags) error {
	cfg, err := config.Load(context.Background())
	if err != nil {
		return err
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}
	if f.bookingsPath != "" {
		cfg.BookingsPath = f.bookingsPath
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}

	a.cfg = cfg
	a.log = logger.New(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Output: cmd.ErrOrStderr()})
	a.stdin = cmd.InOrStdin()
	a.in = bufio.NewScanner(a.stdin)
	a.out = cmd.OutOrStdout()

	facility, err := sports.Open(sports.Options{
		DBPath:        cfg.DBPath,
		BookingsPath:  cfg.BookingsPath,
		HashPasswords: cfg.HashPasswords,
		Logger:        &a.log,
	})
	if err != nil {
		a.log.Error().Err(err).Str("db", cfg.DBPath).Msg("cannot open inventory database")
		return fmt.Errorf("opening database: %w", err)
	}
	if cfg.Admin.Enabled() {
		if err := facility.Users.Upsert(cfg.Admin.Username, cfg.Admin.Password, sports.RoleAdmin); err != nil {
			facility.Close()
			return fmt.Errorf("seeding admin account: %w", err)
		}
	}
	a.facility = facility
	return nil
}

func (a *app) close() error {
	if a.facility == nil {
		return nil
	}
	err := a.facility.Close()
	a.facility = nil
	return err
}

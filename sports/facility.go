package sports

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options configures Open.
type Options struct {
	// DBPath is the SQLite file holding equipment and users.
	DBPath string
	// BookingsPath is the CSV file holding arena bookings.
	BookingsPath string
	// HashPasswords stores new passwords as bcrypt hashes. Existing plain
	// text rows still authenticate.
	HashPasswords bool
	// Fs is where the bookings file lives. Defaults to the OS filesystem.
	Fs afero.Fs
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Facility owns the storage handle and the three record keepers built on it.
// Open it once at start-up and Close it on exit.
type Facility struct {
	Inventory *Inventory
	Users     *Directory
	Bookings  *Ledger

	db *Database
}

// Open opens the database, loads the booking ledger and wires the components.
// A database that cannot be opened or migrated is an error; a bad bookings
// file is not.
func Open(opts Options) (*Facility, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	db, err := NewDatabase(opts.DBPath)
	if err != nil {
		return nil, err
	}

	ledger := NewLedger(fsys, opts.BookingsPath, log)
	if _, err := ledger.LoadAll(); err != nil {
		db.Close()
		return nil, err
	}

	return &Facility{
		Inventory: newInventory(db, log),
		Users:     newDirectory(db, log, opts.HashPasswords),
		Bookings:  ledger,
		db:        db,
	}, nil
}

// Close closes the underlying database.
func (f *Facility) Close() error { return f.db.Close() }

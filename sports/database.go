package sports

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// Database provides high-level helpers around the SQLite connection that
// holds equipment and user records.
type Database struct {
	db *sql.DB

	insertEquipmentStmt *sql.Stmt
	upsertUserStmt      *sql.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One interactive user, one connection.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("database %s: %w", dbPath, err)
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	if d.insertEquipmentStmt != nil {
		d.insertEquipmentStmt.Close()
	}
	if d.upsertUserStmt != nil {
		d.upsertUserStmt.Close()
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}

	var current int
	err := db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Table layouts match databases written by the earlier desktop tool, so
	// an existing sports_inventory.db opens as-is.
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sports_equipment (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            equipment TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            sport TEXT NOT NULL,
            price REAL NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT NOT NULL,
            password TEXT NOT NULL,
            role TEXT NOT NULL
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username);`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.insertEquipmentStmt, err = d.db.Prepare(
		`INSERT INTO sports_equipment(name,equipment,quantity,sport,price) VALUES(?,?,?,?,?)`); err != nil {
		return err
	}
	if d.upsertUserStmt, err = d.db.Prepare(`INSERT INTO users(username,password,role) VALUES(?,?,?)
        ON CONFLICT(username) DO UPDATE SET password=excluded.password, role=excluded.role`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Equipment
// ---------------------------------------------------------------------------

// InsertEquipment stores e and returns the id SQLite assigned to it.
func (d *Database) InsertEquipment(e *Equipment) (int64, error) {
	res, err := d.insertEquipmentStmt.Exec(e.Name, e.Equipment, e.Quantity, e.Sport, e.Price.InexactFloat64())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *Database) GetEquipment(id int64) (*Equipment, error) {
	var (
		e     Equipment
		price float64
	)
	err := d.db.QueryRow(`SELECT id,name,equipment,quantity,sport,price FROM sports_equipment WHERE id=?`, id).
		Scan(&e.ID, &e.Name, &e.Equipment, &e.Quantity, &e.Sport, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if e.Price, err = priceFromREAL(price); err != nil {
		return nil, fmt.Errorf("equipment %d: %w", e.ID, err)
	}
	return &e, nil
}

// GetAllEquipment returns every column of every row in id order.
func (d *Database) GetAllEquipment() ([]*Equipment, error) {
	rows, err := d.db.Query(`SELECT id,name,equipment,quantity,sport,price FROM sports_equipment ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Equipment
	for rows.Next() {
		var (
			e     Equipment
			price float64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Equipment, &e.Quantity, &e.Sport, &price); err != nil {
			return nil, err
		}
		p, err := priceFromREAL(price)
		if err != nil {
			return nil, fmt.Errorf("equipment %d: %w", e.ID, err)
		}
		e.Price = p
		items = append(items, &e)
	}
	return items, rows.Err()
}

// priceFromREAL converts a stored price, refusing values a decimal cannot hold.
func priceFromREAL(f float64) (decimal.Decimal, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, fmt.Errorf("stored price %v is not a finite number", f)
	}
	return decimal.NewFromFloat(f), nil
}

// GetEquipmentViews selects only the columns limited viewers may see.
func (d *Database) GetEquipmentViews() ([]EquipmentView, error) {
	rows, err := d.db.Query(`SELECT equipment,quantity,sport FROM sports_equipment ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []EquipmentView
	for rows.Next() {
		var v EquipmentView
		if err := rows.Scan(&v.Equipment, &v.Quantity, &v.Sport); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// UpdateEquipment overwrites name, quantity and sport of row id.
func (d *Database) UpdateEquipment(id int64, name string, quantity int64, sport string) error {
	result, err := d.db.Exec(`UPDATE sports_equipment SET name=?, quantity=?, sport=? WHERE id=?`, name, quantity, sport, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (d *Database) DeleteEquipment(id int64) error {
	result, err := d.db.Exec(`DELETE FROM sports_equipment WHERE id=?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// UpsertUser inserts the user or replaces password and role of an existing
// username.
func (d *Database) UpsertUser(u *User) error {
	_, err := d.upsertUserStmt.Exec(u.Username, u.Password, string(u.Role))
	return err
}

// GetUser fetches a user by username.
func (d *Database) GetUser(username string) (*User, error) {
	var (
		u    User
		role string
	)
	err := d.db.QueryRow(`SELECT username,password,role FROM users WHERE username=?`, username).
		Scan(&u.Username, &u.Password, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = Role(role)
	return &u, nil
}

// GetAllUsers returns all users ordered by username.
func (d *Database) GetAllUsers() ([]*User, error) {
	rows, err := d.db.Query(`SELECT username,password,role FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var (
			u    User
			role string
		)
		if err := rows.Scan(&u.Username, &u.Password, &role); err != nil {
			return nil, err
		}
		u.Role = Role(role)
		users = append(users, &u)
	}
	return users, rows.Err()
}

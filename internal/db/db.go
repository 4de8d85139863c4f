package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/VoxDroid/cookme/internal/config"
)

// dsnPragmas are applied to every pooled connection by the driver.
// Transactions begin IMMEDIATE so a writer that reads first waits on
// busy_timeout instead of failing with SQLITE_BUSY when it upgrades.
const dsnPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"

// readOnlyDSN opens an existing file without creating it or taking write locks.
const readOnlyDSN = "mode=ro&_pragma=busy_timeout(5000)"

// ErrNotCatalog is returned by OpenReadOnly for a file that is not a cookme
// database.
var ErrNotCatalog = errors.New("not a cookme database")

// catalogTables must all exist for a file to count as a cookme database.
var catalogTables = []string{"ingredients", "recipes", "recipe_ingredients"}

// InitDB ensures the data directory exists, opens the SQLite database, and
// creates the schema if it does not exist.
func InitDB() (*sql.DB, error) {
	dbPath, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return Open(dbPath)
}

// Open opens the SQLite database at path and applies migrations.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?"+dsnPragmas)
	if err != nil {
		return nil, err
	}
	if err := ApplyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenReadOnly opens the existing cookme database at path. Nothing is
// created or migrated: a missing file is an error and a SQLite file without
// the catalog tables yields ErrNotCatalog.
func OpenReadOnly(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", "file:"+path+"?"+readOnlyDSN)
	if err != nil {
		return nil, err
	}
	var n int
	row := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN (?, ?, ?)",
		catalogTables[0], catalogTables[1], catalogTables[2])
	if err := row.Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if n != len(catalogTables) {
		db.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotCatalog)
	}
	return db, nil
}

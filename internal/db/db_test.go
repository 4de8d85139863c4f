package db

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/VoxDroid/cookme/internal/config"
)

func TestInitDBCreatesFileAndSchema(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(config.EnvCookmeDB, "")
	t.Setenv(config.EnvCookmeHome, tmp)

	dbPath, err := config.DBPath()
	if err != nil {
		t.Fatalf("DBPath(): %v", err)
	}

	db, err := InitDB()
	if err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db file not created: %v", err)
	}

	for _, table := range []string{"ingredients", "units", "recipes", "recipe_ingredients", "fridges", "fridge_ingredients", "fridge_recipes"} {
		var count int
		r := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", table)
		if err := r.Scan(&count); err != nil {
			t.Fatalf("query schema: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected table %q to exist", table)
		}
	}

	// Basic smoke test: ensure we can insert an ingredient
	if _, err := db.Exec("INSERT INTO ingredients (name, category) VALUES (?, ?)", "Meat", "Meat"); err != nil {
		t.Fatalf("insert ingredient failed: %v", err)
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	db := openTemp(t)
	if err := ApplyMigrations(db); err != nil {
		t.Fatalf("second ApplyMigrations: %v", err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTemp(t)
	if _, err := db.Exec("INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity) VALUES (999, 999, 1)"); err == nil {
		t.Fatalf("expected foreign key violation for dangling recipe ingredient")
	}
}

func TestSchemaCarriesLateColumns(t *testing.T) {
	db := openTemp(t)
	for _, c := range []struct{ table, column string }{{"recipes", "cuisine"}, {"fridges", "visible"}} {
		var n int
		row := db.QueryRow("SELECT count(*) FROM pragma_table_info(?) WHERE name = ?", c.table, c.column)
		if err := row.Scan(&n); err != nil {
			t.Fatalf("table_info(%s): %v", c.table, err)
		}
		if n != 1 {
			t.Fatalf("expected column %s.%s", c.table, c.column)
		}
	}
}

func TestOpenReadOnly_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.db")
	if _, err := OpenReadOnly(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("OpenReadOnly created %s", path)
	}
}

func TestOpenReadOnly_ForeignDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	other, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := other.Exec("CREATE TABLE notes (body TEXT)"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = other.Close()

	if _, err := OpenReadOnly(path); !errors.Is(err, ErrNotCatalog) {
		t.Fatalf("expected ErrNotCatalog, got %v", err)
	}

	other, err = sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = other.Close() }()
	var n int
	if err := other.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'table'").Scan(&n); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if n != 1 {
		t.Fatalf("foreign database was modified: %d tables", n)
	}
}

func TestOpenReadOnly_GarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not a database at all, just some text padding it out"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenReadOnly(path); err == nil {
		t.Fatalf("expected error for a non-SQLite file")
	}
}

func TestOpenReadOnly_Catalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookme.db")
	rw, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := rw.Exec("INSERT INTO ingredients (name) VALUES ('Lemon')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_ = rw.Close()

	ro, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly: %v", err)
	}
	defer func() { _ = ro.Close() }()
	var n int
	if err := ro.QueryRow("SELECT count(*) FROM ingredients").Scan(&n); err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}
	if _, err := ro.Exec("INSERT INTO ingredients (name) VALUES ('Meat')"); err == nil {
		t.Fatalf("expected write on a read-only handle to fail")
	}
}

// Read-then-write transactions from many connections must queue on the
// write lock rather than fail.
func TestConcurrentReadThenWriteTransactions(t *testing.T) {
	db := openTemp(t)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			trx, err := db.Begin()
			if err != nil {
				errs <- err
				return
			}
			defer func() { _ = trx.Rollback() }()
			var n int
			if err := trx.QueryRow("SELECT count(*) FROM units").Scan(&n); err != nil {
				errs <- err
				return
			}
			if _, err := trx.Exec("INSERT INTO units (name) VALUES (?)", "unit-"+string(rune('a'+n))); err != nil {
				errs <- err
				return
			}
			errs <- trx.Commit()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent transaction: %v", err)
		}
	}
	var n int
	if err := db.QueryRow("SELECT count(*) FROM units").Scan(&n); err != nil || n != 16 {
		t.Fatalf("units = %d, %v", n, err)
	}
}

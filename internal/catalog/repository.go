package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var (
	// ErrNotFound is returned when a recipe, fridge or ingredient does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateIngredient is returned when a recipe lists an ingredient twice.
	ErrDuplicateIngredient = errors.New("ingredients should be distinct")
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository provides storage operations for the recipe catalog and fridges.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the underlying DB connection used by the Repository.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// InList is the right-hand side of an IN over a list bound as one JSON
// array argument (see ListArg). The list length is not limited by SQLite's
// cap on bound variables.
const InList = "(SELECT value FROM json_each(?))"

// ListArg encodes values as the single argument InList expects.
func ListArg[T string | int64](values []T) (string, error) {
	if values == nil {
		values = []T{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode list argument: %w", err)
	}
	return string(b), nil
}

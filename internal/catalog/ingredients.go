package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/VoxDroid/cookme/internal/nameutil"
	"github.com/VoxDroid/cookme/internal/query"
)

// canonicalIngredientName sanitises, validates and title-cases name.
func canonicalIngredientName(name string) (string, error) {
	clean, _ := nameutil.SanitizeName(name)
	if err := nameutil.ValidateName(clean); err != nil {
		return "", err
	}
	return nameutil.Capitalize(clean), nil
}

// GetOrCreateIngredient returns the ingredient called name, creating it with
// category when absent. The lookup is keyed on the title-cased name and is
// safe against concurrent callers creating the same ingredient.
func (r *Repository) GetOrCreateIngredient(ctx context.Context, name, category string) (Ingredient, error) {
	return getOrCreateIngredient(ctx, r.db, name, category)
}

func getOrCreateIngredient(ctx context.Context, q dbtx, name, category string) (Ingredient, error) {
	canonical, err := canonicalIngredientName(name)
	if err != nil {
		return Ingredient{}, err
	}
	// The unique index on name makes this a no-op when the row exists.
	if _, err := q.ExecContext(ctx, "INSERT OR IGNORE INTO ingredients (name, category) VALUES (?, ?)", canonical, strings.TrimSpace(category)); err != nil {
		return Ingredient{}, fmt.Errorf("insert ingredient: %w", err)
	}
	var ing Ingredient
	row := q.QueryRowContext(ctx, "SELECT id, name, category FROM ingredients WHERE name = ?", canonical)
	if err := row.Scan(&ing.ID, &ing.Name, &ing.Category); err != nil {
		return Ingredient{}, fmt.Errorf("select ingredient: %w", err)
	}
	return ing, nil
}

// GetIngredient looks an ingredient up by name without creating it.
func (r *Repository) GetIngredient(ctx context.Context, name string) (Ingredient, error) {
	var ing Ingredient
	row := r.db.QueryRowContext(ctx, "SELECT id, name, category FROM ingredients WHERE name = ?", nameutil.Capitalize(name))
	if err := row.Scan(&ing.ID, &ing.Name, &ing.Category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Ingredient{}, fmt.Errorf("ingredient %q: %w", name, ErrNotFound)
		}
		return Ingredient{}, err
	}
	return ing, nil
}

// ListIngredients returns the whole catalog ordered by name.
func (r *Repository) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, category FROM ingredients ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// Resolution splits a name set into catalog ingredients and unknown names.
type Resolution struct {
	Known   []Ingredient
	Unknown []string
}

// ResolveNames maps names to existing catalog ingredients. It never creates
// ingredients and unknown names are reported, not treated as errors.
func (r *Repository) ResolveNames(ctx context.Context, names query.NameSet) (Resolution, error) {
	var res Resolution
	if names.Empty() {
		return res, nil
	}
	list := names.Names()
	arg, err := ListArg(list)
	if err != nil {
		return res, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, category FROM ingredients WHERE name IN "+InList+" ORDER BY id ASC", arg)
	if err != nil {
		return res, fmt.Errorf("resolve ingredient names: %w", err)
	}
	defer func() { _ = rows.Close() }()
	found := query.NewNameSet()
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category); err != nil {
			return res, err
		}
		res.Known = append(res.Known, ing)
		found.Add(ing.Name)
	}
	if err := rows.Err(); err != nil {
		return res, err
	}
	for _, n := range list {
		if !found.Has(n) {
			res.Unknown = append(res.Unknown, n)
		}
	}
	return res, nil
}

// GetOrCreateUnit returns the unit called name, creating it when absent.
func (r *Repository) GetOrCreateUnit(ctx context.Context, u Unit) (Unit, error) {
	return getOrCreateUnit(ctx, r.db, u)
}

func getOrCreateUnit(ctx context.Context, q dbtx, u Unit) (Unit, error) {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return Unit{}, fmt.Errorf("invalid unit: name cannot be empty")
	}
	if _, err := q.ExecContext(ctx, "INSERT OR IGNORE INTO units (name, abbrev, plural, description) VALUES (?, ?, ?, ?)",
		name, u.Abbrev, u.Plural, u.Description); err != nil {
		return Unit{}, fmt.Errorf("insert unit: %w", err)
	}
	var out Unit
	row := q.QueryRowContext(ctx, "SELECT id, name, COALESCE(abbrev, ''), COALESCE(plural, ''), COALESCE(description, '') FROM units WHERE name = ?", name)
	if err := row.Scan(&out.ID, &out.Name, &out.Abbrev, &out.Plural, &out.Description); err != nil {
		return Unit{}, fmt.Errorf("select unit: %w", err)
	}
	return out, nil
}

// unitID resolves an optional unit name to a nullable id.
func unitID(ctx context.Context, q dbtx, name string) (sql.NullInt64, error) {
	if strings.TrimSpace(name) == "" {
		return sql.NullInt64{}, nil
	}
	u, err := getOrCreateUnit(ctx, q, Unit{Name: name})
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: u.ID, Valid: true}, nil
}

// ListUnits returns all units ordered by name.
func (r *Repository) ListUnits(ctx context.Context) ([]Unit, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, COALESCE(abbrev, ''), COALESCE(plural, ''), COALESCE(description, '') FROM units ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Abbrev, &u.Plural, &u.Description); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

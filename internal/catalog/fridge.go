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

const fridgeColumns = "id, owner, visible, created_at"

func scanFridge(s scanner) (Fridge, error) {
	var f Fridge
	var visible int
	if err := s.Scan(&f.ID, &f.Owner, &visible, &f.CreatedAt); err != nil {
		return Fridge{}, err
	}
	f.Visible = visible != 0
	return f, nil
}

// GetOrCreateFridge returns owner's fridge, creating an empty one on first access.
func (r *Repository) GetOrCreateFridge(ctx context.Context, owner string) (Fridge, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return Fridge{}, fmt.Errorf("invalid fridge owner: owner cannot be empty")
	}
	if _, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO fridges (owner, created_at) VALUES (?, datetime('now'))", owner); err != nil {
		return Fridge{}, fmt.Errorf("insert fridge: %w", err)
	}
	return r.GetFridge(ctx, owner)
}

// GetFridge returns owner's fridge or ErrNotFound.
func (r *Repository) GetFridge(ctx context.Context, owner string) (Fridge, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+fridgeColumns+" FROM fridges WHERE owner = ?", strings.TrimSpace(owner))
	f, err := scanFridge(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Fridge{}, fmt.Errorf("fridge of %q: %w", owner, ErrNotFound)
		}
		return Fridge{}, err
	}
	return f, nil
}

// SetFridgeVisible toggles whether a fridge is shown to other users.
func (r *Repository) SetFridgeVisible(ctx context.Context, fridgeID int64, visible bool) error {
	v := 0
	if visible {
		v = 1
	}
	res, err := r.db.ExecContext(ctx, "UPDATE fridges SET visible = ? WHERE id = ?", v, fridgeID)
	if err != nil {
		return err
	}
	return requireAffected(res, fmt.Sprintf("fridge %d", fridgeID))
}

// AddFridgeIngredient puts quantity of name into the fridge. If the fridge
// already holds the ingredient its quantity is incremented instead, in a
// single statement so concurrent adds never create a second row.
func (r *Repository) AddFridgeIngredient(ctx context.Context, fridgeID int64, name, category string, quantity float64, unit string) (FridgeIngredient, error) {
	if quantity < 0 {
		return FridgeIngredient{}, fmt.Errorf("invalid quantity %v: must not be negative", quantity)
	}
	trx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return FridgeIngredient{}, err
	}
	defer func() { _ = trx.Rollback() }()

	ing, err := getOrCreateIngredient(ctx, trx, name, category)
	if err != nil {
		return FridgeIngredient{}, err
	}
	uid, err := unitID(ctx, trx, unit)
	if err != nil {
		return FridgeIngredient{}, err
	}
	if _, err := trx.ExecContext(ctx, `INSERT INTO fridge_ingredients (fridge_id, ingredient_id, quantity, unit_id)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (fridge_id, ingredient_id)
			DO UPDATE SET quantity = fridge_ingredients.quantity + excluded.quantity,
				unit_id = COALESCE(fridge_ingredients.unit_id, excluded.unit_id)`,
		fridgeID, ing.ID, quantity, uid); err != nil {
		return FridgeIngredient{}, fmt.Errorf("upsert fridge ingredient: %w", err)
	}
	items, err := listFridgeIngredients(ctx, trx, fridgeID, "AND fi.ingredient_id = ?", ing.ID)
	if err != nil {
		return FridgeIngredient{}, err
	}
	if err := trx.Commit(); err != nil {
		return FridgeIngredient{}, err
	}
	if len(items) == 0 {
		return FridgeIngredient{}, fmt.Errorf("fridge ingredient %s: %w", ing.Name, ErrNotFound)
	}
	return items[0], nil
}

// RemoveFridgeIngredient deletes the inventory row for name.
func (r *Repository) RemoveFridgeIngredient(ctx context.Context, fridgeID int64, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fridge_ingredients
		WHERE fridge_id = ? AND ingredient_id IN (SELECT id FROM ingredients WHERE name = ?)`,
		fridgeID, nameutil.Capitalize(name))
	if err != nil {
		return err
	}
	return requireAffected(res, fmt.Sprintf("fridge ingredient %q", name))
}

// ListFridgeIngredients returns a fridge's inventory ordered by ingredient name.
func (r *Repository) ListFridgeIngredients(ctx context.Context, fridgeID int64) ([]FridgeIngredient, error) {
	return listFridgeIngredients(ctx, r.db, fridgeID, "")
}

func listFridgeIngredients(ctx context.Context, q dbtx, fridgeID int64, extra string, args ...any) ([]FridgeIngredient, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT i.id, i.name, i.category, fi.quantity, COALESCE(u.name, '')
		FROM fridge_ingredients fi
		JOIN ingredients i ON i.id = fi.ingredient_id
		LEFT JOIN units u ON u.id = fi.unit_id
		WHERE fi.fridge_id = ? `+extra+`
		ORDER BY i.name ASC`, append([]any{fridgeID}, args...)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []FridgeIngredient
	for rows.Next() {
		var fi FridgeIngredient
		if err := rows.Scan(&fi.IngredientID, &fi.Name, &fi.Category, &fi.Quantity, &fi.Unit); err != nil {
			return nil, err
		}
		out = append(out, fi)
	}
	return out, rows.Err()
}

// FridgeIngredientNames returns the names of everything in the fridge's
// inventory, ready to be used as matching input.
func (r *Repository) FridgeIngredientNames(ctx context.Context, fridgeID int64) (query.NameSet, error) {
	items, err := r.ListFridgeIngredients(ctx, fridgeID)
	if err != nil {
		return query.NameSet{}, err
	}
	names := query.NewNameSet()
	for _, it := range items {
		names.Add(it.Name)
	}
	return names, nil
}

// AddRecipeToFridge links an existing recipe to the fridge. Adding a recipe
// twice is a no-op.
func (r *Repository) AddRecipeToFridge(ctx context.Context, fridgeID int64, slug string) error {
	res, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO fridge_recipes (fridge_id, recipe_id)
		SELECT ?, id FROM recipes WHERE slug = ?`, fridgeID, slug)
	if err != nil {
		return fmt.Errorf("link recipe: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// either already linked or no such recipe
		if _, err := r.GetRecipeBySlug(ctx, slug); err != nil {
			return err
		}
	}
	return nil
}

// RemoveRecipeFromFridge unlinks a recipe from the fridge. The recipe itself
// stays in the catalog.
func (r *Repository) RemoveRecipeFromFridge(ctx context.Context, fridgeID int64, slug string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fridge_recipes
		WHERE fridge_id = ? AND recipe_id IN (SELECT id FROM recipes WHERE slug = ?)`, fridgeID, slug)
	if err != nil {
		return err
	}
	return requireAffected(res, fmt.Sprintf("recipe %q in fridge", slug))
}

// ListFridgeRecipes returns the recipes linked to the fridge in creation order.
func (r *Repository) ListFridgeRecipes(ctx context.Context, fridgeID int64) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+RecipeColumns+`
		FROM recipes r
		JOIN fridge_recipes fr ON fr.recipe_id = r.id
		WHERE fr.fridge_id = ?
		ORDER BY r.id ASC`, fridgeID)
	if err != nil {
		return nil, err
	}
	return ScanRecipes(rows)
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

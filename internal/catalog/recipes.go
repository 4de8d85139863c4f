package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/VoxDroid/cookme/internal/nameutil"
	"github.com/VoxDroid/cookme/internal/validation"
)

// RecipeColumns selects a recipe row aliased as r in the order ScanRecipe expects.
const RecipeColumns = "r.id, r.slug, r.title, r.author, COALESCE(r.description, ''), COALESCE(r.cuisine, ''), COALESCE(r.steps, ''), r.created_at"

type scanner interface {
	Scan(dest ...any) error
}

// ScanRecipe scans one row selected with RecipeColumns.
func ScanRecipe(s scanner) (Recipe, error) {
	var rc Recipe
	var steps string
	if err := s.Scan(&rc.ID, &rc.Slug, &rc.Title, &rc.Author, &rc.Description, &rc.Cuisine, &steps, &rc.CreatedAt); err != nil {
		return Recipe{}, err
	}
	rc.Steps = splitSteps(steps)
	return rc, nil
}

// ScanRecipes drains rows selected with RecipeColumns and closes them.
func ScanRecipes(rows *sql.Rows) ([]Recipe, error) {
	defer func() { _ = rows.Close() }()
	out := []Recipe{}
	for rows.Next() {
		rc, err := ScanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func splitSteps(steps string) []string {
	var out []string
	for _, s := range strings.Split(steps, "\n") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CreateRecipe stores a recipe with its ingredient lines in one transaction.
// Ingredients and units are created on demand. The slug is derived from the
// title and suffixed with -2, -3, ... when taken.
func (r *Repository) CreateRecipe(ctx context.Context, in NewRecipe) (Recipe, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	if verr := validation.ValidateStruct(&in); verr != nil {
		return Recipe{}, verr
	}

	trx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Recipe{}, err
	}
	defer func() { _ = trx.Rollback() }()

	slug, err := uniqueSlugTx(ctx, trx, nameutil.Slugify(in.Title))
	if err != nil {
		return Recipe{}, err
	}
	res, err := trx.ExecContext(ctx, `INSERT INTO recipes (slug, title, author, description, cuisine, steps, created_at)
			VALUES (?, ?, ?, ?, ?, ?, datetime('now'))`,
		slug, in.Title, in.Author, in.Description, in.Cuisine, strings.Join(in.Steps, "\n"))
	if err != nil {
		return Recipe{}, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Recipe{}, err
	}

	seen := make(map[int64]bool, len(in.Ingredients))
	for _, line := range in.Ingredients {
		ing, err := getOrCreateIngredient(ctx, trx, line.Name, line.Category)
		if err != nil {
			return Recipe{}, err
		}
		if seen[ing.ID] {
			return Recipe{}, fmt.Errorf("%w: %s", ErrDuplicateIngredient, ing.Name)
		}
		seen[ing.ID] = true
		uid, err := unitID(ctx, trx, line.Unit)
		if err != nil {
			return Recipe{}, err
		}
		if _, err := trx.ExecContext(ctx, "INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit_id) VALUES (?, ?, ?, ?)",
			id, ing.ID, line.Quantity, uid); err != nil {
			return Recipe{}, fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}

	rc, err := getRecipe(ctx, trx, "r.id = ?", id)
	if err != nil {
		return Recipe{}, err
	}
	if err := trx.Commit(); err != nil {
		return Recipe{}, err
	}
	return rc, nil
}

func uniqueSlugTx(ctx context.Context, trx *sql.Tx, base string) (string, error) {
	slug := base
	for n := 2; ; n++ {
		var exists int
		err := trx.QueryRowContext(ctx, "SELECT 1 FROM recipes WHERE slug = ?", slug).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// GetRecipeBySlug returns the recipe and its ingredient lines.
func (r *Repository) GetRecipeBySlug(ctx context.Context, slug string) (Recipe, error) {
	return getRecipe(ctx, r.db, "r.slug = ?", slug)
}

func getRecipe(ctx context.Context, q dbtx, where string, arg any) (Recipe, error) {
	row := q.QueryRowContext(ctx, "SELECT "+RecipeColumns+" FROM recipes r WHERE "+where, arg)
	rc, err := ScanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recipe{}, fmt.Errorf("recipe %v: %w", arg, ErrNotFound)
		}
		return Recipe{}, err
	}
	recipes := []Recipe{rc}
	if err := attachIngredients(ctx, q, recipes); err != nil {
		return Recipe{}, err
	}
	return recipes[0], nil
}

// FindRecipe returns the first recipe author stored under title.
func (r *Repository) FindRecipe(ctx context.Context, title, author string) (Recipe, error) {
	title, author = strings.TrimSpace(title), strings.TrimSpace(author)
	var id int64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM recipes WHERE title = ? AND author = ? ORDER BY id ASC LIMIT 1", title, author).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return Recipe{}, fmt.Errorf("recipe %q by %s: %w", title, author, ErrNotFound)
	}
	if err != nil {
		return Recipe{}, err
	}
	return getRecipe(ctx, r.db, "r.id = ?", id)
}

// ListRecipes returns all recipes in creation order, without ingredient lines.
func (r *Repository) ListRecipes(ctx context.Context) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+RecipeColumns+" FROM recipes r ORDER BY r.id ASC")
	if err != nil {
		return nil, err
	}
	return ScanRecipes(rows)
}

// AttachIngredients loads the ingredient lines of every recipe in one query,
// however many recipes there are.
func (r *Repository) AttachIngredients(ctx context.Context, recipes []Recipe) error {
	return attachIngredients(ctx, r.db, recipes)
}

func attachIngredients(ctx context.Context, q dbtx, recipes []Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	index := make(map[int64]int, len(recipes))
	ids := make([]int64, len(recipes))
	for i, rc := range recipes {
		index[rc.ID] = i
		ids[i] = rc.ID
		recipes[i].Ingredients = nil
	}
	arg, err := ListArg(ids)
	if err != nil {
		return err
	}
	rows, err := q.QueryContext(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.category, ri.quantity, COALESCE(u.name, '')
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		LEFT JOIN units u ON u.id = ri.unit_id
		WHERE ri.recipe_id IN `+InList+`
		ORDER BY ri.recipe_id ASC, ri.id ASC`, arg)
	if err != nil {
		return fmt.Errorf("load recipe ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var recipeID int64
		var line RecipeIngredient
		if err := rows.Scan(&recipeID, &line.IngredientID, &line.Name, &line.Category, &line.Quantity, &line.Unit); err != nil {
			return err
		}
		i := index[recipeID]
		recipes[i].Ingredients = append(recipes[i].Ingredients, line)
	}
	return rows.Err()
}

// DeleteRecipe removes a recipe, its ingredient lines and its fridge links.
func (r *Repository) DeleteRecipe(ctx context.Context, slug string) error {
	trx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	var id int64
	if err := trx.QueryRowContext(ctx, "SELECT id FROM recipes WHERE slug = ?", slug).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("recipe %q: %w", slug, ErrNotFound)
		}
		return err
	}
	for _, stmt := range []string{
		"DELETE FROM recipe_ingredients WHERE recipe_id = ?",
		"DELETE FROM fridge_recipes WHERE recipe_id = ?",
		"DELETE FROM recipes WHERE id = ?",
	} {
		if _, err := trx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	return trx.Commit()
}

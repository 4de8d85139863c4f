// Package matcher finds the recipes compatible with a set of ingredient names.
//
// Both policies are evaluated inside SQLite: subset matching as a single
// exclusion over the ingredients outside the set, superset matching as a
// join with a grouped distinct count. Results are always in recipe creation
// order. The engine holds no state between calls and never writes.
package matcher

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/VoxDroid/cookme/internal/catalog"
	"github.com/VoxDroid/cookme/internal/query"
)

// Querier is the read access the engine needs; *sql.DB and *sql.Tx satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Engine evaluates matching policies against the recipe catalog.
type Engine struct {
	q Querier
}

// New returns an Engine reading through q.
func New(q Querier) *Engine {
	return &Engine{q: q}
}

// Subset returns every recipe in scope whose ingredients all belong to names.
// A recipe without ingredients matches any non-empty set. Names unknown to
// the catalog are ignored.
func (e *Engine) Subset(ctx context.Context, names query.NameSet, scope Scope) ([]catalog.Recipe, error) {
	if names.Empty() {
		return []catalog.Recipe{}, nil
	}
	args, err := nameArgs(names)
	if err != nil {
		return nil, err
	}
	where, scopeArgs := scope.clause()
	args = append(args, scopeArgs...)

	q := `SELECT ` + catalog.RecipeColumns + `
		FROM recipes r
		WHERE NOT EXISTS (
			SELECT 1 FROM recipe_ingredients ri
			JOIN ingredients i ON i.id = ri.ingredient_id
			WHERE ri.recipe_id = r.id
			AND i.name NOT IN ` + catalog.InList + `
		)` + where + `
		ORDER BY r.id ASC`
	return e.run(ctx, "subset", q, args)
}

// Superset returns every recipe in scope that uses all of names, and possibly
// more. A name unknown to the catalog can never be covered, so it empties the
// result.
func (e *Engine) Superset(ctx context.Context, names query.NameSet, scope Scope) ([]catalog.Recipe, error) {
	if names.Empty() {
		return []catalog.Recipe{}, nil
	}
	args, err := nameArgs(names)
	if err != nil {
		return nil, err
	}
	where, scopeArgs := scope.clause()
	args = append(args, scopeArgs...)
	args = append(args, names.Len())

	q := `SELECT ` + catalog.RecipeColumns + `
		FROM recipes r
		JOIN recipe_ingredients ri ON ri.recipe_id = r.id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE i.name IN ` + catalog.InList + where + `
		GROUP BY r.id
		HAVING COUNT(DISTINCT i.id) = ?
		ORDER BY r.id ASC`
	return e.run(ctx, "superset", q, args)
}

// Match dispatches to Subset or Superset.
func (e *Engine) Match(ctx context.Context, policy Policy, names query.NameSet, scope Scope) ([]catalog.Recipe, error) {
	switch policy {
	case PolicySubset:
		return e.Subset(ctx, names, scope)
	case PolicySuperset:
		return e.Superset(ctx, names, scope)
	default:
		return nil, fmt.Errorf("unknown match policy %q", string(policy))
	}
}

func (e *Engine) run(ctx context.Context, name, q string, args []any) ([]catalog.Recipe, error) {
	rows, err := e.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s match: %w", name, err)
	}
	recipes, err := catalog.ScanRecipes(rows)
	if err != nil {
		return nil, fmt.Errorf("%s match: %w", name, err)
	}
	return recipes, nil
}

// nameArgs binds the whole name set as the one argument of catalog.InList.
func nameArgs(names query.NameSet) ([]any, error) {
	arg, err := catalog.ListArg(names.Names())
	if err != nil {
		return nil, err
	}
	return []any{arg}, nil
}

// Policy selects how a name set is compared with a recipe's ingredients.
type Policy string

const (
	// PolicySubset keeps recipes made only from the given ingredients.
	PolicySubset Policy = "subset"
	// PolicySuperset keeps recipes that use every given ingredient.
	PolicySuperset Policy = "superset"
)

// DefaultPolicy is used by search when no mode is given.
const DefaultPolicy = PolicySuperset

// ParsePolicy parses "subset" or "superset". An empty string yields
// DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultPolicy, nil
	case string(PolicySubset):
		return PolicySubset, nil
	case string(PolicySuperset):
		return PolicySuperset, nil
	}
	return "", fmt.Errorf("invalid match mode %q: expected subset or superset", s)
}

// Scope restricts the candidate recipes. The zero value is Global.
type Scope struct {
	fridgeID int64
	inFridge bool
}

// Global considers every recipe in the catalog.
func Global() Scope { return Scope{} }

// InFridge considers only the recipes linked to the fridge.
func InFridge(fridgeID int64) Scope {
	return Scope{fridgeID: fridgeID, inFridge: true}
}

func (s Scope) String() string {
	if !s.inFridge {
		return "global"
	}
	return fmt.Sprintf("fridge:%d", s.fridgeID)
}

func (s Scope) clause() (string, []any) {
	if !s.inFridge {
		return "", nil
	}
	return `
		AND r.id IN (SELECT recipe_id FROM fridge_recipes WHERE fridge_id = ?)`, []any{s.fridgeID}
}

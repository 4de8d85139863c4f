// Package importer brings recipes from another cookme database into the
// active one.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/VoxDroid/cookme/internal/catalog"
	"github.com/VoxDroid/cookme/internal/config"
	"github.com/VoxDroid/cookme/internal/db"
)

// ErrDestinationExists is returned by ImportDatabase when overwrite is false.
var ErrDestinationExists = errors.New("destination database exists; use overwrite to replace")

// ImportDatabase replaces the active database with a snapshot of srcPath.
// The source is opened read-only and must already be a cookme database; a
// missing or foreign file is rejected before the active database is touched.
func ImportDatabase(srcPath string, overwrite bool) error {
	dst, err := config.DBPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dst); err == nil && !overwrite {
		return ErrDestinationExists
	}
	src, err := db.OpenReadOnly(srcPath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	// VACUUM INTO a sibling file, then rename it over the active database so
	// a failed snapshot leaves the old one in place.
	tmp := dst + ".import"
	_ = os.Remove(tmp)
	if _, err := src.Exec("VACUUM INTO ?", tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("snapshot source: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dst + suffix)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace db: %w", err)
	}
	return nil
}

// Result counts what ImportRecipes did.
type Result struct {
	Imported int
	Skipped  int
}

// ImportRecipes copies every recipe of the database at srcPath into dst.
// A recipe whose title already exists under the same author is skipped, so
// repeated merges import nothing new. Other slug collisions get a numeric
// suffix.
func ImportRecipes(ctx context.Context, srcPath string, dst *catalog.Repository) (Result, error) {
	var res Result
	srcDB, err := db.OpenReadOnly(srcPath)
	if err != nil {
		return res, fmt.Errorf("open src: %w", err)
	}
	defer func() { _ = srcDB.Close() }()
	src := catalog.NewRepository(srcDB)

	recipes, err := src.ListRecipes(ctx)
	if err != nil {
		return res, err
	}
	if err := src.AttachIngredients(ctx, recipes); err != nil {
		return res, err
	}
	for _, rc := range recipes {
		_, err := dst.FindRecipe(ctx, rc.Title, rc.Author)
		if err == nil {
			res.Skipped++
			continue
		}
		if !errors.Is(err, catalog.ErrNotFound) {
			return res, err
		}
		if _, err := dst.CreateRecipe(ctx, toNewRecipe(rc)); err != nil {
			return res, fmt.Errorf("import %s: %w", rc.Slug, err)
		}
		res.Imported++
	}
	return res, nil
}

func toNewRecipe(rc catalog.Recipe) catalog.NewRecipe {
	in := catalog.NewRecipe{
		Title:       rc.Title,
		Author:      rc.Author,
		Description: rc.Description,
		Cuisine:     rc.Cuisine,
		Steps:       rc.Steps,
	}
	for _, line := range rc.Ingredients {
		in.Ingredients = append(in.Ingredients, catalog.NewRecipeIngredient{
			Name:     line.Name,
			Category: line.Category,
			Quantity: line.Quantity,
			Unit:     line.Unit,
		})
	}
	return in
}

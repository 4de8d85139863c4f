// Package exporter writes the cookme database or its recipes out of the
// active data directory.
package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/VoxDroid/cookme/internal/catalog"
)

// ExportDatabase writes a consistent snapshot of db to dstPath. The
// destination must not exist.
func ExportDatabase(ctx context.Context, db *sql.DB, dstPath string) error {
	if _, err := os.Stat(dstPath); err == nil {
		return fmt.Errorf("destination %s already exists", dstPath)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	// VACUUM INTO includes pages still in the WAL, unlike a file copy.
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dstPath); err != nil {
		return fmt.Errorf("export db: %w", err)
	}
	return nil
}

// recipeDoc mirrors the YAML layout read by the populate package.
type recipeDoc struct {
	Author      string              `yaml:"author"`
	Title       string              `yaml:"title"`
	Description string              `yaml:"description,omitempty"`
	Cuisine     string              `yaml:"cuisine,omitempty"`
	Steps       []string            `yaml:"steps,omitempty"`
	Ingredients []map[string]string `yaml:"ingredients,omitempty"`
}

// ExportRecipes writes every recipe to dir as <slug>.yaml and returns the
// number of files written.
func ExportRecipes(ctx context.Context, repo *catalog.Repository, dir string) (int, error) {
	recipes, err := repo.ListRecipes(ctx)
	if err != nil {
		return 0, err
	}
	if err := repo.AttachIngredients(ctx, recipes); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}
	for i, rc := range recipes {
		data, err := yaml.Marshal(toDoc(rc))
		if err != nil {
			return i, fmt.Errorf("marshal %s: %w", rc.Slug, err)
		}
		if err := os.WriteFile(filepath.Join(dir, rc.Slug+".yaml"), data, 0o644); err != nil {
			return i, fmt.Errorf("write %s: %w", rc.Slug, err)
		}
	}
	return len(recipes), nil
}

func toDoc(rc catalog.Recipe) recipeDoc {
	doc := recipeDoc{
		Author:      rc.Author,
		Title:       rc.Title,
		Description: rc.Description,
		Cuisine:     rc.Cuisine,
		Steps:       rc.Steps,
	}
	for _, line := range rc.Ingredients {
		amount := strconv.FormatFloat(line.Quantity, 'f', -1, 64)
		if line.Unit != "" {
			amount += " " + line.Unit
		}
		doc.Ingredients = append(doc.Ingredients, map[string]string{line.Name: amount})
	}
	return doc
}

// Package populate loads units, ingredients and recipes from text and YAML
// files into the catalog.
//
// Units and ingredients are semicolon separated with a header line:
//
//	name;abbrev;plural;description        (units)
//	name;category;description             (ingredients)
//
// Each recipe is one YAML document:
//
//	author: alice
//	title: Lemon Chicken
//	cuisine: Greek
//	description: Quick weeknight dinner.
//	steps:
//	  1: Brown the chicken.
//	  2: Add lemon juice.
//	ingredients:
//	  chicken breast: 500 g
//	  lemon: 2 pcs
//
// steps and ingredients may also be YAML lists; an ingredient list item is a
// single-key mapping. Loading is idempotent: lines and recipes that already
// exist are skipped.
package populate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/VoxDroid/cookme/internal/catalog"
	"github.com/VoxDroid/cookme/internal/logging"
)

// Report counts what a load did.
type Report struct {
	Units       int
	Ingredients int
	Recipes     int
	Skipped     []string
	Failed      map[string]error
}

func (r *Report) fail(name string, err error) {
	if r.Failed == nil {
		r.Failed = make(map[string]error)
	}
	r.Failed[name] = err
}

// Loader writes into one repository.
type Loader struct {
	repo *catalog.Repository
}

// NewLoader returns a Loader for repo.
func NewLoader(repo *catalog.Repository) *Loader {
	return &Loader{repo: repo}
}

// Units reads name;abbrev;plural;description lines after a header line.
func (l *Loader) Units(ctx context.Context, r io.Reader, rep *Report) error {
	return eachLine(r, func(n int, fields []string) error {
		if len(fields) < 1 || fields[0] == "" {
			return fmt.Errorf("line %d: missing unit name", n)
		}
		u := catalog.Unit{Name: fields[0], Abbrev: field(fields, 1), Plural: field(fields, 2), Description: field(fields, 3)}
		if _, err := l.repo.GetOrCreateUnit(ctx, u); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		rep.Units++
		return nil
	})
}

// Ingredients reads name;category;description lines after a header line.
func (l *Loader) Ingredients(ctx context.Context, r io.Reader, rep *Report) error {
	return eachLine(r, func(n int, fields []string) error {
		if _, err := l.repo.GetOrCreateIngredient(ctx, field(fields, 0), field(fields, 1)); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		rep.Ingredients++
		return nil
	})
}

func eachLine(r io.Reader, fn func(n int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		if n == 1 {
			continue // header
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ";")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(n, fields); err != nil {
			return err
		}
	}
	return sc.Err()
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// recipeFile is the YAML layout of one recipe.
type recipeFile struct {
	Author      string    `yaml:"author"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Cuisine     string    `yaml:"cuisine"`
	Fridge      bool      `yaml:"fridge"`
	Steps       yaml.Node `yaml:"steps"`
	Ingredients yaml.Node `yaml:"ingredients"`
}

// Recipes loads every *.yaml / *.yml file in dir of fsys, in name order.
// A broken file is recorded in the report and does not stop the load.
func (l *Loader) Recipes(ctx context.Context, fsys fs.FS, dir string, rep *Report) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read recipe dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		ext := strings.ToLower(path.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no recipe files found in %s", dir)
	}
	sort.Strings(files)

	units, err := l.unitAliases(ctx)
	if err != nil {
		return err
	}
	for i, name := range files {
		logging.Debug().Str("file", name).Int("n", i+1).Int("of", len(files)).Msg("loading recipe")
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			rep.fail(name, err)
			continue
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			rep.fail(name, errors.New("file is empty"))
			continue
		}
		created, err := l.recipe(ctx, data, units)
		switch {
		case err != nil:
			rep.fail(name, err)
		case created:
			rep.Recipes++
		default:
			rep.Skipped = append(rep.Skipped, name)
		}
	}
	return nil
}

// ParseRecipe decodes one YAML recipe document into a catalog.NewRecipe.
// units maps lower-cased unit names and abbreviations to unit names.
func ParseRecipe(data []byte, units map[string]string) (catalog.NewRecipe, bool, error) {
	var rf recipeFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return catalog.NewRecipe{}, false, fmt.Errorf("parse yaml: %w", err)
	}
	in := catalog.NewRecipe{
		Title:       rf.Title,
		Author:      rf.Author,
		Description: strings.TrimSpace(rf.Description),
		Cuisine:     rf.Cuisine,
	}
	if in.Title == "" {
		return in, false, errors.New("'title' field was not found")
	}
	if in.Author == "" {
		return in, false, errors.New("'author' field was not found")
	}

	steps, err := nodeValues(&rf.Steps)
	if err != nil {
		return in, false, fmt.Errorf("steps: %w", err)
	}
	for _, kv := range steps {
		if s := strings.TrimSpace(kv[1]); s != "" {
			in.Steps = append(in.Steps, s)
		}
	}

	ings, err := nodeValues(&rf.Ingredients)
	if err != nil {
		return in, false, fmt.Errorf("ingredients: %w", err)
	}
	for _, kv := range ings {
		line, err := parseAmount(kv[0], kv[1], units)
		if err != nil {
			return in, false, err
		}
		in.Ingredients = append(in.Ingredients, line)
	}
	return in, rf.Fridge, nil
}

// nodeValues flattens a mapping (key: value) or a list of scalars or
// single-key mappings into ordered key/value pairs. For plain list items the
// key is the item itself and the value is empty.
func nodeValues(n *yaml.Node) ([][2]string, error) {
	var out [][2]string
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			out = append(out, [2]string{n.Content[i].Value, n.Content[i+1].Value})
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				out = append(out, [2]string{item.Value, item.Value})
			case yaml.MappingNode:
				pairs, err := nodeValues(item)
				if err != nil {
					return nil, err
				}
				out = append(out, pairs...)
			default:
				return nil, fmt.Errorf("line %d: unexpected list item", item.Line)
			}
		}
	default:
		return nil, fmt.Errorf("line %d: expected a mapping or a list", n.Line)
	}
	return out, nil
}

// parseAmount turns ("lemon", "2 pcs") into an ingredient line. A missing
// amount means quantity 0 without unit.
func parseAmount(name, amount string, units map[string]string) (catalog.NewRecipeIngredient, error) {
	line := catalog.NewRecipeIngredient{Name: name}
	parts := strings.Fields(amount)
	if len(parts) == 0 || amount == name {
		return line, nil
	}
	q, err := strconv.ParseFloat(strings.Replace(parts[0], ",", ".", 1), 64)
	if err != nil {
		return line, fmt.Errorf("ingredient %q: invalid quantity %q", name, parts[0])
	}
	line.Quantity = q
	if len(parts) > 1 {
		unit := strings.Join(parts[1:], " ")
		if canonical, ok := units[strings.ToLower(unit)]; ok {
			unit = canonical
		}
		line.Unit = unit
	}
	return line, nil
}

func (l *Loader) unitAliases(ctx context.Context) (map[string]string, error) {
	units, err := l.repo.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(units)*3)
	for _, u := range units {
		for _, alias := range []string{u.Name, u.Abbrev, u.Plural} {
			if alias != "" {
				out[strings.ToLower(alias)] = u.Name
			}
		}
	}
	return out, nil
}

// recipe stores one YAML recipe unless the author already has a recipe with
// the same title. It reports whether a recipe was created.
func (l *Loader) recipe(ctx context.Context, data []byte, units map[string]string) (bool, error) {
	in, toFridge, err := ParseRecipe(data, units)
	if err != nil {
		return false, err
	}
	_, err = l.repo.FindRecipe(ctx, in.Title, in.Author)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return false, err
	}
	rc, err := l.repo.CreateRecipe(ctx, in)
	if err != nil {
		return false, err
	}
	if toFridge {
		f, err := l.repo.GetOrCreateFridge(ctx, rc.Author)
		if err != nil {
			return true, err
		}
		if err := l.repo.AddRecipeToFridge(ctx, f.ID, rc.Slug); err != nil {
			return true, err
		}
	}
	return true, nil
}

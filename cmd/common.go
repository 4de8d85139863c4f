package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/catalog"
	"github.com/VoxDroid/cookme/internal/db"
	"github.com/VoxDroid/cookme/internal/user"
)

var (
	bold = color.New(color.Bold)
	dim  = color.New(color.Faint)
	warn = color.New(color.FgYellow)
	good = color.New(color.FgGreen)
)

// openRepo opens the configured database. The returned close func must be
// deferred by the caller.
func openRepo() (*sql.DB, *catalog.Repository, func(), error) {
	dbConn, err := db.InitDB()
	if err != nil {
		return nil, nil, nil, err
	}
	return dbConn, catalog.NewRepository(dbConn), func() { _ = dbConn.Close() }, nil
}

// ownerFlag resolves --owner against the stored whoami identity.
func ownerFlag(cmd *cobra.Command) (string, error) {
	explicit, _ := cmd.Flags().GetString("owner")
	return user.Owner(explicit)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func formatQuantity(q float64, unit string) string {
	s := strconv.FormatFloat(q, 'f', -1, 64)
	if unit != "" {
		s += " " + unit
	}
	return s
}

func printRecipes(w io.Writer, recipes []catalog.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "no recipes found")
		return
	}
	for _, rc := range recipes {
		names := make([]string, 0, len(rc.Ingredients))
		for _, ri := range rc.Ingredients {
			names = append(names, ri.Name)
		}
		fmt.Fprintf(w, "- %s %s %s\n", bold.Sprint(rc.Title), dim.Sprintf("(%s, by %s)", rc.Slug, rc.Author), strings.Join(names, ", "))
	}
}

// parseIngredientSpec parses "Name:qty:unit". Quantity and unit are optional.
func parseIngredientSpec(spec string) (catalog.NewRecipeIngredient, error) {
	parts := strings.SplitN(spec, ":", 3)
	in := catalog.NewRecipeIngredient{Name: strings.TrimSpace(parts[0])}
	if in.Name == "" {
		return in, fmt.Errorf("ingredient %q: name is required", spec)
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		q, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(parts[1]), ",", "."), 64)
		if err != nil {
			return in, fmt.Errorf("ingredient %q: invalid quantity: %w", spec, err)
		}
		in.Quantity = q
	}
	if len(parts) > 2 {
		in.Unit = strings.TrimSpace(parts[2])
	}
	return in, nil
}

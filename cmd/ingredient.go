package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/catalog"
)

var ingredientCmd = &cobra.Command{
	Use:     "ingredient",
	Aliases: []string{"ingredients"},
	Short:   "Manage the ingredient catalog",
}

var ingredientAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an ingredient to the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		_, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		ing, err := repo.GetOrCreateIngredient(cmd.Context(), strings.Join(args, " "), category)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ingredient %s (%s)\n", good.Sprint(ing.Name), ing.Category)
		return nil
	},
}

var ingredientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog ingredients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		category, _ := cmd.Flags().GetString("category")
		_, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		ings, err := repo.ListIngredients(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		n := 0
		for _, ing := range ings {
			if category != "" && !strings.EqualFold(ing.Category, category) {
				continue
			}
			fmt.Fprintf(out, "- %-30s %s\n", ing.Name, dim.Sprint(ing.Category))
			n++
		}
		fmt.Fprintf(out, "\nTotal: %d ingredients\n", n)
		return nil
	},
}

var ingredientShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one catalog ingredient",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		name := strings.Join(args, " ")
		ing, err := repo.GetIngredient(cmd.Context(), name)
		if errors.Is(err, catalog.ErrNotFound) {
			hints, herr := repo.SuggestIngredients(cmd.Context(), name, 3)
			if herr == nil && len(hints) > 0 {
				return fmt.Errorf("unknown ingredient %q, did you mean: %s", name, strings.Join(hints, ", "))
			}
			return fmt.Errorf("unknown ingredient %q", name)
		}
		if err != nil {
			return err
		}
		category := ing.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\ncategory: %s\n", bold.Sprint(ing.Name), category)
		return nil
	},
}

var ingredientSuggestCmd = &cobra.Command{
	Use:   "suggest <name>",
	Short: "Suggest catalog ingredients close to a misspelled name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		_, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		hints, err := repo.SuggestIngredients(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		for _, h := range hints {
			fmt.Fprintln(cmd.OutOrStdout(), h)
		}
		return nil
	},
}

func init() {
	ingredientAddCmd.Flags().String("category", "", "category, one of: "+strings.Join(catalog.Categories, ", "))
	ingredientListCmd.Flags().String("category", "", "only list this category")
	ingredientSuggestCmd.Flags().Int("limit", 5, "maximum number of suggestions")
	ingredientCmd.AddCommand(ingredientAddCmd)
	ingredientCmd.AddCommand(ingredientListCmd)
	ingredientCmd.AddCommand(ingredientShowCmd)
	ingredientCmd.AddCommand(ingredientSuggestCmd)
	rootCmd.AddCommand(ingredientCmd)
}

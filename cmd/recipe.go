package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/catalog"
	"github.com/VoxDroid/cookme/internal/user"
	"github.com/VoxDroid/cookme/internal/utils"
)

var recipeCmd = &cobra.Command{
	Use:     "recipe",
	Aliases: []string{"recipes"},
	Short:   "Manage recipes",
}

var recipeAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a recipe",
	Long: "Add a recipe. Each -i takes Name:quantity:unit; quantity and unit are optional.\n\n" +
		"Example:\n" +
		"  cookme recipe add \"Lemon Chicken\" -i Chicken:1:kilogram -i Lemon:2 --step \"Roast it\" --fridge",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authorFlag, _ := cmd.Flags().GetString("author")
		description, _ := cmd.Flags().GetString("description")
		cuisine, _ := cmd.Flags().GetString("cuisine")
		steps, _ := cmd.Flags().GetStringArray("step")
		specs, _ := cmd.Flags().GetStringArray("ingredient")
		toFridge, _ := cmd.Flags().GetBool("fridge")

		author, err := user.Owner(authorFlag)
		if err != nil {
			return err
		}
		in := catalog.NewRecipe{
			Title:       strings.Join(args, " "),
			Author:      author,
			Description: description,
			Cuisine:     cuisine,
			Steps:       steps,
		}
		for _, spec := range specs {
			line, err := parseIngredientSpec(spec)
			if err != nil {
				return err
			}
			in.Ingredients = append(in.Ingredients, line)
		}

		_, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		rc, err := repo.CreateRecipe(cmd.Context(), in)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "created recipe %s (%s)\n", good.Sprint(rc.Title), rc.Slug)
		if toFridge {
			f, err := repo.GetOrCreateFridge(cmd.Context(), author)
			if err != nil {
				return err
			}
			if err := repo.AddRecipeToFridge(cmd.Context(), f.ID, rc.Slug); err != nil {
				return err
			}
			fmt.Fprintf(out, "added %s to %s's fridge\n", rc.Slug, author)
		}
		return nil
	},
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		author, _ := cmd.Flags().GetString("author")
		asJSON, _ := cmd.Flags().GetBool("json")
		_, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		all, err := repo.ListRecipes(cmd.Context())
		if err != nil {
			return err
		}
		recipes := all[:0]
		for _, rc := range all {
			if author == "" || rc.Author == author {
				recipes = append(recipes, rc)
			}
		}
		if err := repo.AttachIngredients(cmd.Context(), recipes); err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), recipes)
		}
		printRecipes(cmd.OutOrStdout(), recipes)
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d recipes\n", len(recipes))
		return nil
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		_, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		rc, err := repo.GetRecipeBySlug(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if asJSON {
			return printJSON(out, rc)
		}
		bold.Fprintln(out, rc.Title)
		fmt.Fprintf(out, "%s\n", dim.Sprintf("%s by %s, %s", rc.Slug, rc.Author, rc.CreatedAt))
		if rc.Cuisine != "" {
			fmt.Fprintf(out, "Cuisine: %s\n", rc.Cuisine)
		}
		if rc.Description != "" {
			fmt.Fprintf(out, "\n%s\n", rc.Description)
		}
		if len(rc.Ingredients) > 0 {
			fmt.Fprintln(out, "\nIngredients:")
			for _, ri := range rc.Ingredients {
				fmt.Fprintf(out, "  - %s %s\n", ri.Name, dim.Sprint(formatQuantity(ri.Quantity, ri.Unit)))
			}
		}
		if len(rc.Steps) > 0 {
			fmt.Fprintln(out, "\nSteps:")
			for i, s := range rc.Steps {
				fmt.Fprintf(out, "  %d. %s\n", i+1, s)
			}
		}
		return nil
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]
		yes, _ := cmd.Flags().GetBool("yes")

		_, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		if _, err := repo.GetRecipeBySlug(cmd.Context(), slug); err != nil {
			return err
		}
		if !yes && !utils.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete recipe '%s' permanently?", slug)) {
			fmt.Fprintln(cmd.OutOrStdout(), "aborted")
			return nil
		}
		if err := repo.DeleteRecipe(cmd.Context(), slug); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted '%s'\n", slug)
		return nil
	},
}

func init() {
	recipeAddCmd.Flags().StringArrayP("ingredient", "i", nil, "ingredient as Name:quantity:unit (repeatable)")
	recipeAddCmd.Flags().String("author", "", "author (defaults to the whoami identity)")
	recipeAddCmd.Flags().String("description", "", "description")
	recipeAddCmd.Flags().String("cuisine", "", "cuisine")
	recipeAddCmd.Flags().StringArray("step", nil, "preparation step (repeatable, in order)")
	recipeAddCmd.Flags().Bool("fridge", false, "also add the recipe to the author's fridge")
	recipeListCmd.Flags().String("author", "", "only list recipes by this author")
	recipeListCmd.Flags().Bool("json", false, "print as JSON")
	recipeShowCmd.Flags().Bool("json", false, "print as JSON")
	recipeDeleteCmd.Flags().BoolP("yes", "y", false, "delete without asking")

	recipeCmd.AddCommand(recipeAddCmd)
	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeDeleteCmd)
	rootCmd.AddCommand(recipeCmd)
}

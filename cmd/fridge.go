package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/catalog"
	"github.com/VoxDroid/cookme/internal/search"
)

var fridgeCmd = &cobra.Command{
	Use:   "fridge",
	Short: "Manage a fridge: its inventory and its linked recipes",
	Long: "Manage a fridge. Every subcommand acts on the fridge of --owner, which\n" +
		"defaults to the whoami identity. The fridge is created on first use.",
}

// withFridge opens the database, resolves the owner's fridge and runs fn.
func withFridge(cmd *cobra.Command, fn func(repo *catalog.Repository, f catalog.Fridge) error) error {
	owner, err := ownerFlag(cmd)
	if err != nil {
		return err
	}
	_, repo, closeDB, err := openRepo()
	if err != nil {
		return err
	}
	defer closeDB()

	f, err := repo.GetOrCreateFridge(cmd.Context(), owner)
	if err != nil {
		return err
	}
	return fn(repo, f)
}

var fridgeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the fridge inventory and linked recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withFridge(cmd, func(repo *catalog.Repository, f catalog.Fridge) error {
			items, err := repo.ListFridgeIngredients(cmd.Context(), f.ID)
			if err != nil {
				return err
			}
			recipes, err := repo.ListFridgeRecipes(cmd.Context(), f.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			visibility := "visible"
			if !f.Visible {
				visibility = "hidden"
			}
			fmt.Fprintf(out, "%s %s\n", bold.Sprintf("%s's fridge", f.Owner), dim.Sprintf("(%s)", visibility))
			if len(items) == 0 {
				fmt.Fprintln(out, "  empty")
			}
			for _, it := range items {
				fmt.Fprintf(out, "  - %-30s %s\n", it.Name, dim.Sprint(formatQuantity(it.Quantity, it.Unit)))
			}
			fmt.Fprintln(out, "\nRecipes:")
			if len(recipes) == 0 {
				fmt.Fprintln(out, "  none")
			}
			for _, rc := range recipes {
				fmt.Fprintf(out, "  - %s %s\n", rc.Title, dim.Sprintf("(%s)", rc.Slug))
			}
			return nil
		})
	},
}

var fridgeAddCmd = &cobra.Command{
	Use:   "add <ingredient>",
	Short: "Put an ingredient in the fridge; adding it again increases the quantity",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, _ := cmd.Flags().GetFloat64("quantity")
		unit, _ := cmd.Flags().GetString("unit")
		category, _ := cmd.Flags().GetString("category")
		return withFridge(cmd, func(repo *catalog.Repository, f catalog.Fridge) error {
			it, err := repo.AddFridgeIngredient(cmd.Context(), f.ID, strings.Join(args, " "), category, quantity, unit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now holds %s %s\n", f.Owner+"'s fridge", good.Sprint(it.Name), formatQuantity(it.Quantity, it.Unit))
			return nil
		})
	},
}

var fridgeRemoveCmd = &cobra.Command{
	Use:   "remove <ingredient>",
	Short: "Take an ingredient out of the fridge",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return withFridge(cmd, func(repo *catalog.Repository, f catalog.Fridge) error {
			if err := repo.RemoveFridgeIngredient(cmd.Context(), f.ID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
			return nil
		})
	},
}

var fridgeAddRecipeCmd = &cobra.Command{
	Use:   "add-recipe <slug>",
	Short: "Link a recipe to the fridge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFridge(cmd, func(repo *catalog.Repository, f catalog.Fridge) error {
			if err := repo.AddRecipeToFridge(cmd.Context(), f.ID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "linked %s\n", args[0])
			return nil
		})
	},
}

var fridgeRemoveRecipeCmd = &cobra.Command{
	Use:   "remove-recipe <slug>",
	Short: "Unlink a recipe from the fridge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFridge(cmd, func(repo *catalog.Repository, f catalog.Fridge) error {
			if err := repo.RemoveRecipeFromFridge(cmd.Context(), f.ID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unlinked %s\n", args[0])
			return nil
		})
	},
}

var fridgeVisibleCmd = &cobra.Command{
	Use:   "visible <true|false>",
	Short: "Show or hide the fridge from other users of the HTTP API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		visible, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("invalid visibility %q: want true or false", args[0])
		}
		return withFridge(cmd, func(repo *catalog.Repository, f catalog.Fridge) error {
			if err := repo.SetFridgeVisible(cmd.Context(), f.ID, visible); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s's fridge visible: %t\n", f.Owner, visible)
			return nil
		})
	},
}

// fridgeSearchCmd builds the possibilities and cookable commands, which only
// differ in the search they run.
func fridgeSearchCmd(use, short string, run func(*search.Service, *cobra.Command, catalog.Fridge) (*search.Result, error)) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			owner, err := ownerFlag(cmd)
			if err != nil {
				return err
			}
			dbConn, repo, closeDB, err := openRepo()
			if err != nil {
				return err
			}
			defer closeDB()

			f, err := repo.GetOrCreateFridge(cmd.Context(), owner)
			if err != nil {
				return err
			}
			res, err := run(search.NewService(dbConn), cmd, f)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	c.Flags().Bool("json", false, "print the result as JSON")
	return c
}

var fridgePossibilitiesCmd = fridgeSearchCmd("possibilities", "List every recipe that can be cooked from the fridge",
	func(s *search.Service, cmd *cobra.Command, f catalog.Fridge) (*search.Result, error) {
		return s.Possibilities(cmd.Context(), f)
	})

var fridgeCookableCmd = fridgeSearchCmd("cookable", "List the fridge's linked recipes that can be cooked from it",
	func(s *search.Service, cmd *cobra.Command, f catalog.Fridge) (*search.Result, error) {
		return s.Cookable(cmd.Context(), f)
	})

func init() {
	fridgeCmd.PersistentFlags().String("owner", "", "fridge owner (defaults to the whoami identity)")
	fridgeAddCmd.Flags().Float64P("quantity", "q", 1, "quantity to add")
	fridgeAddCmd.Flags().StringP("unit", "u", "", "unit of the quantity")
	fridgeAddCmd.Flags().String("category", "", "category used when the ingredient is new to the catalog")

	fridgeCmd.AddCommand(fridgeShowCmd)
	fridgeCmd.AddCommand(fridgeAddCmd)
	fridgeCmd.AddCommand(fridgeRemoveCmd)
	fridgeCmd.AddCommand(fridgeAddRecipeCmd)
	fridgeCmd.AddCommand(fridgeRemoveRecipeCmd)
	fridgeCmd.AddCommand(fridgeVisibleCmd)
	fridgeCmd.AddCommand(fridgePossibilitiesCmd)
	fridgeCmd.AddCommand(fridgeCookableCmd)
	rootCmd.AddCommand(fridgeCmd)
}

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/config"
	"github.com/VoxDroid/cookme/internal/matcher"
	"github.com/VoxDroid/cookme/internal/query"
	"github.com/VoxDroid/cookme/internal/search"
	"github.com/VoxDroid/cookme/internal/validation"
)

var searchCmd = &cobra.Command{
	Use:   "search <ingredients...>",
	Short: "Find recipes for a list of ingredients",
	Long: "Find recipes for a comma-separated list of ingredients.\n\n" +
		"superset (default) lists recipes that use every ingredient given;\n" +
		"subset lists recipes that need nothing beyond the ingredients given.\n\n" +
		"Examples:\n" +
		"  cookme search meat, lemon\n" +
		"  cookme search --mode subset \"meat, lemon, apple\"\n" +
		"  cookme search --encoded white-bread lemon",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		fridgeOwner, _ := cmd.Flags().GetString("fridge")
		encoded, _ := cmd.Flags().GetBool("encoded")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")
		if verr := validation.ValidateSearch(validation.SearchRequest{Query: strings.TrimSpace(text), Mode: mode, Fridge: fridgeOwner}, cfg.Search.MaxQueryLength); verr != nil {
			return verr
		}
		policy, err := matcher.ParsePolicy(mode)
		if err != nil {
			return err
		}
		if !encoded {
			text = query.Encode(text)
		}

		dbConn, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		req := search.Request{Names: query.Parse(text), Policy: policy}
		if fridgeOwner != "" {
			f, err := repo.GetFridge(cmd.Context(), fridgeOwner)
			if err != nil {
				return err
			}
			req.Fridge = &f
		}
		res, err := search.NewService(dbConn).Search(cmd.Context(), req)
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

func printResult(w io.Writer, res *search.Result) {
	fmt.Fprintf(w, "%s %s %s\n", bold.Sprintf("%s search", res.Policy), dim.Sprintf("[%s]", res.Scope), strings.Join(res.Names, ", "))
	for _, n := range res.Unknown {
		if hints := res.Suggestions[n]; len(hints) > 0 {
			warn.Fprintf(w, "unknown ingredient %q, did you mean: %s?\n", n, strings.Join(hints, ", "))
		} else {
			warn.Fprintf(w, "unknown ingredient %q\n", n)
		}
	}
	printRecipes(w, res.Recipes)
	fmt.Fprintf(w, "\nTotal: %d recipes\n", res.Count)
}

func init() {
	searchCmd.Flags().String("mode", string(matcher.DefaultPolicy), "match mode: superset or subset")
	searchCmd.Flags().String("fridge", "", "restrict to the recipes linked to this owner's fridge")
	searchCmd.Flags().Bool("encoded", false, "arguments are already in encoded form (white-bread lemon)")
	searchCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(searchCmd)
}

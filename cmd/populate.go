package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/populate"
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Load units, ingredients and recipes into the catalog",
	Long: "Load catalog data from files. Units and ingredients are semicolon\n" +
		"separated text files with a header line; recipes are a directory of YAML\n" +
		"files. Loading twice skips what already exists.\n\n" +
		"Examples:\n" +
		"  cookme populate --demo\n" +
		"  cookme populate --units units.txt --ingredients ingredients.txt --recipes recipes/",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		units, _ := cmd.Flags().GetString("units")
		ingredients, _ := cmd.Flags().GetString("ingredients")
		recipes, _ := cmd.Flags().GetString("recipes")
		demo, _ := cmd.Flags().GetBool("demo")
		if !demo && units == "" && ingredients == "" && recipes == "" {
			return fmt.Errorf("nothing to load: pass --demo or at least one of --units, --ingredients, --recipes")
		}

		_, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		loader := populate.NewLoader(repo)
		ctx := cmd.Context()
		var rep populate.Report
		if demo {
			if rep, err = loader.Demo(ctx); err != nil {
				return err
			}
		}
		for _, in := range []struct {
			path string
			load populate.LineLoader
		}{{units, loader.Units}, {ingredients, loader.Ingredients}} {
			if in.path == "" {
				continue
			}
			abs, err := filepath.Abs(in.path)
			if err != nil {
				return err
			}
			if err := loader.File(ctx, os.DirFS(filepath.Dir(abs)), filepath.Base(abs), in.load, &rep); err != nil {
				return err
			}
		}
		if recipes != "" {
			if err := loader.Recipes(ctx, os.DirFS(recipes), ".", &rep); err != nil {
				return err
			}
		}
		printReport(cmd.OutOrStdout(), rep)
		return nil
	},
}

func printReport(w io.Writer, rep populate.Report) {
	fmt.Fprintf(w, "loaded %s units, %s ingredients, %s recipes\n",
		good.Sprint(rep.Units), good.Sprint(rep.Ingredients), good.Sprint(rep.Recipes))
	if len(rep.Skipped) > 0 {
		fmt.Fprintf(w, "%s\n", dim.Sprintf("skipped %d existing recipes", len(rep.Skipped)))
	}
	names := make([]string, 0, len(rep.Failed))
	for n := range rep.Failed {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		warn.Fprintf(w, "failed %s: %v\n", n, rep.Failed[n])
	}
}

func init() {
	populateCmd.Flags().String("units", "", "units file (name;abbrev;plural;description)")
	populateCmd.Flags().String("ingredients", "", "ingredients file (name;category;description)")
	populateCmd.Flags().String("recipes", "", "directory of YAML recipe files")
	populateCmd.Flags().Bool("demo", false, "load the bundled demo data")
	rootCmd.AddCommand(populateCmd)
}

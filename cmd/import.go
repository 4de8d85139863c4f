package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import another cookme database",
	Long: "Import another cookme database. --merge copies its recipes into the\n" +
		"active database, skipping titles the same author already has.\n" +
		"Without --merge the active database is replaced, which needs --overwrite\n" +
		"when it already exists.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		merge, _ := cmd.Flags().GetBool("merge")
		if merge && overwrite {
			return fmt.Errorf("--merge and --overwrite are mutually exclusive")
		}
		out := cmd.OutOrStdout()

		if merge {
			_, repo, closeDB, err := openRepo()
			if err != nil {
				return err
			}
			defer closeDB()
			res, err := importer.ImportRecipes(cmd.Context(), args[0], repo)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "imported %d recipes, skipped %d\n", res.Imported, res.Skipped)
			return nil
		}

		if err := importer.ImportDatabase(args[0], overwrite); err != nil {
			if errors.Is(err, importer.ErrDestinationExists) {
				return fmt.Errorf("%w (pass --overwrite or --merge)", err)
			}
			return err
		}
		fmt.Fprintf(out, "imported database from %s\n", args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("overwrite", false, "replace the active database")
	importCmd.Flags().Bool("merge", false, "copy recipes into the active database")
	rootCmd.AddCommand(importCmd)
}

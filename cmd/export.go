package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/exporter"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the database, or its recipes as YAML files",
	Long: "Export a snapshot of the database. Without a path the snapshot is\n" +
		"written to ./cookme-<date>.db. With --recipes every recipe is written as\n" +
		"<slug>.yaml into the given directory, in the format read by populate.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipesDir, _ := cmd.Flags().GetString("recipes")

		dbConn, repo, closeDB, err := openRepo()
		if err != nil {
			return err
		}
		defer closeDB()

		out := cmd.OutOrStdout()
		if recipesDir != "" {
			n, err := exporter.ExportRecipes(cmd.Context(), repo, recipesDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "exported %d recipes to %s\n", n, recipesDir)
			return nil
		}

		dst := defaultExportPath(".")
		if len(args) == 1 {
			dst = args[0]
		}
		if err := exporter.ExportDatabase(cmd.Context(), dbConn, dst); err != nil {
			return err
		}
		fmt.Fprintf(out, "exported database to %s\n", dst)
		return nil
	},
}

// defaultExportPath returns dir/cookme-<date>.db, or the first free
// cookme-<date>-N.db.
func defaultExportPath(dir string) string {
	date := time.Now().UTC().Format("2006-01-02")
	dst := filepath.Join(dir, fmt.Sprintf("cookme-%s.db", date))
	for i := 1; ; i++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			return dst
		}
		dst = filepath.Join(dir, fmt.Sprintf("cookme-%s-%d.db", date, i))
	}
}

func init() {
	exportCmd.Flags().String("recipes", "", "write recipes as YAML files into this directory instead")
	rootCmd.AddCommand(exportCmd)
}

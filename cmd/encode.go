package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/query"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <ingredients...>",
	Short: "Encode a comma-separated ingredient list for a search URL",
	Long:  "Encode a comma-separated ingredient list. Example:\n  cookme encode white bread, lemon   # white-bread lemon",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), query.Encode(strings.Join(args, " ")))
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <encoded...>",
	Short: "Decode an encoded query into canonical ingredient names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		decoded := query.Decode(strings.Join(args, " "))
		if raw {
			fmt.Fprintln(cmd.OutOrStdout(), decoded)
			return nil
		}
		for _, n := range query.CanonicalSet(decoded).Names() {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	decodeCmd.Flags().Bool("raw", false, "print the comma-joined decoded form instead of canonical names")
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/cookme/internal/user"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Manage the stored identity",
	Long:  "Manage a persisted identity used as the default fridge owner and recipe author.",
}

var whoamiSetCmd = &cobra.Command{
	Use:   "set [name]",
	Short: "Set the stored identity",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			return fmt.Errorf("a name is required: cookme whoami set <name>")
		}
		if err := user.SetProfile(user.Profile{Name: name, Email: email}); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if email != "" {
			fmt.Fprintf(out, "stored identity: %s <%s>\n", name, email)
		} else {
			fmt.Fprintf(out, "stored identity: %s\n", name)
		}
		return nil
	},
}

var whoamiClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the stored identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := user.ClearProfile(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cleared stored identity")
		return nil
	},
}

var whoamiShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, ok, err := user.GetProfile()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintln(out, "no stored identity")
			return nil
		}
		if p.Email == "" {
			fmt.Fprintln(out, p.Name)
			return nil
		}
		fmt.Fprintf(out, "%s <%s>\n", p.Name, p.Email)
		return nil
	},
}

func init() {
	whoamiSetCmd.Flags().StringP("name", "n", "", "Name (or pass it as an argument)")
	whoamiSetCmd.Flags().StringP("email", "e", "", "Email (optional)")
	whoamiCmd.AddCommand(whoamiSetCmd)
	whoamiCmd.AddCommand(whoamiClearCmd)
	whoamiCmd.AddCommand(whoamiShowCmd)
	rootCmd.AddCommand(whoamiCmd)
}

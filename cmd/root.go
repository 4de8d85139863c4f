package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VoxDroid/cookme/internal/config"
	"github.com/VoxDroid/cookme/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cookme",
	Short: "cookme finds recipes for the ingredients you have",
	Long: "cookme keeps a catalog of recipes and fridges in SQLite and matches\n" +
		"ingredient lists against it, either as a CLI or as a read-only HTTP API.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd)
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .cookme.yaml in the working dir or home)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".cookme")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	config.SetDefaults(viper.GetViper())

	// a missing default config file is fine; an explicit --config must exist
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	logging.Debug().Str("command", cmd.CommandPath()).Str("config", viper.ConfigFileUsed()).Msg("config loaded")
	return nil
}

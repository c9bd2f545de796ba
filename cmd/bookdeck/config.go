package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csheth/bookdeck/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the BookDeck config file",
	// The config commands never call Gemini, so a missing key is fine here.
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(flagConfigPath)
		if err != nil && !errors.Is(err, config.ErrMissingAPIKey) {
			return err
		}
		appConfig = applyFlags(cmd, cfg)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(flagConfigPath)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the resolved settings to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := os.Stat(flagConfigPath); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", flagConfigPath)
		}
		if err := config.Save(flagConfigPath, appConfig); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", flagConfigPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configPathCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

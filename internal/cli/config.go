package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oddslab/backcourt/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage backtest configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a default config file (format chosen by extension)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.Default().SaveToFile(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Validate a config file and print the effective settings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Account:  %s ($%.2f)\n", cfg.Account.ID, cfg.Account.Cash)
		fmt.Printf("States:   %s\n", cfg.Backtest.StatesPath)
		fmt.Printf("Strategy: %s\n", cfg.Backtest.Strategy)
		for k, v := range cfg.Backtest.Params {
			fmt.Printf("  %s = %g\n", k, v)
		}
		if cfg.Journal.Type != "" {
			fmt.Printf("Journal:  %s\n", cfg.Journal.Type)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

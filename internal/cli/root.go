package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "backcourt",
	Short: "A prediction-market backtest engine for live game states",
	Long: `Backcourt replays recorded game-state feeds through trading policies
and accounts for every fill at Kalshi taker fees.

It provides tools for:
  - Backtesting policies against historical game-state CSVs
  - Forced settlement of open positions at game boundaries
  - Round-trip and entry-price-bucket statistics
  - Journaling runs, trades and equity curves to SQLite or CSV`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(lvl)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oddslab/backcourt/backtest"
	"github.com/oddslab/backcourt/config"
	"github.com/oddslab/backcourt/internal/id"
	"github.com/oddslab/backcourt/journal"
	"github.com/oddslab/backcourt/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay a game-state feed through a trading policy",
	Long: `Backtest replays a recorded game-state CSV through a policy and prints
a full report: net and gross PnL, fees, drawdown, hit rate and
entry-price buckets.

Supported strategies: ` + strings.Join(strategies.Names(), ", ") + `

Examples:
  backcourt backtest -f data/states.csv -s late-game-underdog
  backcourt backtest -f data/states.csv -s micro-momentum -p stake=50 -p min_trend_move=0.10
  backcourt backtest -c backcourt.yaml`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btStatesPath string
	btStrategy   string
	btCash       float64
	btDBPath     string
	btJournal    string
	btTrades     string
	btEquity     string
	btParams     []string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "config file (YAML or JSON); flags below are ignored when set")
	backtestCmd.Flags().StringVarP(&btStatesPath, "states", "f", "", "path to game-state CSV")
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "noop", "strategy name")
	backtestCmd.Flags().Float64VarP(&btCash, "cash", "b", 1000, "starting cash")
	backtestCmd.Flags().StringVarP(&btJournal, "journal", "j", "", "journal backend (sqlite, csv or empty for none)")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "./backcourt.db", "path to SQLite journal DB")
	backtestCmd.Flags().StringVar(&btTrades, "trades-file", "./trades.csv", "CSV journal trades file")
	backtestCmd.Flags().StringVar(&btEquity, "equity-file", "./equity.csv", "CSV journal equity file")
	backtestCmd.Flags().StringArrayVarP(&btParams, "param", "p", nil, "strategy parameter key=value (repeatable)")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := backtestConfig()
	if err != nil {
		return err
	}

	strat, err := strategies.ByName(cfg.Backtest.Strategy, cfg.Backtest.Params)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	feed, err := backtest.NewCSVStateFeed(cfg.Backtest.StatesPath)
	if err != nil {
		return fmt.Errorf("open states: %w", err)
	}
	defer feed.Close()

	runner := &backtest.Runner{
		Feed:        feed,
		Strategy:    strat,
		InitialCash: cfg.Account.Cash,
		Log:         log,
	}

	res, err := runner.Run()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	backtest.PrintSummary(os.Stdout, strat.Name(), res)

	return journalResult(cfg, strat.Name(), res)
}

// backtestConfig assembles the run configuration, either wholly from a
// config file or wholly from flags.
func backtestConfig() (*config.Config, error) {
	if btConfigPath != "" {
		return config.LoadFromFile(btConfigPath)
	}

	params, err := parseParams(btParams)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Account: config.AccountConfig{ID: "SIM-BACKTEST", Cash: btCash},
		Backtest: config.BacktestConfig{
			StatesPath: btStatesPath,
			Strategy:   btStrategy,
			Params:     params,
		},
		Journal: config.JournalConfig{
			Type:       btJournal,
			TradesFile: btTrades,
			EquityFile: btEquity,
			DBPath:     btDBPath,
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseParams(kvs []string) (map[string]float64, error) {
	if len(kvs) == 0 {
		return nil, nil
	}
	params := make(map[string]float64, len(kvs))
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("bad param %q (want key=value)", kv)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("bad param value %q: %w", kv, err)
		}
		params[strings.TrimSpace(k)] = x
	}
	return params, nil
}

func journalResult(cfg *config.Config, strategy string, res backtest.Result) error {
	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j == nil {
		return nil
	}
	defer j.Close()

	run := journal.RunRecord{
		RunID:       id.New(),
		Created:     time.Now().UTC(),
		Strategy:    strategy,
		Dataset:     cfg.Backtest.StatesPath,
		InitialCash: cfg.Account.Cash,
	}

	if err := journal.RecordResult(j, run, res); err != nil {
		return fmt.Errorf("journal run: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"run_id":   run.RunID,
		"strategy": strategy,
		"trades":   len(res.Trades),
	}).Info("run journaled")

	fmt.Printf("\nRun ID: %s\n", run.RunID)
	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "":
		return nil, nil
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.EquityFile)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}

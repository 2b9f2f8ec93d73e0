package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/oddslab/backcourt/journal"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Query journaled backtest runs",
	Long: `Report reads the SQLite journal and displays recorded runs.

Subcommands:
  runs   - List all journaled runs
  run    - Show one run with its trades
  day    - List trades closed on a specific day

Examples:
  backcourt report runs
  backcourt report run 01J9GXYZ...
  backcourt report day 2024-01-15`,
}

var reportRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List all journaled runs",
	Args:  cobra.NoArgs,
	RunE:  runReportRuns,
}

var reportRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one run with its trades",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportRun,
}

var reportDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades closed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportDay,
}

var reportDBPath string

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportRunsCmd)
	reportCmd.AddCommand(reportRunCmd)
	reportCmd.AddCommand(reportDayCmd)

	reportCmd.PersistentFlags().StringVarP(&reportDBPath, "db", "d", "./backcourt.db", "path to SQLite journal DB")
}

func runReportRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(reportDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Run ID", "Created", "Strategy", "Dataset", "Net PnL", "Fees", "Trips", "Hit %"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range runs {
		table.Append([]string{
			r.RunID,
			r.Created.Format("2006-01-02 15:04"),
			r.Strategy,
			r.Dataset,
			fmt.Sprintf("%.2f", r.NetPnL),
			fmt.Sprintf("%.2f", r.TotalFees),
			strconv.Itoa(r.RoundTrips),
			fmt.Sprintf("%.1f", r.HitRate*100),
		})
	}
	table.Render()
	return nil
}

func runReportRun(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(reportDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	run, err := j.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	fmt.Printf("Run:          %s\n", run.RunID)
	fmt.Printf("Created:      %s\n", run.Created.Format(time.RFC3339))
	fmt.Printf("Strategy:     %s\n", run.Strategy)
	fmt.Printf("Dataset:      %s\n", run.Dataset)
	fmt.Printf("States:       %d across %d games\n", run.States, run.Games)
	fmt.Printf("Initial Cash: $%.2f\n", run.InitialCash)
	fmt.Printf("Net PnL:      $%.2f (gross $%.2f, fees $%.2f)\n", run.NetPnL, run.GrossPnL, run.TotalFees)
	fmt.Printf("Max Drawdown: $%.2f\n", run.MaxDrawdown)
	fmt.Printf("Round Trips:  %d (hit rate %.1f%%)\n\n", run.RoundTrips, run.HitRate*100)

	trades, err := j.ListTradesByRun(run.RunID)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	printTrades(trades)
	return nil
}

func runReportDay(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(reportDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	start, end, err := dayBounds(time.Local, args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	trades, err := j.ListTradesClosedBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	printTrades(trades)
	return nil
}

func printTrades(trades []journal.TradeRecord) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "Market", "Action", "Price", "Contracts", "PnL"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, t := range trades {
		table.Append([]string{
			t.Timestamp.Format("2006-01-02 15:04:05"),
			t.MarketID,
			t.Action,
			fmt.Sprintf("%.2f", t.Price),
			fmt.Sprintf("%.0f", t.Contracts),
			fmt.Sprintf("%.2f", t.PnL),
		})
	}
	table.Render()
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.Add(24 * time.Hour), nil
}

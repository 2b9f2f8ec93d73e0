package backtest

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// PrintSummary renders a replay result as a human-readable report.
func PrintSummary(w io.Writer, strategy string, res Result) {
	line := "=================================================="

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, line)

	fmt.Fprintf(w, "Strategy:      %s\n", strategy)
	fmt.Fprintf(w, "States:        %d\n", res.States)
	fmt.Fprintf(w, "Games:         %d\n", res.Games)
	if !res.Start.IsZero() {
		fmt.Fprintf(w, "Start:         %s\n", res.Start.Format(time.RFC3339))
		fmt.Fprintf(w, "End:           %s\n", res.End.Format(time.RFC3339))
	}

	s := res.Summary

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Net PnL:       %.2f\n", s.TotalPnL)
	fmt.Fprintf(w, "Gross PnL:     %.2f\n", s.GrossPnL)
	fmt.Fprintf(w, "Total Fees:    %.2f\n", s.TotalFees)
	fmt.Fprintf(w, "Max Drawdown:  %.2f\n", s.MaxDrawdown)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trades")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", s.Trades)
	fmt.Fprintf(w, "Round Trips:   %d\n", s.RoundTrips)
	fmt.Fprintf(w, "Hit Rate:      %.2f%%\n", s.HitRate*100)
	fmt.Fprintf(w, "Avg Win:       %.2f\n", s.AvgWin)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", s.AvgLoss)
	fmt.Fprintf(w, "Avg Fee/RT:    %.2f\n", s.AvgFeePerRoundTrip)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Entry Price Buckets")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Entry", "Count", "Hit Rate", "Avg PnL", "Avg Win", "Avg Loss", "Fees", "Avg Fee"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, b := range s.Buckets {
		table.Append([]string{
			b.Label,
			fmt.Sprintf("%d", b.Count),
			fmt.Sprintf("%.2f%%", b.HitRate*100),
			fmt.Sprintf("%.2f", b.AvgPnL),
			fmt.Sprintf("%.2f", b.AvgWin),
			fmt.Sprintf("%.2f", b.AvgLoss),
			fmt.Sprintf("%.2f", b.TotalFees),
			fmt.Sprintf("%.2f", b.AvgFee),
		})
	}
	table.Render()
	fmt.Fprintln(w)
}

package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes trades and equity samples as two flat CSV files,
// flushed after every record. Run summaries have no natural place in flat
// files and are dropped; use the SQLite journal when runs must be kept.
type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{"run_id", "timestamp", "market_id", "action", "price", "contracts", "pnl"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "time", "equity"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{trades: tw, equity: ew, tf: tf, ef: ef}, nil
}

func (j *CSVJournal) RecordRun(RunRecord) error { return nil }

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.RunID,
		t.Timestamp.Format(time.RFC3339),
		t.MarketID,
		t.Action,
		f(t.Price),
		f(t.Contracts),
		f(t.PnL),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquityRecord) error {
	err := j.equity.Write([]string{
		e.RunID,
		e.Time.Format(time.RFC3339),
		f(e.Equity),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

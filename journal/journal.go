// Package journal persists backtest runs: the run summary, the full trade
// log and the equity curve. The replay core never touches it; a runner's
// Result is handed over once, after the replay completes.
package journal

import (
	"time"

	"github.com/oddslab/backcourt/backtest"
	"github.com/oddslab/backcourt/sim"
)

// TradeRecord is one persisted trade log entry.
type TradeRecord struct {
	RunID     string
	Timestamp time.Time
	MarketID  string
	Action    string
	Price     float64
	Contracts float64
	PnL       float64
}

// EquityRecord is one persisted equity sample.
type EquityRecord struct {
	RunID  string
	Time   time.Time
	Equity float64
}

// RunRecord summarizes one backtest run.
type RunRecord struct {
	RunID    string
	Created  time.Time
	Strategy string
	Dataset  string

	InitialCash float64
	States      int
	Games       int
	Start       time.Time
	End         time.Time

	NetPnL      float64
	GrossPnL    float64
	TotalFees   float64
	MaxDrawdown float64
	RoundTrips  int
	HitRate     float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquityRecord) error
	Close() error
}

// RecordResult writes a complete run to the journal: the run row first,
// then every trade and equity sample under the same run id.
func RecordResult(j Journal, run RunRecord, res backtest.Result) error {
	run.States = res.States
	run.Games = res.Games
	run.Start = res.Start
	run.End = res.End
	run.NetPnL = res.Summary.TotalPnL
	run.GrossPnL = res.Summary.GrossPnL
	run.TotalFees = res.Summary.TotalFees
	run.MaxDrawdown = res.Summary.MaxDrawdown
	run.RoundTrips = res.Summary.RoundTrips
	run.HitRate = res.Summary.HitRate

	if err := j.RecordRun(run); err != nil {
		return err
	}
	for _, t := range res.Trades {
		if err := j.RecordTrade(tradeRecord(run.RunID, t)); err != nil {
			return err
		}
	}
	for _, p := range res.EquityCurve {
		if err := j.RecordEquity(EquityRecord{RunID: run.RunID, Time: p.Timestamp, Equity: p.Equity}); err != nil {
			return err
		}
	}
	return nil
}

func tradeRecord(runID string, t sim.Trade) TradeRecord {
	return TradeRecord{
		RunID:     runID,
		Timestamp: t.Timestamp,
		MarketID:  t.MarketID,
		Action:    string(t.Action),
		Price:     t.Price,
		Contracts: t.Contracts,
		PnL:       t.PnL,
	}
}

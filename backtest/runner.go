package backtest

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oddslab/backcourt/market"
	"github.com/oddslab/backcourt/sim"
	"github.com/oddslab/backcourt/strategies"
)

// EquityPoint is one mark-to-market sample, taken after each state is
// fully processed (including any settlement on that state).
type EquityPoint struct {
	Timestamp time.Time
	Equity    float64
}

// Result bundles everything a replay produces: the statistics summary,
// the full trade log and the equity curve. Persistence is the caller's
// business (see the journal package).
type Result struct {
	Summary     Summary
	Trades      []sim.Trade
	EquityCurve []EquityPoint

	States int
	Games  int
	Start  time.Time
	End    time.Time
}

// Runner drives one replay: states in order through the strategy, intents
// through the engine, settlement at game boundaries. One runner owns one
// ledger; it is not reentrant and a fresh Runner is needed per replay.
type Runner struct {
	Feed        StateFeed
	Strategy    strategies.Strategy
	InitialCash float64
	Log         *logrus.Logger // optional
}

// Run executes the replay to the end of the feed. A replay is a bounded
// batch computation, so there is no cancellation path; data gaps never
// fail it, only feed errors and strategy invariant violations do, and the
// returned error then names the offending tick and intent.
func (r *Runner) Run() (Result, error) {
	if r.Feed == nil {
		return Result{}, fmt.Errorf("backtest: Feed is required")
	}
	if r.Strategy == nil {
		return Result{}, fmt.Errorf("backtest: Strategy is required")
	}
	defer r.Feed.Close()

	r.Strategy.Reset()

	engine := sim.NewEngine()
	ledger := sim.NewLedger(r.InitialCash)

	var res Result

	curr, ok, err := r.Feed.Next()
	if err != nil {
		return Result{}, err
	}

	for ok {
		// One state of lookahead: the current state is its game's last
		// when the feed is exhausted or the next state changes games.
		next, nok, nerr := r.Feed.Next()
		if nerr != nil {
			return Result{}, nerr
		}
		final := !nok || next.GameID != curr.GameID

		if err := r.step(engine, ledger, curr, final, &res); err != nil {
			return Result{}, err
		}

		curr, ok = next, nok
	}

	res.Trades = ledger.Trades
	res.Summary = ComputeSummary(ledger.Trades, res.EquityCurve)

	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{
			"strategy": r.Strategy.Name(),
			"states":   res.States,
			"games":    res.Games,
			"trades":   len(res.Trades),
			"pnl":      res.Summary.TotalPnL,
		}).Info("replay complete")
	}

	return res, nil
}

func (r *Runner) step(engine *sim.Engine, ledger *sim.Ledger, state *market.GameState, final bool, res *Result) error {
	equityBefore := sim.Equity(state, ledger)
	view := ledger.View(equityBefore)

	for i, intent := range r.Strategy.OnState(state, view) {
		if err := engine.Apply(intent, state, ledger); err != nil {
			return fmt.Errorf("backtest: tick %s game %s intent %d (%s %s): %w",
				state.Timestamp.Format(time.RFC3339), state.GameID, i, intent.Action, intent.MarketID, err)
		}
	}

	if final {
		engine.Settle(state, ledger)
		res.Games++
		if r.Log != nil {
			r.Log.WithFields(logrus.Fields{
				"game": state.GameID,
				"open": len(ledger.Positions),
			}).Debug("game settled")
		}
	}

	res.EquityCurve = append(res.EquityCurve, EquityPoint{
		Timestamp: state.Timestamp,
		Equity:    sim.Equity(state, ledger),
	})

	res.States++
	if res.Start.IsZero() {
		res.Start = state.Timestamp
	}
	res.End = state.Timestamp
	return nil
}

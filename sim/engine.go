package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/oddslab/backcourt/market"
)

// Invariant violations. Data gaps (missing markets, missing prices, unknown
// game outcomes) are silent no-ops; these errors mean the strategy handed
// the engine something broken and the replay must stop.
var (
	ErrBadSize      = errors.New("sim: open size must be positive")
	ErrBadContracts = errors.New("sim: computed contracts not finite")
	ErrOpenPosition = errors.New("sim: market already has an open position")
	ErrBadAction    = errors.New("sim: unknown intent action")
)

// Engine applies trade intents to a ledger and performs forced settlement
// at game boundaries. It holds no state of its own.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Apply executes one intent against the ledger using the given state for
// price discovery. A market the state does not carry, or one with no usable
// price, is skipped silently; historical feeds are full of such gaps.
func (e *Engine) Apply(intent Intent, state *market.GameState, l *Ledger) error {
	m, ok := state.Market(intent.MarketID)
	if !ok {
		return nil
	}

	switch intent.Action {
	case ActionOpen:
		px := ResolvePrice(m, Buy)
		if px == nil || *px <= 0 {
			return nil
		}
		return e.open(intent, m, *px, state, l)

	case ActionClose:
		px := ResolvePrice(m, Sell)
		if px == nil || *px <= 0 {
			return nil
		}
		e.close(intent.MarketID, *px, state, l, false)
		return nil
	}

	return fmt.Errorf("%w: %q", ErrBadAction, intent.Action)
}

// Settle force-closes every open position belonging to the state's game at
// its settlement price: 1.0 for the winning team's markets, 0.0 otherwise.
// Settlement is not a taker trade, so fees are waived. When the outcome is
// unknowable (missing score, tie) positions are left open.
func (e *Engine) Settle(state *market.GameState, l *Ledger) {
	winner, ok := state.Winner()
	if !ok {
		return
	}

	for id, pos := range l.Positions {
		if pos.GameID != state.GameID {
			continue
		}
		price := 0.0
		if pos.Team == winner {
			price = 1.0
		}
		e.close(id, price, state, l, true)
	}
}

func (e *Engine) open(intent Intent, m market.Market, price float64, state *market.GameState, l *Ledger) error {
	if intent.Size <= 0 {
		return fmt.Errorf("%w: market %s size %v", ErrBadSize, intent.MarketID, intent.Size)
	}
	if _, exists := l.Positions[intent.MarketID]; exists {
		return fmt.Errorf("%w: %s", ErrOpenPosition, intent.MarketID)
	}

	contracts := intent.Size / price
	if math.IsNaN(contracts) || math.IsInf(contracts, 0) {
		return fmt.Errorf("%w: market %s size %v price %v", ErrBadContracts, intent.MarketID, intent.Size, price)
	}

	openFee := Fee(contracts, price)

	l.Positions[intent.MarketID] = &Position{
		MarketID:   intent.MarketID,
		GameID:     state.GameID,
		Team:       m.Team,
		Contracts:  contracts,
		EntryPrice: price,
		OpenFee:    openFee,
	}
	l.Cash -= intent.Size + openFee

	l.Trades = append(l.Trades, Trade{
		Timestamp: state.Timestamp,
		MarketID:  intent.MarketID,
		Action:    ActionOpen,
		Price:     price,
		Contracts: contracts,
		PnL:       0,
	})
	return nil
}

// close realizes a position at price. auto marks a forced settlement:
// the action tag becomes auto_close and the close fee is waived. Closing a
// market with no open position is a no-op. price may be 0 here (losing
// settlement); Apply only rejects non-positive prices on the taker path.
func (e *Engine) close(marketID string, price float64, state *market.GameState, l *Ledger, auto bool) {
	pos, ok := l.Positions[marketID]
	if !ok || price < 0 {
		return
	}

	var closeFee float64
	if !auto {
		closeFee = Fee(pos.Contracts, price)
	}

	proceeds := pos.Contracts * price
	l.Cash += proceeds - closeFee
	delete(l.Positions, marketID)

	action := ActionClose
	if auto {
		action = ActionAutoClose
	}

	l.Trades = append(l.Trades, Trade{
		Timestamp: state.Timestamp,
		MarketID:  marketID,
		Action:    action,
		Price:     price,
		Contracts: pos.Contracts,
		PnL:       pos.Contracts*(price-pos.EntryPrice) - pos.OpenFee - closeFee,
	})
}

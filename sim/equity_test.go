package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddslab/backcourt/market"
)

func TestEquity(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	l := NewLedger(1000)

	st := gameState("g1", market.Market{ID: "M", Team: "GSW", YesAsk: market.Ptr(0.10)})
	require.NoError(t, e.Apply(Intent{MarketID: "M", Action: ActionOpen, Size: 100}, st, l))
	cash := l.Cash

	t.Run("marks_open_positions", func(t *testing.T) {
		t.Parallel()
		marked := gameState("g1", market.Market{ID: "M", Price: market.Ptr(0.25)})
		assert.InDelta(t, cash+1000*0.25, Equity(marked, l), 1e-9)
	})

	t.Run("nil_mark_price_skips_position", func(t *testing.T) {
		t.Parallel()
		stale := gameState("g1", market.Market{ID: "M", YesBid: market.Ptr(0.2)})
		assert.InDelta(t, cash, Equity(stale, l), 1e-9)
	})

	t.Run("absent_market_skips_position", func(t *testing.T) {
		t.Parallel()
		other := gameState("g1", market.Market{ID: "OTHER", Price: market.Ptr(0.9)})
		assert.InDelta(t, cash, Equity(other, l), 1e-9)
	})

	t.Run("cash_only_ledger", func(t *testing.T) {
		t.Parallel()
		empty := NewLedger(750)
		assert.InDelta(t, 750.0, Equity(gameState("g1"), empty), 1e-9)
	})
}

func TestViewIsDetachedCopy(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	l := NewLedger(1000)
	st := gameState("g1", market.Market{ID: "M", Team: "GSW", YesAsk: market.Ptr(0.10)})
	require.NoError(t, e.Apply(Intent{MarketID: "M", Action: ActionOpen, Size: 100}, st, l))

	v := l.View(Equity(st, l))

	pv, ok := v.Position("M")
	require.True(t, ok)
	assert.InDelta(t, 100.0, pv.DollarsAtRisk, 1e-9)
	assert.InDelta(t, 1000.0, pv.Contracts, 1e-9)
	assert.InDelta(t, 0.10, pv.EntryPrice, 1e-9)

	// Mutating the view must not leak into the ledger.
	v.Positions["M"] = PositionView{DollarsAtRisk: 9999}
	assert.InDelta(t, 100.0, l.Positions["M"].CostBasis(), 1e-9)

	_, ok = v.Position("NONE")
	assert.False(t, ok)
}

package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddslab/backcourt/sim"
)

func TestLateGameUnderdog(t *testing.T) {
	t.Parallel()

	t.Run("buys_cheap_underdog_late_in_close_game", func(t *testing.T) {
		t.Parallel()
		s := NewLateGameUnderdog(Params{"stake": 100})

		st := crunchState(0.90, 0.10)
		intents := s.OnState(st, emptyView())

		require.Len(t, intents, 1)
		assert.Equal(t, "AWAY", intents[0].MarketID)
		assert.Equal(t, sim.ActionOpen, intents[0].Action)
		assert.InDelta(t, 100.0, intents[0].Size, 1e-9)
	})

	t.Run("underdog_too_expensive", func(t *testing.T) {
		t.Parallel()
		s := NewLateGameUnderdog(nil)
		assert.Empty(t, s.OnState(crunchState(0.75, 0.25), emptyView()))
	})

	t.Run("too_early_in_game", func(t *testing.T) {
		t.Parallel()
		s := NewLateGameUnderdog(nil)
		st := crunchState(0.90, 0.10)
		st.TimeRemaining = 22.0
		assert.Empty(t, s.OnState(st, emptyView()))
	})

	t.Run("blowout_score", func(t *testing.T) {
		t.Parallel()
		s := NewLateGameUnderdog(nil)
		st := crunchState(0.95, 0.05)
		st.ScoreDiff = 18
		assert.Empty(t, s.OnState(st, emptyView()))
	})

	t.Run("no_double_entry_on_existing_risk", func(t *testing.T) {
		t.Parallel()
		s := NewLateGameUnderdog(nil)
		assert.Empty(t, s.OnState(crunchState(0.90, 0.10), viewWithRisk("AWAY")))
	})

	t.Run("no_priced_markets", func(t *testing.T) {
		t.Parallel()
		s := NewLateGameUnderdog(nil)
		st := crunchState(0.90, 0.10)
		for i := range st.Markets {
			st.Markets[i].YesAsk = nil
		}
		assert.Empty(t, s.OnState(st, emptyView()))
	})
}

func TestTightGameCoinflip(t *testing.T) {
	t.Parallel()

	t.Run("buys_cheaper_side_of_coin_flip", func(t *testing.T) {
		t.Parallel()
		s := NewTightGameCoinflip(nil)

		intents := s.OnState(crunchState(0.55, 0.45), emptyView())
		require.Len(t, intents, 1)
		assert.Equal(t, "AWAY", intents[0].MarketID)
		assert.InDelta(t, 25.0, intents[0].Size, 1e-9)
	})

	t.Run("requires_both_sides_in_band", func(t *testing.T) {
		t.Parallel()
		s := NewTightGameCoinflip(nil)
		// Away side far outside the coin-flip band.
		assert.Empty(t, s.OnState(crunchState(0.55, 0.10), emptyView()))
	})

	t.Run("not_crunch_time", func(t *testing.T) {
		t.Parallel()
		s := NewTightGameCoinflip(nil)
		st := crunchState(0.55, 0.45)
		st.Quarter = 2
		assert.Empty(t, s.OnState(st, emptyView()))
	})

	t.Run("score_not_close", func(t *testing.T) {
		t.Parallel()
		s := NewTightGameCoinflip(nil)
		st := crunchState(0.55, 0.45)
		st.ScoreDiff = 9
		assert.Empty(t, s.OnState(st, emptyView()))
	})

	t.Run("existing_risk_blocks_entry", func(t *testing.T) {
		t.Parallel()
		s := NewTightGameCoinflip(nil)
		assert.Empty(t, s.OnState(crunchState(0.55, 0.45), viewWithRisk("AWAY")))
	})
}

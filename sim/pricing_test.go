package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddslab/backcourt/market"
)

func TestResolvePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		m        market.Market
		dir      Direction
		expected *float64
	}{
		{
			name: "buy_prefers_ask",
			m:    market.Market{YesBid: market.Ptr(0.59), YesAsk: market.Ptr(0.61), Price: market.Ptr(0.60)},
			dir:  Buy, expected: market.Ptr(0.61),
		},
		{
			name: "buy_falls_back_to_mark",
			m:    market.Market{YesBid: market.Ptr(0.59), Price: market.Ptr(0.60)},
			dir:  Buy, expected: market.Ptr(0.60),
		},
		{
			name: "buy_falls_back_to_bid",
			m:    market.Market{YesBid: market.Ptr(0.59)},
			dir:  Buy, expected: market.Ptr(0.59),
		},
		{
			name: "sell_prefers_bid",
			m:    market.Market{YesBid: market.Ptr(0.59), YesAsk: market.Ptr(0.61), Price: market.Ptr(0.60)},
			dir:  Sell, expected: market.Ptr(0.59),
		},
		{
			name: "sell_falls_back_to_mark",
			m:    market.Market{YesAsk: market.Ptr(0.61), Price: market.Ptr(0.60)},
			dir:  Sell, expected: market.Ptr(0.60),
		},
		{
			name: "sell_falls_back_to_ask",
			m:    market.Market{YesAsk: market.Ptr(0.61)},
			dir:  Sell, expected: market.Ptr(0.61),
		},
		{
			name: "no_price_source",
			m:    market.Market{},
			dir:  Buy, expected: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ResolvePrice(tt.m, tt.dir)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 1e-9)
		})
	}
}

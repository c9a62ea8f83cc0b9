package sizing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/model"
)

func tradesWithProfits(profits ...float64) []model.Trade {
	trades := make([]model.Trade, len(profits))
	for i, p := range profits {
		trades[i] = model.Trade{Symbol: "EURUSD", Profit: p}
	}
	return trades
}

func TestKelly(t *testing.T) {
	got, err := Kelly(0.55, 1.25, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.19, got, 1e-6)

	half, err := Kelly(0.55, 1.25, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.19*0.5, half, 1e-6)
}

func TestKelly_NegativeEdge(t *testing.T) {
	// A losing system produces a negative fraction, not an error.
	got, err := Kelly(0.3, 0.5, 1.0)
	require.NoError(t, err)
	assert.Less(t, got, 0.0)
}

func TestKelly_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		winProb    float64
		ratio      float64
		multiplier float64
		wantErr    error
	}{
		{name: "win probability one", winProb: 1.0, ratio: 1.25, multiplier: 1.0, wantErr: ErrWinProbability},
		{name: "win probability zero", winProb: 0.0, ratio: 1.25, multiplier: 1.0, wantErr: ErrWinProbability},
		{name: "win probability above one", winProb: 1.5, ratio: 1.25, multiplier: 1.0, wantErr: ErrWinProbability},
		{name: "zero ratio", winProb: 0.55, ratio: 0.0, multiplier: 1.0, wantErr: ErrWinLossRatio},
		{name: "negative ratio", winProb: 0.55, ratio: -2.0, multiplier: 1.0, wantErr: ErrWinLossRatio},
		{name: "infinite ratio", winProb: 0.55, ratio: math.Inf(1), multiplier: 1.0, wantErr: ErrWinLossRatio},
		{name: "multiplier above one", winProb: 0.55, ratio: 1.25, multiplier: 1.5, wantErr: ErrMultiplier},
		{name: "negative multiplier", winProb: 0.55, ratio: 1.25, multiplier: -0.5, wantErr: ErrMultiplier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Kelly(tt.winProb, tt.ratio, tt.multiplier)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOptimalF_EmptyInput(t *testing.T) {
	_, err := OptimalF(nil, 1000, 1e-6)
	assert.ErrorIs(t, err, ErrNoTrades)
}

func TestOptimalF_InvalidSearchParams(t *testing.T) {
	trades := tradesWithProfits(10, -5)

	_, err := OptimalF(trades, 0, 1e-6)
	assert.ErrorIs(t, err, ErrSearchParams)

	_, err = OptimalF(trades, 1000, 0)
	assert.ErrorIs(t, err, ErrSearchParams)
}

func TestOptimalF_NoLosses(t *testing.T) {
	got, err := OptimalF(tradesWithProfits(10, 20, 30), 1000, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestOptimalF_KnownOptimum(t *testing.T) {
	// Outcomes are normalized as -profit/|largestLoss|, so for profits
	// {1, -2} the objective is TWR(f) = (1-f/2)(1+f), which peaks at f = 0.5.
	got, err := OptimalF(tradesWithProfits(1, -2), 1000, 1e-8)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-4)
}

func TestOptimalF_BoundaryOptimum(t *testing.T) {
	// For profits {2, -1} the objective (1-2f)(1+f) is decreasing on the
	// whole bracket, so the search converges to the zero boundary.
	got, err := OptimalF(tradesWithProfits(2, -1), 1000, 1e-8)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-4)
}

func TestOptimalF_StaysInDomain(t *testing.T) {
	// A win much larger than the worst loss tightens the search bracket;
	// the result must keep every per-trade multiplier positive.
	trades := tradesWithProfits(100, -10, 50, -5)
	f, err := OptimalF(trades, 1000, 1e-8)
	require.NoError(t, err)

	for _, tr := range trades {
		assert.Greater(t, 1+f*(-tr.Profit/10.0), 0.0)
	}
}

func TestTerminalWealthRelative(t *testing.T) {
	trades := tradesWithProfits(1, -2)

	// At f=0 no capital is at risk.
	assert.InDelta(t, 1.0, TerminalWealthRelative(trades, 0), 1e-12)
	// (1 - 0.5/2)(1 + 0.5) = 1.125
	assert.InDelta(t, 1.125, TerminalWealthRelative(trades, 0.5), 1e-12)
	// Loss-free histories have no normalizing reference.
	assert.Equal(t, 1.0, TerminalWealthRelative(tradesWithProfits(1, 2), 0.5))
}

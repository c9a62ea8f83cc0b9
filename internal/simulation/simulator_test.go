package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/model"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/pkg/logger"
)

func tradesWithProfits(profits ...float64) []model.Trade {
	trades := make([]model.Trade, len(profits))
	for i, p := range profits {
		trades[i] = model.Trade{Symbol: "EURUSD", Profit: p}
	}
	return trades
}

func testParams() model.ChallengeParams {
	return model.ChallengeParams{
		AccountSize:           100000,
		ProfitTargetPercent:   10,
		MaxDailyLossPercent:   5,
		MaxOverallLossPercent: 10,
		MinTradingDays:        5,
	}
}

func newTestSimulator(cfg Config) *Simulator {
	return New(cfg, logger.NewNop())
}

func TestRun_InvalidInputs(t *testing.T) {
	sim := newTestSimulator(Config{BaseSeed: 42})
	trades := tradesWithProfits(50, -25)

	_, err := sim.Run(context.Background(), nil, testParams(), 0.01, 100)
	assert.ErrorIs(t, err, ErrNoTrades)

	_, err = sim.Run(context.Background(), trades, testParams(), 0, 100)
	assert.ErrorIs(t, err, ErrRiskFraction)

	_, err = sim.Run(context.Background(), trades, testParams(), 0.01, 0)
	assert.ErrorIs(t, err, ErrSimulationCount)
}

func TestRun_ResultConsistency(t *testing.T) {
	sim := newTestSimulator(Config{BaseSeed: 42})
	trades := tradesWithProfits(50, -25, 30, -40, 80, -10, 60, -20)

	result, err := sim.Run(context.Background(), trades, testParams(), 0.01, 100)
	require.NoError(t, err)

	assert.Equal(t, 100, result.TotalSimulations)
	assert.GreaterOrEqual(t, result.PassedSimulations, 0)
	assert.LessOrEqual(t, result.PassedSimulations, 100)
	assert.GreaterOrEqual(t, result.PassRate, 0.0)
	assert.LessOrEqual(t, result.PassRate, 1.0)
	assert.InDelta(t, float64(result.PassedSimulations)/100.0, result.PassRate, 1e-12)
}

func TestRun_DeterministicForSeed(t *testing.T) {
	trades := tradesWithProfits(50, -25, 30, -40, 80, -10)

	// Different worker counts must not change the outcome; streams are
	// seeded by run index, not by worker.
	first, err := newTestSimulator(Config{BaseSeed: 7, Workers: 1}).
		Run(context.Background(), trades, testParams(), 0.01, 500)
	require.NoError(t, err)

	second, err := newTestSimulator(Config{BaseSeed: 7, Workers: 8}).
		Run(context.Background(), trades, testParams(), 0.01, 500)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_ProfitableHistoryAlwaysPasses(t *testing.T) {
	// Every outcome is a win; with no loss in the history the outcome is
	// normalized by the account size, so each trade adds
	// equity * 0.5 * (1000/10000) = 5% and the 10% target falls on day 2.
	sim := newTestSimulator(Config{BaseSeed: 1})
	trades := tradesWithProfits(1000, 1000, 1000, 1000, 1000)
	params := model.ChallengeParams{
		AccountSize:           10000,
		ProfitTargetPercent:   10,
		MaxDailyLossPercent:   5,
		MaxOverallLossPercent: 10,
		MinTradingDays:        1,
	}

	result, err := sim.Run(context.Background(), trades, params, 0.5, 200)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.PassRate)
	assert.Equal(t, 200, result.PassedSimulations)
}

func TestRun_RuinousHistoryAlwaysFails(t *testing.T) {
	// Every draw loses half the account, breaching the daily limit at once.
	sim := newTestSimulator(Config{BaseSeed: 1})
	trades := tradesWithProfits(-1000, -1000, -1000)

	result, err := sim.Run(context.Background(), trades, testParams(), 0.5, 200)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.PassRate)
	assert.Equal(t, 0, result.PassedSimulations)
}

func TestRun_MinTradingDaysExtendsPath(t *testing.T) {
	// Three historical trades but fifty required days: the resampled path
	// must be long enough for the day-count requirement to be satisfiable,
	// and an always-winning history then passes on day fifty.
	sim := newTestSimulator(Config{BaseSeed: 3})
	trades := tradesWithProfits(100, 100, 100)
	params := model.ChallengeParams{
		AccountSize:           10000,
		ProfitTargetPercent:   1,
		MaxDailyLossPercent:   5,
		MaxOverallLossPercent: 10,
		MinTradingDays:        50,
	}

	result, err := sim.Run(context.Background(), trades, params, 0.1, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.PassRate)
}

func TestRun_ZeroProfitTargetGatedByMinDays(t *testing.T) {
	// A zero profit target sets the target at the starting balance, so the
	// first winning draw already satisfies it; passing must still wait for
	// the minimum day count. A losing draw costs 10% of equity and breaches
	// the 5% daily limit at once, so requiring three days only passes paths
	// opening with three straight wins (~1/8), while requiring one day
	// passes on any opening win (~1/2).
	sim := newTestSimulator(Config{BaseSeed: 11})
	trades := tradesWithProfits(100, 100, -1000, -1000)
	params := model.ChallengeParams{
		AccountSize:           10000,
		ProfitTargetPercent:   0,
		MaxDailyLossPercent:   5,
		MaxOverallLossPercent: 50,
		MinTradingDays:        3,
	}

	gated, err := sim.Run(context.Background(), trades, params, 0.1, 500)
	require.NoError(t, err)
	assert.Greater(t, gated.PassRate, 0.0)
	assert.Less(t, gated.PassRate, 0.3)

	params.MinTradingDays = 1
	immediate, err := sim.Run(context.Background(), trades, params, 0.1, 500)
	require.NoError(t, err)
	assert.Greater(t, immediate.PassRate, gated.PassRate)
}

func TestRun_TradesPerDayGroupsDailyLoss(t *testing.T) {
	// At risk fraction 0.04 a losing draw costs 4% of equity, under the 5%
	// daily limit. With one trade per day the limit can never trip; with two
	// trades per day a double-loss day exceeds it, so grouping must strictly
	// reduce the pass rate.
	trades := tradesWithProfits(500, -300, 500, -300, 500, -300, 500, -300, 500, -300)
	params := model.ChallengeParams{
		AccountSize:           10000,
		ProfitTargetPercent:   10,
		MaxDailyLossPercent:   5,
		MaxOverallLossPercent: 50,
		MinTradingDays:        1,
	}

	ungrouped, err := newTestSimulator(Config{BaseSeed: 9, TradesPerDay: 1}).
		Run(context.Background(), trades, params, 0.04, 500)
	require.NoError(t, err)

	grouped, err := newTestSimulator(Config{BaseSeed: 9, TradesPerDay: 2}).
		Run(context.Background(), trades, params, 0.04, 500)
	require.NoError(t, err)

	assert.Greater(t, ungrouped.PassRate, grouped.PassRate)
	assert.Less(t, grouped.PassRate, 1.0)
}

func TestRun_CanceledContext(t *testing.T) {
	sim := newTestSimulator(Config{BaseSeed: 42})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, tradesWithProfits(50, -25), testParams(), 0.01, 1000)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep(t *testing.T) {
	sim := newTestSimulator(Config{BaseSeed: 42})
	trades := tradesWithProfits(50, -25, 30, -40, 80, -10, 60, -20)
	fractions := []float64{0.02, 0.001, 0.01}

	result, err := sim.Sweep(context.Background(), trades, testParams(), fractions, 200)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 3)

	// Outcomes come back in ascending fraction order.
	assert.Equal(t, 0.001, result.Outcomes[0].RiskFraction)
	assert.Equal(t, 0.01, result.Outcomes[1].RiskFraction)
	assert.Equal(t, 0.02, result.Outcomes[2].RiskFraction)

	best := result.Outcomes[0]
	for _, o := range result.Outcomes[1:] {
		if o.Result.PassRate > best.Result.PassRate {
			best = o
		}
	}
	assert.Equal(t, best.RiskFraction, result.BestFraction)
	assert.Equal(t, best.Result.PassRate, result.BestPassRate)
}

func TestSweep_InvalidInputs(t *testing.T) {
	sim := newTestSimulator(Config{BaseSeed: 42})
	trades := tradesWithProfits(50, -25)

	_, err := sim.Sweep(context.Background(), trades, testParams(), nil, 100)
	assert.ErrorIs(t, err, ErrNoFractions)

	_, err = sim.Sweep(context.Background(), trades, testParams(), []float64{0.01, -0.5}, 100)
	assert.ErrorIs(t, err, ErrRiskFraction)
}

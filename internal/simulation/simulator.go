// Package simulation estimates, by Monte Carlo resampling, the probability
// that a risk fraction lets a trader pass a prop-firm challenge.
//
// Each run bootstraps a synthetic outcome path from the historical profit
// distribution (sampling with replacement), scales outcomes by the risk
// fraction against current equity, and walks the path under the challenge's
// stopping rules. Runs are independent and execute in parallel with one
// seeded PCG stream per run, so a batch is deterministic for a given base
// seed regardless of worker scheduling.
package simulation

import (
	"context"
	"errors"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/model"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/pkg/logger"
)

var (
	ErrNoTrades        = errors.New("simulation: no trades provided")
	ErrRiskFraction    = errors.New("simulation: risk fraction must be positive")
	ErrSimulationCount = errors.New("simulation: simulation count must be positive")
)

// Config tunes execution, not semantics. Workers defaults to GOMAXPROCS.
// TradesPerDay controls day grouping: the default 1 treats each resampled
// trade as one simulated trading day; larger values batch consecutive trades
// into a day, with daily P&L resetting at each boundary.
type Config struct {
	Workers      int
	TradesPerDay int
	BaseSeed     uint64
}

type Simulator struct {
	cfg Config
	log *logger.Logger
}

func New(cfg Config, log *logger.Logger) *Simulator {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.TradesPerDay <= 0 {
		cfg.TradesPerDay = 1
	}
	return &Simulator{cfg: cfg, log: log}
}

// Run executes simulationCount independent challenge runs and aggregates the
// pass rate. Invalid inputs fail fast before any worker starts. The context
// aborts outstanding runs; a canceled batch returns the context error, never
// a partial result.
func (s *Simulator) Run(ctx context.Context, trades []model.Trade, params model.ChallengeParams, riskFraction float64, simulationCount int) (*model.SimulationResult, error) {
	if len(trades) == 0 {
		return nil, ErrNoTrades
	}
	if riskFraction <= 0 {
		return nil, ErrRiskFraction
	}
	if simulationCount <= 0 {
		return nil, ErrSimulationCount
	}

	profits := make([]float64, len(trades))
	for i, t := range trades {
		profits[i] = t.Profit
	}

	// Loss-free histories have no largest loss to normalize against; fall
	// back to the account size so outcomes stay in sensible proportion.
	largestLoss := 0.0
	for _, p := range profits {
		if p < largestLoss {
			largestLoss = p
		}
	}
	normalizer := -largestLoss
	if normalizer == 0 {
		normalizer = params.AccountSize
	}

	// The path must be long enough for the minimum-days requirement to be
	// satisfiable at all.
	pathLen := len(trades)
	if need := params.MinTradingDays * s.cfg.TradesPerDay; need > pathLen {
		pathLen = need
	}

	workers := s.cfg.Workers
	if workers > simulationCount {
		workers = simulationCount
	}

	passed := make([]int, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			count := 0
			for run := w; run < simulationCount; run += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				rng := rand.New(rand.NewPCG(s.cfg.BaseSeed, uint64(run)))
				if s.runOnce(rng, profits, normalizer, params, riskFraction, pathLen) {
					count++
				}
			}
			passed[w] = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalPassed := 0
	for _, c := range passed {
		totalPassed += c
	}

	return &model.SimulationResult{
		TotalSimulations:  simulationCount,
		PassedSimulations: totalPassed,
		PassRate:          float64(totalPassed) / float64(simulationCount),
	}, nil
}

// runOnce walks one bootstrapped path. The run fails the instant the daily
// or overall loss limit is breached, passes once equity holds the profit
// target with the minimum day count met, and counts as failed if the path
// ends undecided.
func (s *Simulator) runOnce(rng *rand.Rand, profits []float64, normalizer float64, params model.ChallengeParams, riskFraction float64, pathLen int) bool {
	equity := params.AccountSize
	target := params.AccountSize * (1 + params.ProfitTargetPercent/100)
	floor := params.AccountSize * (1 - params.MaxOverallLossPercent/100)
	dailyLimit := params.AccountSize * params.MaxDailyLossPercent / 100

	dailyPL := 0.0
	tradingDays := 0

	for i := 0; i < pathLen; i++ {
		if i%s.cfg.TradesPerDay == 0 {
			dailyPL = 0
			tradingDays++
		}

		outcome := profits[rng.IntN(len(profits))]
		tradePL := equity * riskFraction * (outcome / normalizer)
		dailyPL += tradePL
		equity += tradePL

		if -dailyPL > dailyLimit {
			return false
		}
		if equity < floor {
			return false
		}
		if equity >= target && tradingDays >= params.MinTradingDays {
			return true
		}
	}

	return false
}

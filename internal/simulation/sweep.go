package simulation

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/model"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/pkg/logger"
)

var ErrNoFractions = errors.New("simulation: no candidate risk fractions provided")

// FractionOutcome pairs one candidate risk fraction with its batch result.
type FractionOutcome struct {
	RiskFraction float64                `json:"risk_fraction"`
	Result       model.SimulationResult `json:"result"`
}

// SweepResult holds per-fraction outcomes in ascending fraction order plus
// the recommended fraction: highest pass rate, smaller fraction on ties.
type SweepResult struct {
	Outcomes     []FractionOutcome `json:"outcomes"`
	BestFraction float64           `json:"best_fraction"`
	BestPassRate float64           `json:"best_pass_rate"`
}

// Sweep runs one simulation batch per candidate fraction, concurrently; the
// fractions are independent, so each batch just reuses Run.
func (s *Simulator) Sweep(ctx context.Context, trades []model.Trade, params model.ChallengeParams, fractions []float64, simulationCount int) (*SweepResult, error) {
	if len(fractions) == 0 {
		return nil, ErrNoFractions
	}
	for _, f := range fractions {
		if f <= 0 {
			return nil, ErrRiskFraction
		}
	}

	candidates := append([]float64(nil), fractions...)
	sort.Float64s(candidates)

	outcomes := make([]FractionOutcome, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	for i, fraction := range candidates {
		g.Go(func() error {
			result, err := s.Run(ctx, trades, params, fraction, simulationCount)
			if err != nil {
				return err
			}
			outcomes[i] = FractionOutcome{RiskFraction: fraction, Result: *result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := outcomes[0]
	for _, o := range outcomes[1:] {
		if o.Result.PassRate > best.Result.PassRate {
			best = o
		}
	}

	s.log.DebugContext(ctx, "risk fraction sweep completed",
		logger.IntField("candidates", len(candidates)),
		logger.Field("best_fraction", best.RiskFraction),
		logger.Field("best_pass_rate", best.Result.PassRate),
	)

	return &SweepResult{
		Outcomes:     outcomes,
		BestFraction: best.RiskFraction,
		BestPassRate: best.Result.PassRate,
	}, nil
}

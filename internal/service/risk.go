package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/config"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/analytics"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/dto"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/parser"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/simulation"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/sizing"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/pkg/cache"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/pkg/logger"
)

// ErrInvalidRequest wraps validator failures on incoming requests.
var ErrInvalidRequest = errors.New("service: invalid request")

// RiskService orchestrates the analytics engine: statement parsing,
// performance analysis, position sizing and challenge evaluation. Completed
// evaluations are parked in a TTL store and retrievable by ID.
type RiskService interface {
	AnalyzeStatement(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalysisReport, error)
	EvaluateChallenge(ctx context.Context, req dto.ChallengeRequest) (*dto.ChallengeEvaluation, error)
	GetEvaluation(id string) (*dto.ChallengeEvaluation, bool)
}

type riskService struct {
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	simulator *simulation.Simulator
	store     cache.Cache
}

// NewRiskService creates the orchestration layer over the pure computation
// packages.
func NewRiskService(
	cfg *config.Config,
	log *logger.Logger,
	validator *goValidator.Validate,
	store cache.Cache,
) RiskService {
	sim := simulation.New(simulation.Config{
		Workers:      cfg.Simulator.Workers,
		TradesPerDay: cfg.Simulator.TradesPerDay,
		BaseSeed:     cfg.Simulator.BaseSeed,
	}, log)

	return &riskService{
		cfg:       cfg,
		log:       log,
		validator: validator,
		simulator: sim,
		store:     store,
	}
}

// AnalyzeStatement parses the export, computes performance metrics and both
// sizing recommendations. Kelly is computed from the measured win
// probability and payoff ratio; histories outside the formula's domain are
// reported with KellyDefined=false instead of a hard failure, since the rest
// of the report is still valid.
func (s *riskService) AnalyzeStatement(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalysisReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	trades, err := parser.Parse(req.Content, parser.Format(req.Format))
	if err != nil {
		s.log.ErrorContext(ctx, "failed to parse statement", logger.ErrorField(err))
		return nil, err
	}

	metrics, err := analytics.Analyze(trades)
	if err != nil {
		return nil, err
	}

	multiplier := s.cfg.Sizing.KellyMultiplier
	if req.KellyMultiplier != nil {
		multiplier = *req.KellyMultiplier
	}

	report := &dto.AnalysisReport{Metrics: *metrics}

	kellyFraction, err := sizing.Kelly(metrics.WinProbability, metrics.WinLossRatio, multiplier)
	if err != nil {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("kelly criterion not defined for this history: %v", err))
	} else {
		report.KellyFraction = kellyFraction
		report.KellyDefined = true
		if kellyFraction > s.cfg.Sizing.AggressiveKellyThreshold {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("kelly fraction %.4f exceeds the %.2f aggressive threshold, consider a smaller multiplier", kellyFraction, s.cfg.Sizing.AggressiveKellyThreshold))
		}
		if kellyFraction < 0 {
			report.Warnings = append(report.Warnings,
				"negative kelly fraction: this history has no positive edge, do not increase size")
		}
	}

	optimalF, err := sizing.OptimalF(trades, s.cfg.Sizing.MaxIterations, s.cfg.Sizing.Tolerance)
	if err != nil {
		s.log.ErrorContext(ctx, "optimal f search failed", logger.ErrorField(err))
		return nil, err
	}
	report.OptimalF = optimalF
	report.TerminalWealthRelative = sizing.TerminalWealthRelative(trades, optimalF)

	s.log.InfoContext(ctx, "statement analyzed",
		logger.IntField("total_trades", metrics.TotalTrades),
		logger.FloatField("win_probability", metrics.WinProbability),
		logger.FloatField("optimal_f", optimalF),
	)

	return report, nil
}

// EvaluateChallenge parses the export, sweeps the candidate risk fractions
// through the Monte Carlo simulator and stores the evaluation under a fresh
// ID for later lookup.
func (s *riskService) EvaluateChallenge(ctx context.Context, req dto.ChallengeRequest) (*dto.ChallengeEvaluation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	trades, err := parser.Parse(req.Content, parser.Format(req.Format))
	if err != nil {
		s.log.ErrorContext(ctx, "failed to parse statement", logger.ErrorField(err))
		return nil, err
	}

	fractions := req.RiskFractions
	if len(fractions) == 0 {
		fractions = s.cfg.Sweep.RiskFractions
	}
	simulationCount := req.SimulationCount
	if simulationCount == 0 {
		simulationCount = s.cfg.Simulator.SimulationCount
	}

	sweep, err := s.simulator.Sweep(ctx, trades, req.Params, fractions, simulationCount)
	if err != nil {
		s.log.ErrorContext(ctx, "challenge sweep failed", logger.ErrorField(err))
		return nil, err
	}

	eval := &dto.ChallengeEvaluation{
		ID:                  uuid.NewString(),
		Params:              req.Params,
		SimulationCount:     simulationCount,
		RecommendedFraction: sweep.BestFraction,
		PassRate:            sweep.BestPassRate,
		Outcomes:            sweep.Outcomes,
		CreatedAt:           time.Now().UTC(),
	}
	s.store.Set(eval.ID, eval, s.cfg.Store.DefaultExpiration)

	s.log.InfoContext(ctx, "challenge evaluated",
		logger.StringField("evaluation_id", eval.ID),
		logger.FloatField("recommended_fraction", eval.RecommendedFraction),
		logger.FloatField("pass_rate", roundRate(eval.PassRate)),
		logger.IntField("simulations_per_fraction", simulationCount),
	)

	return eval, nil
}

// GetEvaluation looks up a stored evaluation; false when the ID is unknown
// or the entry expired.
func (s *riskService) GetEvaluation(id string) (*dto.ChallengeEvaluation, bool) {
	return cache.GetTyped[*dto.ChallengeEvaluation](s.store, id)
}

func roundRate(r float64) float64 {
	return math.Round(r*10000) / 10000
}

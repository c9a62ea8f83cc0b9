package dto

import (
	"time"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/model"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/simulation"
)

// AnalyzeRequest carries a raw statement export through the full analysis
// pipeline: parse, performance metrics, Kelly and Optimal F sizing.
type AnalyzeRequest struct {
	Content string `json:"content" validate:"required"`
	Format  string `json:"format" validate:"required,oneof=csv xml"`
	// KellyMultiplier damps the full Kelly fraction (0.5 = half-Kelly).
	// Nil means "use the configured default"; an explicit 0 is a valid
	// multiplier and zeroes the recommendation.
	KellyMultiplier *float64 `json:"kelly_multiplier" validate:"omitempty,gte=0,lte=1"`
}

// AnalysisReport is the combined output of the analysis pipeline.
// KellyDefined is false when the measured statistics sit outside the Kelly
// formula's domain (all wins, all losses, or no meaningful payoff ratio);
// KellyFraction is only meaningful when it is true.
type AnalysisReport struct {
	Metrics                model.PerformanceMetrics `json:"metrics"`
	KellyFraction          float64                  `json:"kelly_fraction"`
	KellyDefined           bool                     `json:"kelly_defined"`
	OptimalF               float64                  `json:"optimal_f"`
	TerminalWealthRelative float64                  `json:"terminal_wealth_relative"`
	Warnings               []string                 `json:"warnings,omitempty"`
}

// ChallengeRequest asks for a Monte Carlo challenge evaluation over a set of
// candidate risk fractions. Empty RiskFractions falls back to the configured
// candidate set; zero SimulationCount falls back to the configured default.
type ChallengeRequest struct {
	Content         string                `json:"content" validate:"required"`
	Format          string                `json:"format" validate:"required,oneof=csv xml"`
	Params          model.ChallengeParams `json:"params"`
	RiskFractions   []float64             `json:"risk_fractions" validate:"omitempty,dive,gt=0"`
	SimulationCount int                   `json:"simulation_count" validate:"gte=0"`
}

// ChallengeEvaluation is a stored, retrievable sweep outcome.
type ChallengeEvaluation struct {
	ID                  string                       `json:"id"`
	Params              model.ChallengeParams        `json:"params"`
	SimulationCount     int                          `json:"simulation_count"`
	RecommendedFraction float64                      `json:"recommended_fraction"`
	PassRate            float64                      `json:"pass_rate"`
	Outcomes            []simulation.FractionOutcome `json:"outcomes"`
	CreatedAt           time.Time                    `json:"created_at"`
}

// Package sizing derives capital-risk fractions from trading performance:
// the Kelly Criterion from win probability and payoff ratio, and Ralph
// Vince's Optimal F from the raw trade sequence.
package sizing

import (
	"errors"
	"math"
)

var (
	ErrNoTrades       = errors.New("sizing: no trades provided")
	ErrWinProbability = errors.New("sizing: win probability must be strictly between 0 and 1")
	ErrWinLossRatio   = errors.New("sizing: win/loss ratio must be positive and finite")
	ErrMultiplier     = errors.New("sizing: fractional multiplier must be within [0, 1]")
	ErrSearchParams   = errors.New("sizing: max iterations and tolerance must be positive")
)

// Kelly returns the fraction of capital to risk per trade that maximizes
// long-run geometric growth, damped by the fractional multiplier (0.5 for
// half-Kelly). The formula is undefined at the probability boundaries: at 1
// there is no loss leg, at 0 no win leg, and a zero or infinite payoff ratio
// carries no information to size against.
func Kelly(winProbability, winLossRatio, multiplier float64) (float64, error) {
	if winProbability <= 0 || winProbability >= 1 || math.IsNaN(winProbability) {
		return 0, ErrWinProbability
	}
	if winLossRatio <= 0 || math.IsInf(winLossRatio, 0) || math.IsNaN(winLossRatio) {
		return 0, ErrWinLossRatio
	}
	if multiplier < 0 || multiplier > 1 || math.IsNaN(multiplier) {
		return 0, ErrMultiplier
	}

	kelly := winProbability - (1-winProbability)/winLossRatio
	return kelly * multiplier, nil
}

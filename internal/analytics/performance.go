// Package analytics computes aggregate performance statistics over a closed
// trade history.
package analytics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/model"
)

// ErrNoTrades is returned when a metric is requested for an empty history;
// statistics over zero trades are undefined, not zero.
var ErrNoTrades = errors.New("analytics: no trades to analyze")

// Analyze builds a fresh PerformanceMetrics snapshot from the trade sequence.
// A loss is any trade with Profit <= 0. The input is read, never retained,
// so repeated calls on the same sequence produce identical results.
func Analyze(trades []model.Trade) (*model.PerformanceMetrics, error) {
	if len(trades) == 0 {
		return nil, ErrNoTrades
	}

	total := len(trades)
	profits := make([]float64, 0, total)
	var wins, losses []float64
	for _, t := range trades {
		profits = append(profits, t.Profit)
		if t.Profit > 0 {
			wins = append(wins, t.Profit)
		} else {
			losses = append(losses, t.Profit)
		}
	}

	winProb := float64(len(wins)) / float64(total)
	lossProb := float64(len(losses)) / float64(total)

	var avgWin, avgLoss float64
	if len(wins) > 0 {
		avgWin = stat.Mean(wins, nil)
	}
	if len(losses) > 0 {
		avgLoss = stat.Mean(losses, nil)
	}

	return &model.PerformanceMetrics{
		TotalTrades:     total,
		WinProbability:  winProb,
		LossProbability: lossProb,
		AvgWin:          avgWin,
		AvgLoss:         avgLoss,
		WinLossRatio:    winLossRatio(avgWin, avgLoss, len(wins)),
		ProfitFactor:    profitFactor(wins, losses),
		Expectancy:      winProb*avgWin + lossProb*avgLoss,
		MaxDrawdown:     maxDrawdown(profits),
		SharpeRatio:     sharpeRatio(profits),
	}, nil
}

// winLossRatio is +Inf for a history with wins and no losses ("infinite
// edge", never NaN); downstream sizing refuses non-finite ratios.
func winLossRatio(avgWin, avgLoss float64, winCount int) float64 {
	switch {
	case avgLoss != 0:
		return avgWin / math.Abs(avgLoss)
	case winCount > 0:
		return math.Inf(1)
	default:
		return 0
	}
}

// profitFactor follows the same convention: +Inf when profits exist against
// zero gross loss, 0 for a history with no profits at all.
func profitFactor(wins, losses []float64) float64 {
	var grossProfit, grossLoss float64
	for _, w := range wins {
		grossProfit += w
	}
	for _, l := range losses {
		grossLoss += math.Abs(l)
	}
	switch {
	case grossLoss != 0:
		return grossProfit / grossLoss
	case grossProfit > 0:
		return math.Inf(1)
	default:
		return 0
	}
}

// maxDrawdown scans the cumulative equity curve in trade order, tracking the
// running peak and the deepest peak-to-current decline.
func maxDrawdown(profits []float64) float64 {
	var equity, peak, maxDD float64
	for _, p := range profits {
		equity += p
		if equity > peak {
			peak = equity
		}
		if dd := peak - equity; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// sharpeRatio is the per-trade mean over the population standard deviation
// of the profit series, unannualized; trades carry no timestamps here, so no
// time scaling is meaningful. Zero-variance series yield 0.
func sharpeRatio(profits []float64) float64 {
	mean := stat.Mean(profits, nil)
	std := math.Sqrt(stat.PopVariance(profits, nil))
	if std == 0 {
		return 0
	}
	return mean / std
}

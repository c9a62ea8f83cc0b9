package sizing

import (
	"math"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/model"
)

// invPhi is 1/φ, the golden-section reduction ratio.
const invPhi = 0.6180339887498949

// OptimalF finds the risk fraction f maximizing the Terminal Wealth Relative
// over the trade sequence, with per-trade outcomes normalized against the
// single largest loss. The search is golden-section over the bracket that
// keeps every per-trade multiplier strictly positive (TWR is log-concave
// there, so the bracket is unimodal), bounded by maxIterations and shrunk to
// tolerance. If the budget runs out first, the best midpoint found so far is
// returned.
//
// A history with no losing trade has nothing to size against and returns 0.
func OptimalF(trades []model.Trade, maxIterations int, tolerance float64) (float64, error) {
	if len(trades) == 0 {
		return 0, ErrNoTrades
	}
	if maxIterations <= 0 || tolerance <= 0 {
		return 0, ErrSearchParams
	}

	profits := make([]float64, len(trades))
	for i, t := range trades {
		profits[i] = t.Profit
	}

	largestLoss := largestLossMagnitude(profits)
	if largestLoss == 0 {
		return 0, nil
	}

	lo, hi := 0.0, searchUpperBound(profits, largestLoss)

	a := hi - invPhi*(hi-lo)
	b := lo + invPhi*(hi-lo)
	twrA := terminalWealthRelative(profits, a, largestLoss)
	twrB := terminalWealthRelative(profits, b, largestLoss)

	for i := 0; i < maxIterations && hi-lo > tolerance; i++ {
		if twrA < twrB {
			lo = a
			a, twrA = b, twrB
			b = lo + invPhi*(hi-lo)
			twrB = terminalWealthRelative(profits, b, largestLoss)
		} else {
			hi = b
			b, twrB = a, twrA
			a = hi - invPhi*(hi-lo)
			twrA = terminalWealthRelative(profits, a, largestLoss)
		}
	}

	return (lo + hi) / 2, nil
}

// TerminalWealthRelative reports the multiplicative capital growth factor of
// the trade sequence at risk fraction f. A loss-free history grows without a
// normalizing reference; its TWR is reported as 1.
func TerminalWealthRelative(trades []model.Trade, f float64) float64 {
	profits := make([]float64, len(trades))
	for i, t := range trades {
		profits[i] = t.Profit
	}
	largestLoss := largestLossMagnitude(profits)
	if largestLoss == 0 {
		return 1
	}
	return terminalWealthRelative(profits, f, largestLoss)
}

// largestLossMagnitude is |min profit| over losing trades, or 0 if none lose.
func largestLossMagnitude(profits []float64) float64 {
	worst := 0.0
	for _, p := range profits {
		if p < worst {
			worst = p
		}
	}
	return math.Abs(worst)
}

// searchUpperBound caps f below the point where any per-trade multiplier
// 1 + f*(-p/largestLoss) reaches zero, which would make TWR degenerate. The
// largest loss itself allows f up to 1; a win larger than the largest loss
// tightens the cap further.
func searchUpperBound(profits []float64, largestLoss float64) float64 {
	hi := 1.0
	for _, p := range profits {
		if p > 0 {
			if bound := largestLoss / p; bound < hi {
				hi = bound
			}
		}
	}
	return hi * (1 - 1e-9)
}

func terminalWealthRelative(profits []float64, f, largestLoss float64) float64 {
	twr := 1.0
	for _, p := range profits {
		twr *= 1 + f*(-p/largestLoss)
	}
	return twr
}

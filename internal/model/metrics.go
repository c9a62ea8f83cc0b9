package model

// PerformanceMetrics summarizes a closed-trade history. A loss is any trade
// with Profit <= 0, so WinProbability+LossProbability always sums to 1.
// WinLossRatio is +Inf for a history with wins and no losses; callers that
// feed it into sizing must check IsFinite-ness (the Kelly formula rejects it).
type PerformanceMetrics struct {
	TotalTrades     int     `json:"total_trades"`
	WinProbability  float64 `json:"win_probability"`
	LossProbability float64 `json:"loss_probability"`
	AvgWin          float64 `json:"avg_win"`
	AvgLoss         float64 `json:"avg_loss"` // signed, <= 0
	WinLossRatio    float64 `json:"win_loss_ratio"`
	ProfitFactor    float64 `json:"profit_factor"`
	Expectancy      float64 `json:"expectancy"`
	MaxDrawdown     float64 `json:"max_drawdown"` // currency units, >= 0
	SharpeRatio     float64 `json:"sharpe_ratio"` // per-trade, unannualized
}

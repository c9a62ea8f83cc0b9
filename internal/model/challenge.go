package model

// ChallengeParams describes a prop-firm evaluation: hit the profit target
// without breaching the daily or overall loss limits, over at least
// MinTradingDays trading days. Percentages are relative to AccountSize.
type ChallengeParams struct {
	AccountSize           float64 `json:"account_size" mapstructure:"account_size" validate:"gt=0"`
	ProfitTargetPercent   float64 `json:"profit_target_percent" mapstructure:"profit_target_percent" validate:"gt=0"`
	MaxDailyLossPercent   float64 `json:"max_daily_loss_percent" mapstructure:"max_daily_loss_percent" validate:"gt=0"`
	MaxOverallLossPercent float64 `json:"max_overall_loss_percent" mapstructure:"max_overall_loss_percent" validate:"gt=0"`
	MinTradingDays        int     `json:"min_trading_days" mapstructure:"min_trading_days" validate:"gte=1"`
}

// SimulationResult aggregates one Monte Carlo batch.
type SimulationResult struct {
	TotalSimulations  int     `json:"total_simulations"`
	PassedSimulations int     `json:"passed_simulations"`
	PassRate          float64 `json:"pass_rate"`
}

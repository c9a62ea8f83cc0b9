package model

import "strings"

// Direction is the side of a closed position.
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// ParseDirection normalizes the statement's type column. MT5 exports use
// Buy/Sell, some brokers use Long/Short. Unknown values default to Long.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sell", "short":
		return DirectionShort
	default:
		return DirectionLong
	}
}

// Trade is one closed position from a trading statement. Trades are value
// objects; nothing in the engine mutates or retains them after a call.
type Trade struct {
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	Volume     float64   `json:"volume"`
	OpenPrice  float64   `json:"open_price"`
	ClosePrice float64   `json:"close_price"`
	Profit     float64   `json:"profit"`
	Commission float64   `json:"commission"`
	Swap       float64   `json:"swap"`
}

package stocks

import "strings"

// Position is the aggregate holding of one ticker.
type Position struct {
	Ticker      string
	Quantity    Quantity
	AverageCost Money // weighted average of every lot bought
}

// TotalCost returns quantity times average cost.
func (p Position) TotalCost() Money { return p.AverageCost.Mul(p.Quantity) }

// CanonicalTicker returns the canonical form of a ticker symbol: trimmed and upper case.
func CanonicalTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

package renderer

import (
	"strings"

	"github.com/etnz/stocks"
)

// Holding is the data of the holding report.
type Holding struct {
	Rows       []stocks.ValuationRow
	Total      stocks.ValuationRow
	Allocation []stocks.Allocation
	// Missing lists the tickers without a price, comma separated.
	Missing string
}

// NewHolding creates the holding report data from a valuation.
func NewHolding(v *stocks.Valuation) *Holding {
	return &Holding{
		Rows:       v.Rows,
		Total:      v.Total,
		Allocation: v.Allocation(),
		Missing:    strings.Join(v.Missing(), ", "),
	}
}

// RenderHolding renders the valuation table, its TOTAL row and the allocation.
func RenderHolding(h *Holding) string {
	partials := map[string]string{
		"holding_positions":  "holding_positions.md",
		"holding_allocation": "holding_allocation.md",
	}
	return renderTemplate("holding", "holding.md", partials, h)
}

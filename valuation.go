package stocks

// TotalLabel is the ticker of the aggregate row of a Valuation.
const TotalLabel = "TOTAL"

// NotAvailable is displayed in place of an absent price.
const NotAvailable = "N/A"

// ValuationRow is the valuation of one position, or of the whole portfolio for the TOTAL row.
type ValuationRow struct {
	Ticker        string
	Quantity      Quantity
	AverageCost   Money
	CurrentPrice  Money
	HasPrice      bool // false when the feed could not price the ticker
	TotalCost     Money
	CurrentValue  Money
	ProfitLoss    Money
	PercentChange Percent
}

// IsTotal reports whether r is the aggregate row.
func (r ValuationRow) IsTotal() bool { return r.Ticker == TotalLabel }

// CurrentPriceString returns the current price, or "N/A" when it is absent.
func (r ValuationRow) CurrentPriceString() string {
	if !r.HasPrice {
		return NotAvailable
	}
	return r.CurrentPrice.String()
}

// Valuation is the per position valuation of a ledger plus the aggregate row.
type Valuation struct {
	Rows  []ValuationRow // sorted by ticker
	Total ValuationRow
}

// ComputeValuation values every position of the ledger at the quoted prices.
//
// A position without an available quote is valued at 0 and flagged as such; it
// never prevents the other rows from being computed. Monetary amounts are rounded
// to cents. The TOTAL row sums the rows, and its percent change is computed from
// those sums, never averaged from the rows.
func ComputeValuation(l *Ledger, quotes map[string]PriceQuote) *Valuation {
	v := &Valuation{Total: ValuationRow{Ticker: TotalLabel}}
	for p := range l.Positions() {
		row := ValuationRow{
			Ticker:      p.Ticker,
			Quantity:    p.Quantity,
			AverageCost: p.AverageCost,
		}
		cost := p.TotalCost()
		var value Money
		if q, ok := quotes[p.Ticker]; ok && q.Available() {
			row.HasPrice = true
			row.CurrentPrice = q.Price.Round()
			value = q.Price.Mul(p.Quantity)
		}
		row.TotalCost = cost.Round()
		row.CurrentValue = value.Round()
		row.ProfitLoss = value.Sub(cost).Round()
		row.PercentChange = percentOf(value.Sub(cost).Decimal(), cost.Decimal())
		v.Rows = append(v.Rows, row)

		v.Total.Quantity = v.Total.Quantity.Add(row.Quantity)
		v.Total.TotalCost = v.Total.TotalCost.Add(row.TotalCost)
		v.Total.CurrentValue = v.Total.CurrentValue.Add(row.CurrentValue)
		v.Total.ProfitLoss = v.Total.ProfitLoss.Add(row.ProfitLoss)
	}
	v.Total.PercentChange = percentOf(v.Total.CurrentValue.Sub(v.Total.TotalCost).Decimal(), v.Total.TotalCost.Decimal())
	return v
}

// Missing returns the tickers that could not be priced.
func (v *Valuation) Missing() []string {
	var missing []string
	for _, r := range v.Rows {
		if !r.HasPrice {
			missing = append(missing, r.Ticker)
		}
	}
	return missing
}

// Allocation is the share of one ticker in the portfolio current value.
type Allocation struct {
	Ticker string
	Value  Money
	Weight Percent
}

// Allocation returns the share of each priced position in the total current value.
// It is empty when the portfolio has no current value.
func (v *Valuation) Allocation() []Allocation {
	if !v.Total.CurrentValue.IsPositive() {
		return nil
	}
	var res []Allocation
	for _, r := range v.Rows {
		if !r.CurrentValue.IsPositive() {
			continue
		}
		res = append(res, Allocation{
			Ticker: r.Ticker,
			Value:  r.CurrentValue,
			Weight: percentOf(r.CurrentValue.Decimal(), v.Total.CurrentValue.Decimal()),
		})
	}
	return res
}

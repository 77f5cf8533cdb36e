package stocks

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Ledger maps a ticker to its current Position.
//
// A ticker present in the ledger always has a positive quantity and a non-negative
// average cost. The ledger is only mutated by MergeLot and RemovePosition.
type Ledger struct {
	positions map[string]Position
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{positions: make(map[string]Position)}
}

// Len returns the number of positions.
func (l *Ledger) Len() int { return len(l.positions) }

// Position returns the position for ticker and true, or a zero Position and false.
func (l *Ledger) Position(ticker string) (Position, bool) {
	p, ok := l.positions[CanonicalTicker(ticker)]
	return p, ok
}

// Tickers returns the tickers in the ledger, sorted.
func (l *Ledger) Tickers() []string {
	return slices.Sorted(maps.Keys(l.positions))
}

// Positions returns an iterator over all positions, sorted by ticker.
func (l *Ledger) Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, ticker := range l.Tickers() {
			if !yield(l.positions[ticker]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{positions: maps.Clone(l.positions)}
}

// MergeLot merges a buy lot into the ledger and returns the resulting position.
//
// A new ticker is inserted with the lot's price as average cost. An existing one
// gets the quantity weighted average of its current cost and the lot's price.
// Quantity is rounded to 4 decimals and cost to 2, once, when the position is
// written.
func (l *Ledger) MergeLot(ticker string, quantity Quantity, price Money) (Position, error) {
	ticker = CanonicalTicker(ticker)
	if ticker == "" {
		return Position{}, fmt.Errorf("%w: empty ticker", ErrInvalidInput)
	}
	if !quantity.IsPositive() {
		return Position{}, fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidInput, quantity)
	}
	if !price.IsPositive() {
		return Position{}, fmt.Errorf("%w: price must be positive, got %v", ErrInvalidInput, price.Decimal())
	}

	total, cost := quantity, price
	if existing, ok := l.positions[ticker]; ok {
		total = existing.Quantity.Add(quantity)
		cost = existing.AverageCost.Mul(existing.Quantity).Add(price.Mul(quantity)).Div(total)
	}

	pos := Position{Ticker: ticker, Quantity: total.Round(), AverageCost: cost.Round()}
	if !pos.Quantity.IsPositive() {
		return Position{}, fmt.Errorf("%w: quantity %v is below %d decimal places", ErrInvalidInput, quantity, QuantityPlaces)
	}
	l.positions[ticker] = pos
	return pos, nil
}

// RemovePosition deletes the position for ticker. It returns ErrNotFound, and
// leaves the ledger untouched, if there is none.
func (l *Ledger) RemovePosition(ticker string) error {
	ticker = CanonicalTicker(ticker)
	if _, ok := l.positions[ticker]; !ok {
		return fmt.Errorf("%w: %q is not in the portfolio", ErrNotFound, ticker)
	}
	delete(l.positions, ticker)
	return nil
}

// put writes a position as is. It is used by decoders and to roll back a failed command.
func (l *Ledger) put(p Position) { l.positions[p.Ticker] = p }

// restore puts back the previous state of ticker: p if existed, nothing otherwise.
func (l *Ledger) restore(ticker string, p Position, existed bool) {
	if existed {
		l.put(p)
		return
	}
	delete(l.positions, ticker)
}

package stocks

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// snapshotEntry is the persisted form of a Position. The average cost is stored as "buy_price".
type snapshotEntry struct {
	Quantity Quantity `json:"quantity"`
	BuyPrice Money    `json:"buy_price"`
}

// EncodeLedger writes the full ledger as an indented JSON object keyed by ticker.
func EncodeLedger(w io.Writer, l *Ledger) error {
	snapshot := make(map[string]snapshotEntry, l.Len())
	for p := range l.Positions() {
		snapshot[p.Ticker] = snapshotEntry{Quantity: p.Quantity.Round(), BuyPrice: p.AverageCost.Round()}
	}
	// map keys are sorted by encoding/json so the file is stable.
	data, err := json.MarshalIndent(snapshot, "", "    ")
	if err != nil {
		return fmt.Errorf("cannot encode ledger: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// DecodeLedger reads a ledger written by EncodeLedger.
//
// Any malformed content, or an entry that breaks the ledger invariants, is reported
// as ErrPersistenceCorrupt.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var snapshot map[string]snapshotEntry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceCorrupt, err)
	}
	// the snapshot must be the only value in the file.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected content after the ledger", ErrPersistenceCorrupt)
	}
	positions := make([]Position, 0, len(snapshot))
	for ticker, entry := range snapshot {
		positions = append(positions, Position{Ticker: ticker, Quantity: entry.Quantity, AverageCost: entry.BuyPrice})
	}
	return RestoreLedger(positions)
}

// RestoreLedger builds a ledger from persisted positions, as is.
//
// Tickers are canonicalized and values rounded. A position that breaks the ledger
// invariants, or a ticker present twice, is reported as ErrPersistenceCorrupt.
func RestoreLedger(positions []Position) (*Ledger, error) {
	ledger := NewLedger()
	for _, p := range positions {
		pos := Position{
			Ticker:      CanonicalTicker(p.Ticker),
			Quantity:    p.Quantity.Round(),
			AverageCost: p.AverageCost.Round(),
		}
		if err := checkPosition(pos); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceCorrupt, err)
		}
		if _, dup := ledger.Position(pos.Ticker); dup {
			return nil, fmt.Errorf("%w: duplicated ticker %q", ErrPersistenceCorrupt, pos.Ticker)
		}
		ledger.put(pos)
	}
	return ledger, nil
}

// checkPosition verifies the ledger invariants on a decoded position.
func checkPosition(p Position) error {
	switch {
	case p.Ticker == "":
		return fmt.Errorf("empty ticker")
	case !p.Quantity.IsPositive():
		return fmt.Errorf("%s: quantity %v is not positive", p.Ticker, p.Quantity)
	case p.AverageCost.IsNegative():
		return fmt.Errorf("%s: buy price %v is negative", p.Ticker, p.AverageCost.Decimal())
	}
	return nil
}

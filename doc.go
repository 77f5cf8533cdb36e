// Package stocks provides the types and functions to track a personal stock
// portfolio. It is designed to be local-first: the portfolio is a small,
// human-readable snapshot file that the user owns.
//
// The core functionalities include:
//   - Position Ledger: the current aggregate position of each ticker, a
//     quantity and a weighted average cost basis, updated by merging buy lots.
//   - Valuation: cost, current value, profit/loss and percent change per
//     position and for the whole portfolio.
//   - Performance: the portfolio value over a lookback window and its
//     comparison with a benchmark, both normalized to start at 100.
//
// Market data and ticker resolution are capabilities (PriceFeed, Resolver)
// implemented by the yahoo, eodhd and gemini packages. Persistence is a
// Store capability, implemented here as a JSON file and in the sqlite package.
//
// This package serves as the foundational logic for the `pcs` command-line
// tool.
package stocks

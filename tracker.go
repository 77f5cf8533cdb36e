package stocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultBenchmark is the S&P 500 ETF.
const DefaultBenchmark = "SPY"

// Tracker owns a Ledger and handles the user commands on it.
//
// Each command runs to completion before returning. Mutating commands persist
// the full ledger through the Store before returning; if the save fails the
// in-memory ledger is rolled back so it always matches what was persisted.
//
// Read commands fetch prices best-effort: they return a partial result together
// with an advisory error joining every per-ticker failure.
type Tracker struct {
	ledger    *Ledger
	store     Store
	feed      PriceFeed
	resolver  Resolver
	log       zerolog.Logger
	benchmark string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithBenchmark sets the benchmark ticker used by Compare.
func WithBenchmark(ticker string) Option {
	return func(t *Tracker) {
		if ticker = CanonicalTicker(ticker); ticker != "" {
			t.benchmark = ticker
		}
	}
}

// Open loads the ledger from store and returns a Tracker owning it.
//
// A corrupt persisted state is logged as a warning and the tracker starts empty.
func Open(store Store, feed PriceFeed, resolver Resolver, log zerolog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		feed:      feed,
		resolver:  resolver,
		log:       log.With().Str("component", "tracker").Logger(),
		benchmark: DefaultBenchmark,
	}
	for _, opt := range opts {
		opt(t)
	}

	ledger, err := store.Load()
	if err != nil {
		t.log.Warn().Err(err).Msg("starting with an empty portfolio")
	}
	if ledger == nil {
		ledger = NewLedger()
	}
	t.ledger = ledger
	t.log.Debug().Int("positions", ledger.Len()).Msg("ledger loaded")
	return t
}

// Ledger returns a copy of the current ledger.
func (t *Tracker) Ledger() *Ledger { return t.ledger.Clone() }

// Benchmark returns the benchmark ticker.
func (t *Tracker) Benchmark() string { return t.benchmark }

// Resolve returns the ticker of a company name or ticker, without changing the ledger.
func (t *Tracker) Resolve(ctx context.Context, name string) (string, error) {
	ticker, err := t.resolver.Resolve(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrResolution) {
			err = fmt.Errorf("%w: %v", ErrResolution, err)
		}
		return "", err
	}
	return CanonicalTicker(ticker), nil
}

// AddLot resolves name to a ticker and merges a buy lot of quantity at price into its position.
func (t *Tracker) AddLot(ctx context.Context, name string, quantity Quantity, price Money) (Position, error) {
	// validate before reaching the network
	if !quantity.IsPositive() {
		return Position{}, fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidInput, quantity)
	}
	if !price.IsPositive() {
		return Position{}, fmt.Errorf("%w: price must be positive, got %v", ErrInvalidInput, price.Decimal())
	}

	ticker, err := t.Resolve(ctx, name)
	if err != nil {
		return Position{}, err
	}

	previous, existed := t.ledger.Position(ticker)
	pos, err := t.ledger.MergeLot(ticker, quantity, price)
	if err != nil {
		return Position{}, err
	}
	if err := t.store.Save(t.ledger); err != nil {
		t.ledger.restore(ticker, previous, existed)
		return Position{}, fmt.Errorf("could not save portfolio, %s not updated: %w", ticker, err)
	}
	t.log.Info().Str("ticker", ticker).Stringer("quantity", pos.Quantity).Str("average_cost", pos.AverageCost.Fixed()).Msg("position updated")
	return pos, nil
}

// RemovePosition deletes the position of ticker. It returns ErrNotFound if there is none.
func (t *Tracker) RemovePosition(ticker string) error {
	ticker = CanonicalTicker(ticker)
	previous, existed := t.ledger.Position(ticker)
	if err := t.ledger.RemovePosition(ticker); err != nil {
		return err
	}
	if err := t.store.Save(t.ledger); err != nil {
		t.ledger.restore(ticker, previous, existed)
		return fmt.Errorf("could not save portfolio, %s not removed: %w", ticker, err)
	}
	t.log.Info().Str("ticker", ticker).Msg("position removed")
	return nil
}

// Valuation values the portfolio at the latest prices.
func (t *Tracker) Valuation(ctx context.Context) (*Valuation, error) {
	quotes, errs := FetchQuotes(ctx, t.feed, t.ledger.Tickers())
	return ComputeValuation(t.ledger, quotes), errs
}

// Performance returns the portfolio value over the lookback window.
func (t *Tracker) Performance(ctx context.Context, lb Lookback) (*Series, error) {
	histories, errs := FetchHistories(ctx, t.feed, t.ledger.Tickers(), lb)
	return BuildPortfolioSeries(t.ledger, histories), errs
}

// Compare returns the portfolio and the benchmark performances, normalized.
func (t *Tracker) Compare(ctx context.Context, lb Lookback) (*Comparison, error) {
	portfolio, errs := t.Performance(ctx, lb)
	benchmark, err := t.feed.History(ctx, t.benchmark, lb)
	if err != nil {
		errs = errors.Join(errs, fmt.Errorf("could not get %s history for benchmark %s: %w", lb, t.benchmark, err))
	}
	c := BuildComparison(t.benchmark, portfolio, benchmark)
	return c, errors.Join(errs, c.PortfolioErr, c.BenchmarkErr)
}

// PriceHistory returns the close prices of a single ticker over the lookback window.
func (t *Tracker) PriceHistory(ctx context.Context, ticker string, lb Lookback) (*Series, error) {
	ticker = CanonicalTicker(ticker)
	if ticker == "" {
		return new(Series), fmt.Errorf("%w: empty ticker", ErrInvalidInput)
	}
	h, err := t.feed.History(ctx, ticker, lb)
	if err != nil {
		return new(Series), fmt.Errorf("could not get %s history for %s: %w", lb, ticker, err)
	}
	if h.IsEmpty() {
		return h, fmt.Errorf("no %s history for %s: %w", lb, ticker, ErrPriceUnavailable)
	}
	return h, nil
}

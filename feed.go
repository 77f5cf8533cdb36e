package stocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// PriceFeed provides market prices.
//
// Every call is independently fallible: a failure on one ticker says nothing
// about the others.
type PriceFeed interface {
	// LatestPrice returns the latest close price of ticker, or an error wrapping
	// ErrPriceUnavailable when the feed has none.
	LatestPrice(ctx context.Context, ticker string) (Money, error)
	// History returns the close prices of ticker over the lookback window, sampled
	// at the lookback interval. The series is empty when the feed has no data.
	History(ctx context.Context, ticker string, lb Lookback) (*Series, error)
}

// Resolver turns free text, a company name or a symbol, into a canonical ticker.
type Resolver interface {
	// Resolve returns the ticker for text or an error wrapping ErrResolution.
	Resolve(ctx context.Context, text string) (string, error)
}

// PriceQuote is the latest price of a ticker, which may be absent.
type PriceQuote struct {
	Ticker string
	Price  Money
	Err    error // why the price is absent, nil when available
}

// Available reports whether the quote holds a price.
func (q PriceQuote) Available() bool { return q.Err == nil }

// NewQuote returns an available quote.
func NewQuote(ticker string, price Money) PriceQuote {
	return PriceQuote{Ticker: CanonicalTicker(ticker), Price: price}
}

// MissingQuote returns an absent quote explained by err.
func MissingQuote(ticker string, err error) PriceQuote {
	switch {
	case err == nil:
		err = ErrPriceUnavailable
	case !errors.Is(err, ErrPriceUnavailable):
		err = fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	return PriceQuote{Ticker: CanonicalTicker(ticker), Err: err}
}

// FetchQuotes fetches the latest price of each ticker, one call per ticker.
//
// It never aborts: a failing ticker gets an absent quote. The returned error joins
// every per-ticker failure and is advisory, the quotes map is always complete.
func FetchQuotes(ctx context.Context, feed PriceFeed, tickers []string) (map[string]PriceQuote, error) {
	quotes := make(map[string]PriceQuote, len(tickers))
	var errs error
	for _, ticker := range tickers {
		ticker = CanonicalTicker(ticker)
		price, err := feed.LatestPrice(ctx, ticker)
		if err == nil && !price.IsPositive() {
			err = fmt.Errorf("%w: non positive price %v", ErrPriceUnavailable, price.Decimal())
		}
		if err != nil {
			q := MissingQuote(ticker, err)
			quotes[ticker] = q
			errs = errors.Join(errs, fmt.Errorf("could not get price for %s: %w", ticker, q.Err))
			continue
		}
		quotes[ticker] = NewQuote(ticker, price)
	}
	return quotes, errs
}

// FetchHistories fetches the price history of each ticker over lb.
//
// Like FetchQuotes it never aborts: a failing ticker gets an empty series and its
// failure is joined into the advisory error.
func FetchHistories(ctx context.Context, feed PriceFeed, tickers []string, lb Lookback) (map[string]*Series, error) {
	histories := make(map[string]*Series, len(tickers))
	var errs error
	for _, ticker := range tickers {
		ticker = CanonicalTicker(ticker)
		h, err := feed.History(ctx, ticker, lb)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not get %s history for %s: %w", lb, ticker, err))
			h = new(Series)
		} else if h.IsEmpty() {
			errs = errors.Join(errs, fmt.Errorf("no %s history for %s: %w", lb, ticker, ErrPriceUnavailable))
			h = new(Series)
		}
		histories[ticker] = h
	}
	return histories, errs
}

// ResolverChain tries each resolver in turn and returns the first ticker found.
type ResolverChain []Resolver

// Resolve implements Resolver.
func (c ResolverChain) Resolve(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty name", ErrResolution)
	}
	var errs error
	for _, r := range c {
		if r == nil {
			continue
		}
		ticker, err := r.Resolve(ctx, text)
		if err == nil && CanonicalTicker(ticker) != "" {
			return CanonicalTicker(ticker), nil
		}
		if err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if errs == nil {
		return "", fmt.Errorf("%w: no match for %q", ErrResolution, text)
	}
	return "", fmt.Errorf("%w: no match for %q: %v", ErrResolution, text, errs)
}

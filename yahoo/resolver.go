package yahoo

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/stocks"
	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/lookup"
)

// symbolPattern matches text that could already be a ticker symbol.
var symbolPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.\-]{0,9}$`)

// searchFunc returns the stock symbols matching text, best match first.
type searchFunc func(text string) ([]string, error)

func lookupStocks(text string) ([]string, error) {
	l, err := lookup.New(text)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup client: %w", err)
	}
	defer l.Close()

	results, err := l.Stock(5)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(results))
	for _, r := range results {
		symbols = append(symbols, r.Symbol)
	}
	return symbols, nil
}

// Resolver is a stocks.Resolver using Yahoo Finance.
//
// Text shaped like a symbol is accepted when Yahoo quotes it; anything else is
// looked up and the best stock match wins.
type Resolver struct {
	log    zerolog.Logger
	open   openFunc
	search searchFunc
}

// NewResolver returns a Yahoo Finance ticker resolver.
func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{
		log:    log.With().Str("component", "yahoo").Logger(),
		open:   openTicker,
		search: lookupStocks,
	}
}

// Resolve implements stocks.Resolver.
func (r *Resolver) Resolve(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty name", stocks.ErrResolution)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if symbolPattern.MatchString(text) && r.quotes(strings.ToUpper(text)) {
		return strings.ToUpper(text), nil
	}

	symbols, err := r.search(text)
	if err != nil {
		return "", fmt.Errorf("%w: yahoo lookup %q: %v", stocks.ErrResolution, text, err)
	}
	for _, s := range symbols {
		if s = stocks.CanonicalTicker(s); s != "" {
			r.log.Debug().Str("text", text).Str("ticker", s).Msg("resolved")
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: yahoo has no stock matching %q", stocks.ErrResolution, text)
}

// quotes reports whether symbol has a positive market price.
func (r *Resolver) quotes(symbol string) bool {
	t, done, err := r.open(symbol)
	if err != nil {
		return false
	}
	defer done()
	q, err := t.Quote()
	return err == nil && q != nil && q.RegularMarketPrice > 0
}

// Package yahoo implements the stocks.PriceFeed and stocks.Resolver
// capabilities on top of Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"

	"github.com/etnz/stocks"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// client is the part of a go-yfinance ticker used here.
type client interface {
	Quote() (*models.Quote, error)
	History(params models.HistoryParams) ([]models.Bar, error)
}

// openFunc opens a client for symbol. close must be called when done.
type openFunc func(symbol string) (c client, close func(), err error)

func openTicker(symbol string) (client, func(), error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, nil, err
	}
	return t, func() { t.Close() }, nil
}

// yahooPeriods maps a lookback to the Yahoo period requested. Windows shorter
// than a day are fetched for the last session and trimmed afterwards.
var yahooPeriods = map[string]string{
	"15m": "1d",
	"5d":  "5d",
	"1mo": "1mo",
	"6mo": "6mo",
	"1y":  "1y",
	"5y":  "5y",
}

// Feed is a stocks.PriceFeed backed by Yahoo Finance.
type Feed struct {
	log  zerolog.Logger
	open openFunc
}

// NewFeed returns a Yahoo Finance price feed.
func NewFeed(log zerolog.Logger) *Feed {
	return &Feed{
		log:  log.With().Str("component", "yahoo").Logger(),
		open: openTicker,
	}
}

// LatestPrice implements stocks.PriceFeed.
//
// The regular market price is used, then the pre and post market prices, then
// the last daily close.
func (f *Feed) LatestPrice(ctx context.Context, symbol string) (stocks.Money, error) {
	if err := ctx.Err(); err != nil {
		return stocks.Money{}, err
	}
	t, done, err := f.open(symbol)
	if err != nil {
		return stocks.Money{}, fmt.Errorf("failed to create ticker %s: %w", symbol, err)
	}
	defer done()

	quote, err := t.Quote()
	if err == nil && quote != nil {
		for _, price := range []float64{quote.RegularMarketPrice, quote.PreMarketPrice, quote.PostMarketPrice} {
			if price > 0 {
				return stocks.M(price), nil
			}
		}
	}
	if err != nil {
		f.log.Debug().Err(err).Str("ticker", symbol).Msg("quote failed, falling back to daily close")
	}

	bars, herr := t.History(models.HistoryParams{Period: "5d", Interval: "1d", AutoAdjust: true})
	if herr == nil {
		for i := len(bars) - 1; i >= 0; i-- {
			if bars[i].Close > 0 {
				return stocks.M(bars[i].Close), nil
			}
		}
	}
	if err == nil {
		err = herr
	}
	if err != nil {
		return stocks.Money{}, fmt.Errorf("%w: no price for %s: %v", stocks.ErrPriceUnavailable, symbol, err)
	}
	return stocks.Money{}, fmt.Errorf("%w: no price for %s", stocks.ErrPriceUnavailable, symbol)
}

// History implements stocks.PriceFeed.
func (f *Feed) History(ctx context.Context, symbol string, lb stocks.Lookback) (*stocks.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	period, ok := yahooPeriods[lb.Name]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported period %q", stocks.ErrInvalidInput, lb.Name)
	}
	t, done, err := f.open(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker %s: %w", symbol, err)
	}
	defer done()

	bars, err := t.History(models.HistoryParams{
		Period:     period,
		Interval:   string(lb.Interval),
		AutoAdjust: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s history for %s: %w", lb, symbol, err)
	}

	s := new(stocks.Series)
	for _, bar := range bars {
		if bar.Close <= 0 {
			// yahoo reports missing samples as zeros
			continue
		}
		s.Append(bar.Date, decimal.NewFromFloat(bar.Close))
	}
	s = lb.Trim(s)
	f.log.Debug().Str("ticker", symbol).Str("period", lb.Name).Int("points", s.Len()).Msg("history fetched")
	return s, nil
}

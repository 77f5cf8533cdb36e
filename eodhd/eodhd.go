// Package eodhd implements the stocks.PriceFeed and stocks.Resolver
// capabilities on top of the EOD Historical Data API (https://eodhd.com).
//
// Responses are cached on disk for the day.
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/stocks"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api"

// Client queries the EODHD API. It implements stocks.PriceFeed and stocks.Resolver.
type Client struct {
	apiKey   string
	baseURL  string
	cacheDir string
	http     *http.Client
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithCacheDir sets the directory of the daily disk cache.
func WithCacheDir(dir string) Option {
	return func(c *Client) { c.cacheDir = dir }
}

// WithHTTPClient replaces the caching client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns an EODHD client using apiKey.
func New(apiKey string, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		log:     log.With().Str("component", "eodhd").Logger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = newDailyCachingClient(c.cacheDir, c.log)
	}
	return c
}

// LatestPrice implements stocks.PriceFeed.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (stocks.Money, error) {
	price, err := c.fetchRealTime(ctx, eodhdTicker(symbol))
	if err != nil {
		return stocks.Money{}, fmt.Errorf("%w: %s: %v", stocks.ErrPriceUnavailable, symbol, err)
	}
	return stocks.M(price), nil
}

// sessionSpan is the shortest range requested, long enough to include the last
// trading session over a long weekend.
const sessionSpan = 5 * 24 * time.Hour

// History implements stocks.PriceFeed.
//
// Daily lookbacks use the end-of-day prices, the others the intraday prices.
func (c *Client) History(ctx context.Context, symbol string, lb stocks.Lookback) (*stocks.Series, error) {
	to := c.now()
	from := lb.From(to)
	if from.After(to.Add(-sessionSpan)) {
		from = to.Add(-sessionSpan)
	}
	ticker := eodhdTicker(symbol)

	var samples []sample
	var err error
	if lb.IsIntraday() {
		samples, err = c.fetchIntraday(ctx, ticker, string(lb.Interval), from, to)
	} else {
		samples, err = c.fetchEOD(ctx, ticker, from, to)
	}
	if errors.Is(err, errNotFound) {
		c.log.Debug().Err(err).Str("ticker", ticker).Msg("no history")
		return new(stocks.Series), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s history for %s: %w", lb, ticker, err)
	}

	s := new(stocks.Series)
	for _, smp := range samples {
		if !smp.close.IsPositive() {
			continue
		}
		s.Append(smp.time, smp.close)
	}
	return lb.Trim(s), nil
}

var (
	_ stocks.PriceFeed = (*Client)(nil)
	_ stocks.Resolver  = (*Client)(nil)
)

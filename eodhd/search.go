package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/etnz/stocks"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string  `json:"Code"`
	Exchange          string  `json:"Exchange"`
	Name              string  `json:"Name"`
	Type              string  `json:"Type"`
	Country           string  `json:"Country"`
	Currency          string  `json:"Currency"`
	ISIN              string  `json:"ISIN"`
	PreviousClose     float64 `json:"previousClose"`
	PreviousCloseDate string  `json:"previousCloseDate"`
}

// Ticker returns the symbol used by the tracker: the bare code for US listings,
// CODE.EXCHANGE otherwise.
func (r SearchResult) Ticker() string {
	if r.Exchange == "" || r.Exchange == "US" {
		return stocks.CanonicalTicker(r.Code)
	}
	return stocks.CanonicalTicker(r.Code + "." + r.Exchange)
}

// Search searches for securities via EOD Historical Data API.
func (c *Client) Search(ctx context.Context, searchTerm string) ([]SearchResult, error) {
	// https://eodhd.com/api/search/apple?api_token=demo&fmt=json
	addr := c.endpoint("/search/"+url.PathEscape(searchTerm), nil)

	var results []SearchResult
	if err := jwget(ctx, c.http, addr, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Resolve implements stocks.Resolver.
//
// The first US listing wins, then the first result of any exchange.
func (c *Client) Resolve(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty name", stocks.ErrResolution)
	}
	results, err := c.Search(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: eodhd search %q: %v", stocks.ErrResolution, text, err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: eodhd has no security matching %q", stocks.ErrResolution, text)
	}
	best := results[0]
	for _, r := range results {
		if r.Exchange == "US" {
			best = r
			break
		}
	}
	c.log.Debug().Str("text", text).Str("ticker", best.Ticker()).Str("name", best.Name).Msg("resolved")
	return best.Ticker(), nil
}

package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

var errNotFound = errors.New("not found")

// endpoint returns the address of an API path with the token and format query set.
func (c *Client) endpoint(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_token", c.apiKey)
	query.Set("fmt", "json")
	return c.baseURL + path + "?" + query.Encode()
}

// fetchRealTime returns the latest price of an EODHD ticker.
func (c *Client) fetchRealTime(ctx context.Context, ticker string) (decimal.Decimal, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {
	//   "code": "AAPL.US",
	//   "timestamp": 1718913600,
	//   "open": 210.39,
	//   "close": 209.68,
	//   "previousClose": 214.29,
	//   ...
	// }
	// close is "NA" out of trading hours for some tickers.
	addr := c.endpoint("/real-time/"+url.PathEscape(ticker), nil)
	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return decimal.Zero, err
	}

	for _, path := range []string{"$.close", "$.previousClose"} {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
		// by this call I keep the first one if any
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if val, ok := jval.(float64); ok && val > 0 {
			return decimal.NewFromFloat(val), nil
		}
	}
	return decimal.Zero, fmt.Errorf("no close in real-time quote for %s", ticker)
}

// fetchEOD returns the daily close prices of an EODHD ticker between from and to, included.
func (c *Client) fetchEOD(ctx context.Context, ticker string, from, to time.Time) ([]sample, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2024-01-05&to=2024-02-10
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	addr := c.endpoint("/eod/"+url.PathEscape(ticker), url.Values{
		"from": {from.Format(time.DateOnly)},
		"to":   {to.Format(time.DateOnly)},
	})
	type Info struct {
		Date  string          `json:"date"`
		Close decimal.Decimal `json:"close"`
	}

	content := make([]Info, 0)
	if err := jwget(ctx, c.http, addr, &content); err != nil {
		return nil, err
	}
	samples := make([]sample, 0, len(content))
	for _, info := range content {
		day, err := time.Parse(time.DateOnly, info.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q in eod prices of %s: %w", info.Date, ticker, err)
		}
		samples = append(samples, sample{day, info.Close})
	}
	return samples, nil
}

// fetchIntraday returns the intraday close prices of an EODHD ticker, sampled at interval ("1m" or "1h").
func (c *Client) fetchIntraday(ctx context.Context, ticker, interval string, from, to time.Time) ([]sample, error) {
	// https://eodhd.com/api/intraday/AAPL.US?api_token=demo&fmt=json&interval=1h&from=1704067200&to=1704153600
	// [
	//	{
	//		"timestamp": 1704202200,
	//		"gmtoffset": 0,
	//		"datetime": "2024-01-02 13:30:00",
	//		"open": 187.15,
	//		"high": 188.44,
	//		"low": 185.83,
	//		"close": 185.9,
	//		"volume": 9516183
	//	},
	addr := c.endpoint("/intraday/"+url.PathEscape(ticker), url.Values{
		"interval": {interval},
		"from":     {strconv.FormatInt(from.Unix(), 10)},
		"to":       {strconv.FormatInt(to.Unix(), 10)},
	})
	type Info struct {
		Timestamp int64            `json:"timestamp"`
		Close     *decimal.Decimal `json:"close"` // null on empty bars
	}

	content := make([]Info, 0)
	if err := jwget(ctx, c.http, addr, &content); err != nil {
		return nil, err
	}
	samples := make([]sample, 0, len(content))
	for _, info := range content {
		if info.Close == nil {
			continue
		}
		samples = append(samples, sample{time.Unix(info.Timestamp, 0).UTC(), *info.Close})
	}
	return samples, nil
}

// sample is a single close price.
type sample struct {
	time  time.Time
	close decimal.Decimal
}

// eodhdTicker returns the EODHD ticker for a symbol: US listing unless an exchange is given.
func eodhdTicker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}

package renderer

import (
	"time"

	"github.com/etnz/stocks"
	"github.com/shopspring/decimal"
)

const (
	dayFormat      = time.DateOnly
	intradayFormat = "2006-01-02 15:04"
)

// timeFormat returns the layout used for the instants of a lookback.
func timeFormat(lb stocks.Lookback) string {
	if lb.IsIntraday() {
		return intradayFormat
	}
	return dayFormat
}

// Point is a formatted sample.
type Point struct {
	Time  string
	Value string
}

// Series is the data of a series report.
type Series struct {
	Title  string
	Period string
	Column string // header of the value column
	Points []Point

	// Summary, only set when Points is not empty.
	First, Last, High, Low Point
	Change                 string
	Percent                stocks.Percent
}

func newPoint(p stocks.Point, layout string, format func(decimal.Decimal) string) Point {
	return Point{Time: p.Time.Format(layout), Value: format(p.Value)}
}

func newSeries(title, column string, s *stocks.Series, lb stocks.Lookback, format func(decimal.Decimal) string) *Series {
	layout := timeFormat(lb)
	r := &Series{Title: title, Column: column, Period: lb.Name}
	for _, p := range s.Points() {
		r.Points = append(r.Points, newPoint(p, layout, format))
	}
	if sum, ok := stocks.Summarize(s); ok {
		r.First = newPoint(sum.First, layout, format)
		r.Last = newPoint(sum.Last, layout, format)
		r.High = newPoint(sum.High, layout, format)
		r.Low = newPoint(sum.Low, layout, format)
		r.Change = stocks.M(sum.Change).SignedString()
		r.Percent = sum.Percent
	}
	return r
}

func amount(d decimal.Decimal) string { return stocks.M(d).String() }

// NewPerformance creates the report data of the portfolio value series.
func NewPerformance(s *stocks.Series, lb stocks.Lookback) *Series {
	return newSeries("Portfolio value", "Value", s, lb, amount)
}

// NewPriceHistory creates the report data of a ticker's close prices.
func NewPriceHistory(ticker string, s *stocks.Series, lb stocks.Lookback) *Series {
	return newSeries(ticker+" price history", "Close", s, lb, amount)
}

// RenderSeries renders a series as a summary followed by one row per instant.
func RenderSeries(s *Series) string {
	partials := map[string]string{
		"series_summary": "series_summary.md",
	}
	return renderTemplate("series", "series.md", partials, s)
}

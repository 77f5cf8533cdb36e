package renderer

import (
	"github.com/etnz/stocks"
	"github.com/shopspring/decimal"
)

// ComparisonRow is one instant of the comparison. An absent side is shown as "-".
type ComparisonRow struct {
	Time      string
	Portfolio string
	Benchmark string
}

// Comparison is the data of the comparison report.
type Comparison struct {
	Symbol          string
	Period          string
	Rows            []ComparisonRow
	PortfolioChange string
	BenchmarkChange string
	PortfolioErr    error
	BenchmarkErr    error
}

func index(d decimal.Decimal, ok bool) string {
	if !ok {
		return "-"
	}
	return d.StringFixed(2)
}

// change returns the percent change of a normalized series, which starts at 100.
func change(s *stocks.Series) string {
	last, ok := s.Last()
	if !ok {
		return "-"
	}
	return stocks.Percent(last.Value.Sub(decimal.NewFromInt(100)).Round(2).InexactFloat64()).SignedString()
}

// NewComparison creates the comparison report data.
func NewComparison(c *stocks.Comparison, lb stocks.Lookback) *Comparison {
	layout := timeFormat(lb)
	r := &Comparison{
		Symbol:          c.Symbol,
		Period:          lb.Name,
		PortfolioChange: change(c.Portfolio),
		BenchmarkChange: change(c.Benchmark),
		PortfolioErr:    c.PortfolioErr,
		BenchmarkErr:    c.BenchmarkErr,
	}
	for _, p := range c.Points() {
		r.Rows = append(r.Rows, ComparisonRow{
			Time:      p.Time.Format(layout),
			Portfolio: index(p.Portfolio, p.HasPortfolio),
			Benchmark: index(p.Benchmark, p.HasBenchmark),
		})
	}
	return r
}

// RenderComparison renders the portfolio and the benchmark side by side, both
// starting at 100.
func RenderComparison(c *Comparison) string {
	return renderTemplate("compare", "compare.md", nil, c)
}

package stocks

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

var hundred = decimal.NewFromInt(100)

// BuildPortfolioSeries returns the portfolio value over time.
//
// Each ticker's close prices are multiplied by its current ledger quantity: the
// quantity is held constant over the whole window. Series are inner-joined: only
// the instants present in every contributing series are summed, so a gap in one
// ticker's data never shows up as a dip in the total. Tickers not in the ledger or
// with an empty history do not contribute. The result is empty when nothing
// contributes.
func BuildPortfolioSeries(l *Ledger, histories map[string]*Series) *Series {
	var contributions []*Series
	for p := range l.Positions() {
		h := histories[p.Ticker]
		if h.IsEmpty() {
			continue
		}
		contributions = append(contributions, h.Scale(p.Quantity.Decimal()))
	}
	total := new(Series)
	if len(contributions) == 0 {
		return total
	}

next:
	for t, v := range contributions[0].Values() {
		sum := v
		for _, c := range contributions[1:] {
			cv, ok := c.Get(t)
			if !ok {
				continue next
			}
			sum = sum.Add(cv)
		}
		total.times = append(total.times, t)
		total.values = append(total.values, sum)
	}
	return total
}

// Normalize rescales s so that its first value is 100: v[t] / v[t0] * 100.
//
// It fails with ErrDivideByZero when s is empty or starts at 0.
func Normalize(s *Series) (*Series, error) {
	first, ok := s.First()
	if !ok {
		return nil, fmt.Errorf("%w: cannot normalize an empty series", ErrDivideByZero)
	}
	if first.Value.IsZero() {
		return nil, fmt.Errorf("%w: series starts at 0 on %s", ErrDivideByZero, first.Time.Format(time.DateTime))
	}
	res := new(Series)
	for t, v := range s.Values() {
		res.times = append(res.times, t)
		res.values = append(res.values, v.Div(first.Value).Mul(hundred))
	}
	return res, nil
}

// Comparison holds the portfolio and the benchmark, each normalized to start at 100.
//
// The two series are normalized independently and need not share instants. A side
// that could not be normalized has a nil series and its error set; the other side
// is still usable.
type Comparison struct {
	Symbol       string // benchmark ticker
	Portfolio    *Series
	PortfolioErr error
	Benchmark    *Series
	BenchmarkErr error
}

// BuildComparison normalizes the portfolio series and the benchmark series.
func BuildComparison(symbol string, portfolio, benchmark *Series) *Comparison {
	c := &Comparison{Symbol: symbol}
	c.Portfolio, c.PortfolioErr = Normalize(portfolio)
	if c.PortfolioErr != nil {
		c.PortfolioErr = fmt.Errorf("portfolio: %w", c.PortfolioErr)
	}
	c.Benchmark, c.BenchmarkErr = Normalize(benchmark)
	if c.BenchmarkErr != nil {
		c.BenchmarkErr = fmt.Errorf("benchmark %s: %w", symbol, c.BenchmarkErr)
	}
	return c
}

// ComparisonPoint is one instant of a Comparison. Either side may be absent.
type ComparisonPoint struct {
	Time         time.Time
	Portfolio    decimal.Decimal
	HasPortfolio bool
	Benchmark    decimal.Decimal
	HasBenchmark bool
}

// Points merges both timelines in chronological order.
func (c *Comparison) Points() []ComparisonPoint {
	var times []time.Time
	for t := range c.Portfolio.Values() {
		times = append(times, t)
	}
	for t := range c.Benchmark.Values() {
		times = append(times, t)
	}
	slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })
	times = slices.CompactFunc(times, func(a, b time.Time) bool { return a.Equal(b) })

	points := make([]ComparisonPoint, 0, len(times))
	for _, t := range times {
		p := ComparisonPoint{Time: t}
		p.Portfolio, p.HasPortfolio = c.Portfolio.Get(t)
		p.Benchmark, p.HasBenchmark = c.Benchmark.Get(t)
		points = append(points, p)
	}
	return points
}

// Summary describes a series for display next to a chart.
type Summary struct {
	First, Last Point
	High, Low   Point
	Change      decimal.Decimal
	Percent     Percent // 0 when First is 0
}

// Summarize returns the summary of s. ok is false when s is empty.
func Summarize(s *Series) (sum Summary, ok bool) {
	if s.IsEmpty() {
		return Summary{}, false
	}
	values := make([]float64, s.Len())
	for i, v := range s.values {
		values[i] = v.InexactFloat64()
	}
	hi, lo := floats.MaxIdx(values), floats.MinIdx(values)

	sum.First, _ = s.First()
	sum.Last, _ = s.Last()
	sum.High = Point{s.times[hi], s.values[hi]}
	sum.Low = Point{s.times[lo], s.values[lo]}
	sum.Change = sum.Last.Value.Sub(sum.First.Value)
	sum.Percent = percentOf(sum.Change, sum.First.Value)
	return sum, true
}

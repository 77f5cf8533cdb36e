package stocks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeValuation(t *testing.T) {
	l := mustMerge(mustMerge(NewLedger(), "AAPL", 10, 150), "GOOG", 2, 100)
	quotes := map[string]PriceQuote{
		"AAPL": NewQuote("AAPL", M(165.125)),
		"GOOG": NewQuote("GOOG", M(90)),
	}

	v := ComputeValuation(l, quotes)
	require.Len(t, v.Rows, 2)

	aapl := v.Rows[0]
	assert.Equal(t, "AAPL", aapl.Ticker)
	assert.True(t, aapl.HasPrice)
	assert.Equal(t, "165.13", aapl.CurrentPrice.Fixed())
	assert.Equal(t, "1500.00", aapl.TotalCost.Fixed())
	assert.Equal(t, "1651.25", aapl.CurrentValue.Fixed())
	assert.Equal(t, "151.25", aapl.ProfitLoss.Fixed())
	assert.True(t, aapl.PercentChange.Equal(10.08), "got %v", aapl.PercentChange)

	goog := v.Rows[1]
	assert.Equal(t, "200.00", goog.TotalCost.Fixed())
	assert.Equal(t, "180.00", goog.CurrentValue.Fixed())
	assert.Equal(t, "-20.00", goog.ProfitLoss.Fixed())
	assert.True(t, goog.PercentChange.Equal(-10), "got %v", goog.PercentChange)

	assert.True(t, v.Total.IsTotal())
	assert.Equal(t, "12", v.Total.Quantity.String())
	assert.Equal(t, "1700.00", v.Total.TotalCost.Fixed())
	assert.Equal(t, "1831.25", v.Total.CurrentValue.Fixed())
	assert.Equal(t, "131.25", v.Total.ProfitLoss.Fixed())
}

// The total percent change is computed from the totals, not averaged from the rows.
func TestComputeValuation_TotalNotAveraged(t *testing.T) {
	l := mustMerge(mustMerge(NewLedger(), "BIG", 1000, 100), "SMALL", 1, 10)
	quotes := map[string]PriceQuote{
		"BIG":   NewQuote("BIG", M(110)), // +10% on 100000
		"SMALL": NewQuote("SMALL", M(5)), // -50% on 10
	}
	v := ComputeValuation(l, quotes)

	// (110005 - 100010) / 100010 * 100 = 9.994...
	assert.True(t, v.Total.PercentChange.Equal(9.99), "got %v", v.Total.PercentChange)
	assert.False(t, v.Total.PercentChange.Equal((10-50)/2.0))

	var cost, value Money
	for _, r := range v.Rows {
		cost = cost.Add(r.TotalCost)
		value = value.Add(r.CurrentValue)
	}
	assert.True(t, cost.Equal(v.Total.TotalCost))
	assert.True(t, value.Equal(v.Total.CurrentValue))
}

func TestComputeValuation_ZeroCost(t *testing.T) {
	// a price below half a cent is stored as a zero cost
	l := mustMerge(NewLedger(), "FREE", 10, 0.001)
	pos, _ := l.Position("FREE")
	require.True(t, pos.AverageCost.IsZero())

	v := ComputeValuation(l, map[string]PriceQuote{"FREE": NewQuote("FREE", M(3))})
	assert.Equal(t, Percent(0), v.Rows[0].PercentChange)
	assert.Equal(t, "30.00", v.Rows[0].ProfitLoss.Fixed())
	assert.Equal(t, Percent(0), v.Total.PercentChange)
}

func TestComputeValuation_MissingPrice(t *testing.T) {
	l := mustMerge(mustMerge(NewLedger(), "AAPL", 10, 100), "DEAD", 5, 20)
	quotes := map[string]PriceQuote{
		"AAPL": NewQuote("AAPL", M(120)),
		"DEAD": MissingQuote("DEAD", errors.New("delisted")),
	}
	v := ComputeValuation(l, quotes)

	dead := v.Rows[1]
	assert.False(t, dead.HasPrice)
	assert.Equal(t, NotAvailable, dead.CurrentPriceString())
	assert.True(t, dead.CurrentValue.IsZero())
	assert.Equal(t, "-100.00", dead.ProfitLoss.Fixed())
	assert.True(t, dead.PercentChange.Equal(-100))

	aapl := v.Rows[0]
	assert.True(t, aapl.HasPrice)
	assert.Equal(t, "1200.00", aapl.CurrentValue.Fixed())
	assert.NotEqual(t, NotAvailable, aapl.CurrentPriceString())

	assert.Equal(t, []string{"DEAD"}, v.Missing())
	assert.Equal(t, "1200.00", v.Total.CurrentValue.Fixed())
}

func TestComputeValuation_NoQuoteAtAll(t *testing.T) {
	l := mustMerge(NewLedger(), "AAPL", 1, 100)
	v := ComputeValuation(l, nil)
	assert.False(t, v.Rows[0].HasPrice)
	assert.True(t, v.Total.CurrentValue.IsZero())
}

func TestComputeValuation_Empty(t *testing.T) {
	v := ComputeValuation(NewLedger(), nil)
	assert.Empty(t, v.Rows)
	assert.Equal(t, TotalLabel, v.Total.Ticker)
	assert.Equal(t, Percent(0), v.Total.PercentChange)
	assert.Empty(t, v.Allocation())
}

func TestValuation_Allocation(t *testing.T) {
	l := mustMerge(mustMerge(mustMerge(NewLedger(), "A", 3, 1), "B", 1, 1), "C", 1, 1)
	v := ComputeValuation(l, map[string]PriceQuote{
		"A": NewQuote("A", M(100)),
		"B": NewQuote("B", M(100)),
		"C": MissingQuote("C", nil),
	})
	alloc := v.Allocation()
	require.Len(t, alloc, 2)
	assert.Equal(t, "A", alloc[0].Ticker)
	assert.True(t, alloc[0].Weight.Equal(75))
	assert.True(t, alloc[1].Weight.Equal(25))
}

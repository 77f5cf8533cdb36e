package stocks

import (
	"fmt"
	"strings"
	"time"
)

// Interval is the sampling interval of a price history.
type Interval string

const (
	Minute Interval = "1m"
	Hourly Interval = "1h"
	Daily  Interval = "1d"
)

// Lookback is a named history window and the sampling interval used for it.
type Lookback struct {
	Name     string   // canonical name, e.g. "6mo"
	Aliases  []string // other accepted spellings
	Interval Interval
	years    int
	months   int
	days     int
	duration time.Duration
}

// From returns the start of the window ending at now.
func (lb Lookback) From(now time.Time) time.Time {
	return now.AddDate(-lb.years, -lb.months, -lb.days).Add(-lb.duration)
}

// Trim returns the samples of s within the window that ends at its latest sample.
// The window does not depend on the current time, so it still holds the last
// session while the market is closed.
func (lb Lookback) Trim(s *Series) *Series {
	last, ok := s.Last()
	if !ok {
		return new(Series)
	}
	return s.Since(lb.From(last.Time))
}

// IsIntraday reports whether the lookback is sampled more than once a day.
func (lb Lookback) IsIntraday() bool { return lb.Interval != Daily }

func (lb Lookback) String() string { return lb.Name }

// Lookbacks is the recognized vocabulary of history windows, shortest first.
var Lookbacks = []Lookback{
	{Name: "15m", Aliases: []string{"15min"}, Interval: Minute, duration: 15 * time.Minute},
	{Name: "5d", Interval: Hourly, days: 5},
	{Name: "1mo", Interval: Hourly, months: 1},
	{Name: "6mo", Interval: Daily, months: 6},
	{Name: "1y", Interval: Daily, years: 1},
	{Name: "5y", Interval: Daily, years: 5},
}

// DefaultLookback is the window used when none is selected.
const DefaultLookback = "6mo"

// LookbackNames returns the canonical names of Lookbacks.
func LookbackNames() []string {
	names := make([]string, 0, len(Lookbacks))
	for _, lb := range Lookbacks {
		names = append(names, lb.Name)
	}
	return names
}

// ParseLookback returns the Lookback named s (case-insensitive).
func ParseLookback(s string) (Lookback, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, lb := range Lookbacks {
		if lb.Name == s {
			return lb, nil
		}
		for _, alias := range lb.Aliases {
			if alias == s {
				return lb, nil
			}
		}
	}
	return Lookback{}, fmt.Errorf("%w: unknown period %q, expected one of %s", ErrInvalidInput, s, strings.Join(LookbackNames(), ", "))
}

// MustParseLookback is like ParseLookback but panics on error.
func MustParseLookback(s string) Lookback {
	lb, err := ParseLookback(s)
	if err != nil {
		panic(err)
	}
	return lb
}

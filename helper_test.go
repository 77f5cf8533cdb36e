package stocks

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// D is a helper for test to create a decimal from a string const.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// at returns a UTC instant on 2025-01-<day> at <hour>:00.
func at(day, hour int) time.Time { return time.Date(2025, 1, day, hour, 0, 0, 0, time.UTC) }

// series builds a daily series starting on 2025-01-01 from values.
func series(values ...float64) *Series {
	s := new(Series)
	for i, v := range values {
		s.Append(at(1+i, 0), decimal.NewFromFloat(v))
	}
	return s
}

// fakeFeed is an in-memory PriceFeed.
type fakeFeed struct {
	prices    map[string]Money
	histories map[string]*Series
	fail      map[string]error
	calls     []string
}

func (f *fakeFeed) LatestPrice(_ context.Context, ticker string) (Money, error) {
	f.calls = append(f.calls, "price "+ticker)
	if err := f.fail[ticker]; err != nil {
		return Money{}, err
	}
	p, ok := f.prices[ticker]
	if !ok {
		return Money{}, fmt.Errorf("%w: unknown %s", ErrPriceUnavailable, ticker)
	}
	return p, nil
}

func (f *fakeFeed) History(_ context.Context, ticker string, lb Lookback) (*Series, error) {
	f.calls = append(f.calls, "history "+ticker+" "+lb.Name)
	if err := f.fail[ticker]; err != nil {
		return nil, err
	}
	if h, ok := f.histories[ticker]; ok {
		return h, nil
	}
	return new(Series), nil
}

// fakeResolver maps lower case names to tickers, and accepts any known ticker as is.
type fakeResolver map[string]string

func (r fakeResolver) Resolve(_ context.Context, text string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	if t, ok := r[key]; ok {
		return t, nil
	}
	for _, t := range r {
		if strings.EqualFold(t, text) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrResolution, text)
}

// memStore is an in-memory Store keeping the encoded snapshot.
type memStore struct {
	data    []byte
	saveErr error
	saves   int
}

func (s *memStore) Load() (*Ledger, error) {
	if s.data == nil {
		return NewLedger(), nil
	}
	l, err := DecodeLedger(bytes.NewReader(s.data))
	if err != nil {
		return NewLedger(), err
	}
	return l, nil
}

func (s *memStore) Save(l *Ledger) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	var b bytes.Buffer
	if err := EncodeLedger(&b, l); err != nil {
		return err
	}
	s.data = b.Bytes()
	s.saves++
	return nil
}

// mustMerge merges a lot and panics on error.
func mustMerge(l *Ledger, ticker string, q, p float64) *Ledger {
	if _, err := l.MergeLot(ticker, Q(q), M(p)); err != nil {
		panic(err)
	}
	return l
}

package stocks

import (
	"iter"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Point is a single sample of a Series.
type Point struct {
	Time  time.Time
	Value decimal.Decimal
}

// Series stores a chronological series of values, each associated with an instant.
// It ensures that instants are unique and the series is always sorted.
//
// The zero value is an empty series ready to use.
type Series struct {
	times  []time.Time
	values []decimal.Decimal
}

// NewSeries creates a series from points in any order.
func NewSeries(points ...Point) *Series {
	s := new(Series)
	for _, p := range points {
		s.Append(p.Time, p.Value)
	}
	return s
}

// Len returns the number of samples.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.times)
}

// IsEmpty reports whether the series has no samples. A nil series is empty.
func (s *Series) IsEmpty() bool { return s.Len() == 0 }

// index returns the position of t, or where it would be inserted, and whether it was found.
func (s *Series) index(t time.Time) (int, bool) {
	return slices.BinarySearchFunc(s.times, t, func(a, b time.Time) int { return a.Compare(b) })
}

// Append adds a sample to the series.
//
// An existing value at that instant is overwritten.
func (s *Series) Append(t time.Time, v decimal.Decimal) *Series {
	i, found := s.index(t)
	if found {
		// give higher priority to the last data
		s.values[i] = v
		return s
	}
	s.times = slices.Insert(s.times, i, t)
	s.values = slices.Insert(s.values, i, v)
	return s
}

// Get returns the value at t and true, or zero and false.
func (s *Series) Get(t time.Time) (decimal.Decimal, bool) {
	if s == nil {
		return decimal.Zero, false
	}
	i, found := s.index(t)
	if !found {
		return decimal.Zero, false
	}
	return s.values[i], true
}

// First returns the earliest sample. ok is false on an empty series.
func (s *Series) First() (p Point, ok bool) {
	if s.IsEmpty() {
		return Point{}, false
	}
	return Point{s.times[0], s.values[0]}, true
}

// Last returns the latest sample. ok is false on an empty series.
func (s *Series) Last() (p Point, ok bool) {
	if s.IsEmpty() {
		return Point{}, false
	}
	last := len(s.times) - 1
	return Point{s.times[last], s.values[last]}, true
}

// Values returns an iterator over all samples, in chronological order.
func (s *Series) Values() iter.Seq2[time.Time, decimal.Decimal] {
	return func(yield func(time.Time, decimal.Decimal) bool) {
		if s == nil {
			return
		}
		for i, t := range s.times {
			if !yield(t, s.values[i]) {
				return
			}
		}
	}
}

// Points returns a copy of all samples, in chronological order.
func (s *Series) Points() []Point {
	points := make([]Point, 0, s.Len())
	for t, v := range s.Values() {
		points = append(points, Point{t, v})
	}
	return points
}

// Since returns a new series with the samples at or after from.
func (s *Series) Since(from time.Time) *Series {
	res := new(Series)
	if s == nil {
		return res
	}
	i, _ := s.index(from)
	res.times = slices.Clone(s.times[i:])
	res.values = slices.Clone(s.values[i:])
	return res
}

// Scale returns a new series with every value multiplied by f.
func (s *Series) Scale(f decimal.Decimal) *Series {
	res := new(Series)
	for t, v := range s.Values() {
		res.times = append(res.times, t)
		res.values = append(res.values, v.Mul(f))
	}
	return res
}

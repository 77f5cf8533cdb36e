package stocks

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places prices and amounts are stored and displayed with.
const MoneyPlaces = 2

// DisplayCurrency is the currency used to format amounts. The tracker is single currency.
var DisplayCurrency = money.USD

// Money represents a monetary value in major units.
type Money struct {
	value decimal.Decimal
}

// M creates a Money value.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal string like "150.25".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

// String returns the amount formatted in the display currency, e.g. "$1,234.50".
func (m Money) String() string {
	cur := money.GetCurrency(DisplayCurrency)
	if cur == nil {
		return m.value.StringFixed(MoneyPlaces)
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	if !minor.BigInt().IsInt64() {
		// beyond what go-money can hold
		return m.value.StringFixed(MoneyPlaces)
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Signed returns the amount with a "+" sign when positive. Unlike SignedString,
// 0 is displayed as an amount, e.g. "$0.00".
func (m Money) Signed() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value)} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value)} }
func (m Money) Decimal() decimal.Decimal        { return m.value }

// Round returns the amount rounded to cents.
func (m Money) Round() Money { return Money{value: m.value.Round(MoneyPlaces)} }

// Fixed returns the plain amount with exactly two decimals, e.g. "150.00".
func (m Money) Fixed() string { return m.value.StringFixed(MoneyPlaces) }

// MarshalJSON implements the json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}

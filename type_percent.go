package stocks

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Percent float64

// percentOf returns part/whole*100 rounded to 2 decimals, or 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) Percent {
	if !whole.IsPositive() {
		return 0
	}
	return Percent(part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Signed is like SignedString but displays 0 as "+0.00%".
func (p Percent) Signed() string {
	return fmt.Sprintf("%+.2f%%", p)
}

package folio

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
//
// The ledger is single currency: Money carries no currency of its own, the
// currency code is only used when formatting for display.
type Money struct {
	value decimal.Decimal
}

// maxMinor is the largest amount, in minor units, go-money can format.
var maxMinor = decimal.NewFromInt(math.MaxInt64)

func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money     { return Money{value: m.value.Mul(q.value)} }
func (m Money) Div(q Quantity) Money     { return Money{value: m.value.Div(q.value)} }

// Ratio returns m/n as a float, n must not be zero.
func (m Money) Ratio(n Money) float64 { return m.value.Div(n.value).InexactFloat64() }

// String returns the value with two decimals and no currency symbol.
func (m Money) String() string { return m.value.StringFixed(2) }

// Exact returns the value with at least two decimals, never rounded.
func (m Money) Exact() string {
	if m.value.Equal(m.value.Round(2)) {
		return m.value.StringFixed(2)
	}
	return m.value.String()
}

// Display formats the value in the given currency, e.g. "$1,234.50".
// Unknown currencies, and amounts too large for go-money, are written as
// the plain value followed by the currency code.
func (m Money) Display(currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return m.String() + " " + currency
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(maxMinor.Neg()) {
		return m.value.StringFixed(int32(cur.Fraction)) + " " + currency
	}
	return cur.Formatter().Format(minor.IntPart())
}

// SignedDisplay is Display with an explicit "+" for positive values.
func (m Money) SignedDisplay(currency string) string {
	if m.value.IsPositive() {
		return "+" + m.Display(currency)
	}
	return m.Display(currency)
}

// MarshalJSON writes the value as a bare JSON number, with full precision.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts both bare and quoted numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}

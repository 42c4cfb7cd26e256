package folio

import "fmt"

// Percent is a ratio expressed in percents (12.5 means 12.5%).
type Percent float64

// PercentGain returns (value-cost)/cost*100, or 0 when cost is not positive.
func PercentGain(value, cost Money) Percent {
	if !cost.IsPositive() {
		return 0
	}
	return Percent(value.Sub(cost).Ratio(cost) * 100)
}

// Equal compares within 1e-4 percent.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString prints an explicit sign, and "-" for a null change.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

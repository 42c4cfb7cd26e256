package folio

import (
	"context"
	"math"
)

// PriceOracle gives the latest close price of a symbol.
//
// Price returns false when no price is available: unknown symbol, no trading
// history for the most recent session, or any transport or parsing failure.
// Implementations never report a zero price as a valid one, and they log
// failures themselves instead of returning them.
type PriceOracle interface {
	Price(ctx context.Context, symbol string) (Money, bool)
}

// OracleFunc adapts a function to the PriceOracle interface.
type OracleFunc func(ctx context.Context, symbol string) (Money, bool)

func (f OracleFunc) Price(ctx context.Context, symbol string) (Money, bool) { return f(ctx, symbol) }

// PriceMap is an in-memory PriceOracle. Symbols missing from the map are unavailable.
type PriceMap map[string]float64

func (m PriceMap) Price(_ context.Context, symbol string) (Money, bool) {
	v, ok := m[symbol]
	if !ok || !(v > 0) || math.IsInf(v, 1) {
		return Money{}, false
	}
	return M(v), true
}

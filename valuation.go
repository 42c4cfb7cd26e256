package folio

import (
	"context"

	"github.com/rs/zerolog"
)

// Line is the valuation of a single position.
type Line struct {
	Symbol       string
	Name         string // display name from the watchlist, if known
	Quantity     Quantity
	Price        Money // live price, or the average price when Stale
	AveragePrice Money
	Value        Money // Quantity * Price
	CostBasis    Money // Quantity * AveragePrice
	PnL          Money // Value - CostBasis
	PnLPercent   Percent
	Stale        bool // true when no live price was available
}

// Stats is a point in time valuation of a portfolio.
type Stats struct {
	Cash       Money
	AssetValue Money // sum of line values
	TotalValue Money // Cash + AssetValue
	TotalPnL   Money // unrealized gain or loss of held positions
	Lines      []Line
}

// Stale reports whether at least one line was valued without a live price.
func (s Stats) Stale() bool {
	for _, l := range s.Lines {
		if l.Stale {
			return true
		}
	}
	return false
}

// Valuation marks a portfolio to market. It never mutates the portfolio.
type Valuation struct {
	watchlist Watchlist
	oracle    PriceOracle
	log       zerolog.Logger
}

// NewValuation creates a valuation engine. The watchlist only provides display names.
func NewValuation(watchlist Watchlist, oracle PriceOracle, log zerolog.Logger) *Valuation {
	return &Valuation{watchlist: watchlist, oracle: oracle, log: log}
}

// ComputeStats values every position at its live price.
//
// When the oracle has no price for a symbol, the position's average price is
// used instead and the line is flagged Stale: valuation degrades per position
// and never fails.
func (v *Valuation) ComputeStats(ctx context.Context, p *Portfolio) Stats {
	var assets, costs Money
	stats := Stats{Cash: p.Cash()}
	for symbol, pos := range p.Positions() {
		line := Line{
			Symbol:       symbol,
			Quantity:     pos.Quantity,
			AveragePrice: pos.AveragePrice,
			CostBasis:    pos.CostBasis(),
		}
		line.Name, _ = v.watchlist.Name(symbol)

		price, ok := v.oracle.Price(ctx, symbol)
		if !ok || !price.IsPositive() {
			v.log.Warn().Str("symbol", symbol).Msg("no live price, valuing at average price")
			price = pos.AveragePrice
			line.Stale = true
		}
		line.Price = price
		line.Value = price.Mul(pos.Quantity)
		line.PnL = line.Value.Sub(line.CostBasis)
		line.PnLPercent = PercentGain(line.Value, line.CostBasis)

		assets = assets.Add(line.Value)
		costs = costs.Add(line.CostBasis)
		stats.Lines = append(stats.Lines, line)
	}
	stats.AssetValue = assets
	stats.TotalPnL = assets.Sub(costs)
	stats.TotalValue = stats.Cash.Add(assets)
	return stats
}

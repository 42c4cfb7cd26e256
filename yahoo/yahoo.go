// Package yahoo provides a folio.PriceOracle and daily close history backed
// by Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/etnz/folio"
	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// historyFunc returns the daily closes of symbol over period, oldest first.
type historyFunc func(symbol, period string) ([]float64, error)

// Oracle gives prices and close history from Yahoo Finance.
type Oracle struct {
	history historyFunc
	log     zerolog.Logger
}

// New creates an Oracle.
func New(log zerolog.Logger) *Oracle {
	return &Oracle{
		history: dailyCloses,
		log:     log.With().Str("oracle", "yahoo").Logger(),
	}
}

// dailyCloses queries Yahoo Finance for daily bars.
func dailyCloses(symbol, period string) ([]float64, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	bars, err := t.History(models.HistoryParams{
		Period:     period,
		Interval:   "1d",
		AutoAdjust: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get historical prices: %w", err)
	}
	closes := make([]float64, 0, len(bars))
	for _, bar := range bars {
		closes = append(closes, bar.Close)
	}
	return closes, nil
}

// Price returns the close of the most recent trading session.
func (o *Oracle) Price(ctx context.Context, symbol string) (folio.Money, bool) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" || ctx.Err() != nil {
		return folio.Money{}, false
	}
	closes, err := o.history(symbol, "5d")
	if err != nil {
		o.log.Warn().Err(err).Str("symbol", symbol).Msg("price unavailable")
		return folio.Money{}, false
	}
	// skip trailing gaps, yahoo reports them as zero or NaN
	for i := len(closes) - 1; i >= 0; i-- {
		if c := closes[i]; c > 0 && !math.IsInf(c, 1) {
			return folio.M(c), true
		}
	}
	o.log.Warn().Str("symbol", symbol).Msg("no trading session in the last days")
	return folio.Money{}, false
}

// periodFor returns the shortest Yahoo period holding at least n daily sessions.
func periodFor(n int) string {
	switch {
	case n <= 4:
		return "5d"
	case n <= 20:
		return "1mo"
	case n <= 60:
		return "3mo"
	case n <= 120:
		return "6mo"
	case n <= 250:
		return "1y"
	case n <= 500:
		return "2y"
	case n <= 1250:
		return "5y"
	case n <= 2500:
		return "10y"
	default:
		return "max"
	}
}

// Closes returns the daily closes of the last days trading sessions, oldest first.
func (o *Oracle) Closes(ctx context.Context, symbol string, days int) ([]float64, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", folio.ErrInvalidArgument, days)
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", folio.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := o.history(symbol, periodFor(days))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", folio.ErrPriceUnavailable, symbol, err)
	}
	closes := make([]float64, 0, len(all))
	for _, c := range all {
		if c > 0 && !math.IsInf(c, 1) {
			closes = append(closes, c)
		}
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: no history for %s", folio.ErrPriceUnavailable, symbol)
	}
	if len(closes) > days {
		closes = closes[len(closes)-days:]
	}
	return closes, nil
}

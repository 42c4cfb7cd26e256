package folio

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestValuation_ComputeStats(t *testing.T) {
	ctx := context.Background()
	prices := PriceMap{"AAPL": 100, "MSFT": 50, "BTC-USD": 40000}
	l := newTestLedger(t, 10000, prices)
	for _, b := range []struct {
		symbol string
		q      float64
	}{{"AAPL", 10}, {"MSFT", 20}, {"BTC-USD", 0.1}} {
		if _, err := l.Buy(ctx, b.symbol, b.q); err != nil {
			t.Fatalf("Buy(%s) unexpected error: %v", b.symbol, err)
		}
	}
	before := snapshot(t, l.Portfolio())

	// AAPL up, MSFT without price, BTC down.
	market := PriceMap{"AAPL": 120, "BTC-USD": 30000}
	stats := NewValuation(testWatchlist, market, zerolog.Nop()).ComputeStats(ctx, l.Portfolio())

	if want := M(10000 - 1000 - 1000 - 4000); !stats.Cash.Equal(want) {
		t.Errorf("Cash = %s, want %s", stats.Cash, want)
	}
	if want := M(1200 + 1000 + 3000); !stats.AssetValue.Equal(want) {
		t.Errorf("AssetValue = %s, want %s", stats.AssetValue, want)
	}
	if want := M(4000 + 5200); !stats.TotalValue.Equal(want) {
		t.Errorf("TotalValue = %s, want %s", stats.TotalValue, want)
	}
	if want := M(200 + 0 - 1000); !stats.TotalPnL.Equal(want) {
		t.Errorf("TotalPnL = %s, want %s", stats.TotalPnL, want)
	}
	if !stats.Stale() {
		t.Error("Stale() = false, want true")
	}

	wants := []struct {
		symbol, name string
		value        Money
		pnl          Money
		percent      Percent
		stale        bool
	}{
		{"AAPL", "Apple", M(1200), M(200), 20, false},
		{"BTC-USD", "Bitcoin", M(3000), M(-1000), -25, false},
		{"MSFT", "Microsoft", M(1000), M(0), 0, true},
	}
	if len(stats.Lines) != len(wants) {
		t.Fatalf("got %d lines, want %d", len(stats.Lines), len(wants))
	}
	for i, want := range wants {
		got := stats.Lines[i]
		if got.Symbol != want.symbol || got.Name != want.name {
			t.Errorf("line %d = %s (%s), want %s (%s)", i, got.Symbol, got.Name, want.symbol, want.name)
		}
		if !got.Value.Equal(want.value) || !got.PnL.Equal(want.pnl) || !got.PnLPercent.Equal(want.percent) {
			t.Errorf("%s: value %s pnl %s (%s), want %s pnl %s (%s)", got.Symbol, got.Value, got.PnL, got.PnLPercent, want.value, want.pnl, want.percent)
		}
		if got.Stale != want.stale {
			t.Errorf("%s: Stale = %v, want %v", got.Symbol, got.Stale, want.stale)
		}
	}
	if msft := stats.Lines[2]; !msft.Price.Equal(msft.AveragePrice) {
		t.Errorf("stale price = %s, want the average price %s", msft.Price, msft.AveragePrice)
	}

	if after := snapshot(t, l.Portfolio()); after != before {
		t.Error("ComputeStats mutated the portfolio")
	}
}

func TestValuation_EmptyPortfolio(t *testing.T) {
	p := NewPortfolio()
	stats := NewValuation(testWatchlist, PriceMap{}, zerolog.Nop()).ComputeStats(context.Background(), p)
	if !stats.Cash.Equal(M(0)) || !stats.TotalValue.Equal(M(0)) || !stats.TotalPnL.Equal(M(0)) || len(stats.Lines) != 0 {
		t.Errorf("stats of an empty portfolio = %+v", stats)
	}
	if stats.Stale() {
		t.Error("Stale() = true for an empty portfolio")
	}
}

func TestValuation_ZeroCostBasis(t *testing.T) {
	// a position received for free has a zero cost basis: its percent gain is 0.
	p := &Portfolio{positions: map[string]Position{"AAPL": {Quantity: Q(2), AveragePrice: M(0)}}}
	stats := NewValuation(testWatchlist, PriceMap{"AAPL": 10}, zerolog.Nop()).ComputeStats(context.Background(), p)

	line := stats.Lines[0]
	if !line.Value.Equal(M(20)) || !line.PnL.Equal(M(20)) {
		t.Errorf("value %s pnl %s, want 20 and 20", line.Value, line.PnL)
	}
	if line.PnLPercent != 0 {
		t.Errorf("PnLPercent = %s, want 0", line.PnLPercent)
	}
}

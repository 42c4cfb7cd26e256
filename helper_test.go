package folio

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// testWatchlist is a small watchlist for tests.
var testWatchlist = NewWatchlist(map[string]string{
	"AAPL":    "Apple",
	"MSFT":    "Microsoft",
	"BTC-USD": "Bitcoin",
})

// testClock returns a clock starting at 2025-01-10 09:30:00 local time that
// advances by one minute at each call.
func testClock() func() time.Time {
	now := time.Date(2025, 1, 10, 9, 29, 0, 0, time.Local)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

// newTestLedger returns a ledger on a fresh portfolio funded with cash, pricing from prices.
func newTestLedger(t *testing.T, cash float64, prices PriceMap) *Ledger {
	t.Helper()
	l, err := NewLedger(NewPortfolio(), testWatchlist, prices, WithClock(testClock()), WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("NewLedger() unexpected error: %v", err)
	}
	if cash != 0 {
		if err := l.UpdateCash(cash); err != nil {
			t.Fatalf("UpdateCash(%v) unexpected error: %v", cash, err)
		}
	}
	return l
}

// snapshot returns the encoded portfolio, to compare states byte for byte.
func snapshot(t *testing.T, p *Portfolio) string {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio() unexpected error: %v", err)
	}
	return buf.String()
}

package folio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// samplePortfolio returns a portfolio with cash, two positions and history.
func samplePortfolio(t *testing.T) *Portfolio {
	t.Helper()
	ctx := context.Background()
	prices := PriceMap{"AAPL": 100, "BTC-USD": 41234.56}
	l := newTestLedger(t, 10000.5, prices)
	if _, err := l.Buy(ctx, "AAPL", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Buy(ctx, "BTC-USD", 0.05); err != nil {
		t.Fatal(err)
	}
	prices["AAPL"] = 130
	if _, err := l.Buy(ctx, "AAPL", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Sell(ctx, "AAPL", 0.5); err != nil {
		t.Fatal(err)
	}
	return l.Portfolio()
}

func TestPortfolio_RoundTrip(t *testing.T) {
	p := samplePortfolio(t)

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio() unexpected error: %v", err)
	}
	got, err := DecodePortfolio(&buf)
	if err != nil {
		t.Fatalf("DecodePortfolio() unexpected error: %v", err)
	}
	if !got.Equal(p) {
		t.Errorf("round trip mismatch:\ngot  %s\nwant %s", snapshot(t, got), snapshot(t, p))
	}
}

func TestPortfolio_MarshalJSON(t *testing.T) {
	stamp := time.Date(2025, 1, 10, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	p := &Portfolio{
		cash:      M(670),
		positions: map[string]Position{"AAPL": {Quantity: Q(3), AveragePrice: M(110)}},
		history:   []HistoryEntry{{Date: stamp, Action: "Deposit 1000.00", Cash: M(1000)}},
	}
	got, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	want := `{"cash":670,"positions":{"AAPL":{"qty":3,"avg_price":110}},"history":[{"date":"2025-01-10T08:30:00Z","action":"Deposit 1000.00","cash_snapshot":1000}]}`
	if string(got) != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}

	// an empty portfolio still has the three fields.
	got, err = json.Marshal(&Portfolio{})
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	if want := `{"cash":0,"positions":{},"history":[]}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDecodePortfolio_Malformed(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		invalid bool // wraps ErrInvalidArgument
	}{
		{name: "not json", input: `cash: 10`},
		{name: "truncated", input: `{"cash": 10, "positions": {`},
		{name: "missing cash", input: `{"positions": {}, "history": []}`, invalid: true},
		{name: "string cash", input: `{"cash": "ten"}`},
		{name: "zero quantity", input: `{"cash": 1, "positions": {"AAPL": {"qty": 0, "avg_price": 1}}}`, invalid: true},
		{name: "negative average", input: `{"cash": 1, "positions": {"AAPL": {"qty": 1, "avg_price": -1}}}`, invalid: true},
		{name: "history without cash snapshot", input: `{"cash": 1, "history": [{"date": "2025-01-10 09:30:00", "action": "x"}]}`},
		{name: "history with bad date", input: `{"cash": 1, "history": [{"date": "10/01/2025", "action": "x", "cash_snapshot": 1}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePortfolio(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("DecodePortfolio() expected an error")
			}
			if tc.invalid && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("DecodePortfolio() error = %v, want %v", err, ErrInvalidArgument)
			}
		})
	}
}

func TestDecodePortfolio_Minimal(t *testing.T) {
	p, err := DecodePortfolio(strings.NewReader(`{"cash": 12.5}`))
	if err != nil {
		t.Fatalf("DecodePortfolio() unexpected error: %v", err)
	}
	if !p.Cash().Equal(M(12.5)) || p.Len() != 0 || len(p.History()) != 0 {
		t.Errorf("got %s", snapshot(t, p))
	}
}

func TestDecodePortfolio_LocalDates(t *testing.T) {
	p, err := DecodePortfolio(strings.NewReader(`{"cash": 1, "history": [
		{"date": "2025-01-10 09:30:00", "action": "Deposit 1.00", "cash_snapshot": 1},
		{"date": "2025-01-10T09:31:00+01:00", "action": "Deposit 0.00", "cash_snapshot": 1}
	]}`))
	if err != nil {
		t.Fatalf("DecodePortfolio() unexpected error: %v", err)
	}
	history := p.History()
	if want := time.Date(2025, 1, 10, 9, 30, 0, 0, time.Local); !history[0].Date.Equal(want) {
		t.Errorf("date without offset = %v, want %v", history[0].Date, want)
	}
	if want := time.Date(2025, 1, 10, 8, 31, 0, 0, time.UTC); !history[1].Date.Equal(want) {
		t.Errorf("date with offset = %v, want %v", history[1].Date, want)
	}
}

func TestPortfolio_Positions(t *testing.T) {
	p := samplePortfolio(t)
	var symbols []string
	for symbol := range p.Positions() {
		symbols = append(symbols, symbol)
	}
	if got, want := strings.Join(symbols, ","), "AAPL,BTC-USD"; got != want {
		t.Errorf("Positions() order = %s, want %s", got, want)
	}

	// History returns a copy.
	h := p.History()
	h[0].Action = "tampered"
	if p.History()[0].Action == "tampered" {
		t.Error("History() exposes the internal slice")
	}
}

func TestPortfolio_Clone(t *testing.T) {
	p := samplePortfolio(t)
	c := p.Clone()
	if !c.Equal(p) {
		t.Fatal("Clone() is not equal to the original")
	}
	l, err := NewLedger(c, testWatchlist, PriceMap{"AAPL": 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Sell(context.Background(), "AAPL", 2.5); err != nil {
		t.Fatal(err)
	}
	if c.Equal(p) {
		t.Error("mutating the clone changed the original")
	}
	if _, ok := p.Position("AAPL"); !ok {
		t.Error("original lost its AAPL position")
	}
}

func TestExportHistory(t *testing.T) {
	p := &Portfolio{history: []HistoryEntry{
		{Date: time.Date(2025, 1, 10, 9, 30, 0, 0, time.Local), Action: "Deposit 1000.00", Cash: M(1000)},
		{Date: time.Date(2025, 1, 10, 9, 31, 5, 0, time.Local), Action: "Buy 2 AAPL at 100.00 for 200.00", Cash: M(800)},
		{Date: time.Date(2025, 1, 11, 17, 0, 0, 0, time.Local), Action: `Note, with "quotes"`, Cash: M(800.25)},
	}}
	var buf bytes.Buffer
	if err := ExportHistory(&buf, p); err != nil {
		t.Fatalf("ExportHistory() unexpected error: %v", err)
	}
	want := `Date,Action,Cash
2025-01-10 09:30:00,Deposit 1000.00,1000
2025-01-10 09:31:05,Buy 2 AAPL at 100.00 for 200.00,800
2025-01-11 17:00:00,"Note, with ""quotes""",800.25
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncode_WriteErrors(t *testing.T) {
	p := samplePortfolio(t)
	if err := EncodePortfolio(failingWriter{}, p); !errors.Is(err, ErrIO) {
		t.Errorf("EncodePortfolio() error = %v, want %v", err, ErrIO)
	}
	if err := ExportHistory(failingWriter{}, p); !errors.Is(err, ErrIO) {
		t.Errorf("ExportHistory() error = %v, want %v", err, ErrIO)
	}
}

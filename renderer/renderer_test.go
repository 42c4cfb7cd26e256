package renderer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/folio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// tables parses markdown and returns the plain text of every table, as rows
// of cells, header row first.
func tables(t *testing.T, md string) [][][]string {
	t.Helper()
	src := []byte(md)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var out [][][]string
	var row []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n.Kind() {
		case east.KindTable:
			if entering {
				out = append(out, nil)
			}
		case east.KindTableHeader, east.KindTableRow:
			if entering {
				row = nil
			} else {
				out[len(out)-1] = append(out[len(out)-1], row)
			}
		case east.KindTableCell:
			if entering {
				row = append(row, plain(n, src))
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return out
}

// plain returns the text content of n.
func plain(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

var watchlist = folio.NewWatchlist(map[string]string{
	"AAPL": "Apple",
	"MSFT": "Microsoft",
})

// portfolio returns a portfolio with AAPL bought at 150 and MSFT at 100.
func portfolio(t *testing.T) *folio.Portfolio {
	t.Helper()
	clock := func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local) }
	l, err := folio.NewLedger(folio.NewPortfolio(), watchlist,
		folio.PriceMap{"AAPL": 150, "MSFT": 100},
		folio.WithClock(clock), folio.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.NoError(t, l.UpdateCash(10000))
	_, err = l.Buy(context.Background(), "AAPL", 10)
	require.NoError(t, err)
	_, err = l.Buy(context.Background(), "MSFT", 5)
	require.NoError(t, err)
	return l.Portfolio()
}

func TestStatsMarkdown(t *testing.T) {
	v := folio.NewValuation(watchlist, folio.PriceMap{"AAPL": 200}, zerolog.Nop())
	stats := v.ComputeStats(context.Background(), portfolio(t))

	md := StatsMarkdown(stats, "USD")
	got := tables(t, md)
	require.Len(t, got, 2)

	assert.Equal(t, [][]string{
		{"Summary", "Value"},
		{"Cash", "$8,000.00"},
		{"Assets", "$2,500.00"},
		{"Total", "$10,500.00"},
		{"Unrealized P&L", "+$500.00"},
	}, got[0])

	assert.Equal(t, [][]string{
		{"Symbol", "Name", "Quantity", "Avg. Price", "Price", "Value", "P&L", "P&L %"},
		{"AAPL", "Apple", "10", "$150.00", "$200.00", "$2,000.00", "+$500.00", "+33.33%"},
		{"MSFT", "Microsoft", "5", "$100.00", "$100.00 *", "$500.00", "$0.00", "-"},
	}, got[1])
	assert.Contains(t, md, "no live price")
}

func TestStatsMarkdown_NoPositions(t *testing.T) {
	md := StatsMarkdown(folio.Stats{Cash: folio.M(42)}, "USD")
	got := tables(t, md)
	require.Len(t, got, 1)
	assert.Contains(t, md, "No positions.")
	assert.NotContains(t, md, "no live price")
}

func TestWatchlistMarkdown(t *testing.T) {
	quotes := map[string]folio.Money{"AAPL": folio.M(187.5)}
	got := tables(t, WatchlistMarkdown(watchlist, quotes, "USD"))
	require.Len(t, got, 1)
	assert.Equal(t, [][]string{
		{"Symbol", "Name", "Price"},
		{"AAPL", "Apple", "$187.50"},
		{"MSFT", "Microsoft", "n/a"},
	}, got[0])
}

func TestHistoryMarkdown(t *testing.T) {
	history := portfolio(t).History()

	got := tables(t, HistoryMarkdown(history, 0, "USD"))
	require.Len(t, got, 1)
	require.Len(t, got[0], 4)
	assert.Equal(t, []string{"2025-03-14 09:30:00", "Deposit 10000.00", "$10,000.00"}, got[0][1])
	assert.Equal(t, "$8,000.00", got[0][3][2])

	got = tables(t, HistoryMarkdown(history, 1, "USD"))
	require.Len(t, got[0], 2)
	assert.Equal(t, "$8,000.00", got[0][1][2])

	md := HistoryMarkdown(nil, 0, "USD")
	assert.Empty(t, tables(t, md))
	assert.Contains(t, md, "No operations.")
}

func TestTradeMarkdown(t *testing.T) {
	trade := folio.Trade{Symbol: "AAPL", Quantity: folio.Q(2), Price: folio.M(150), Amount: folio.M(300)}
	md := TradeMarkdown("Bought", trade, folio.M(700), "USD")
	assert.Equal(t, "Bought **2 AAPL** at $150.00 for $300.00. Cash balance: $700.00.\n", md)
}

package renderer

import (
	"bytes"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// StatsMarkdown renders a portfolio valuation: a summary followed by one row
// per position. Positions valued without a live price are marked with an
// asterisk and explained in a footnote.
func StatsMarkdown(s folio.Stats, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Portfolio")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Summary", "Value"},
		Rows: [][]string{
			{"Cash", s.Cash.Display(currency)},
			{"Assets", s.AssetValue.Display(currency)},
			{md.Bold("Total"), md.Bold(s.TotalValue.Display(currency))},
			{"Unrealized P&L", s.TotalPnL.SignedDisplay(currency)},
		},
	})

	if len(s.Lines) == 0 {
		doc.PlainText("No positions.")
		return doc.String()
	}

	doc.H2("Positions")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Name", "Quantity", "Avg. Price", "Price", "Value", "P&L", "P&L %"},
		Rows:   [][]string{},
	}
	for _, l := range s.Lines {
		price := l.Price.Display(currency)
		if l.Stale {
			price += " *"
		}
		table.Rows = append(table.Rows, []string{
			l.Symbol,
			l.Name,
			l.Quantity.String(),
			l.AveragePrice.Display(currency),
			price,
			l.Value.Display(currency),
			l.PnL.SignedDisplay(currency),
			l.PnLPercent.SignedString(),
		})
	}
	doc.Table(table)
	if s.Stale() {
		doc.PlainText(`\* no live price, valued at average price.`)
	}
	return doc.String()
}

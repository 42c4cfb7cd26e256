package renderer

import (
	"bytes"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// WatchlistMarkdown renders the tradeable symbols with their latest quote.
// Symbols missing from quotes are shown as unavailable.
func WatchlistMarkdown(w folio.Watchlist, quotes map[string]folio.Money, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Watchlist")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Symbol", "Name", "Price"},
		Rows:      [][]string{},
	}
	for symbol := range w.Symbols() {
		name, _ := w.Name(symbol)
		price := "n/a"
		if q, ok := quotes[symbol]; ok {
			price = q.Display(currency)
		}
		table.Rows = append(table.Rows, []string{symbol, name, price})
	}
	doc.Table(table)
	return doc.String()
}

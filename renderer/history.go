package renderer

import (
	"bytes"
	"time"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the operation history, oldest first, with the cash
// balance after each operation. Only the last n entries are shown when n > 0.
func HistoryMarkdown(entries []folio.HistoryEntry, n int, currency string) string {
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("History")
	if len(entries) == 0 {
		doc.PlainText("No operations.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Action", "Cash"},
		Rows:   [][]string{},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			e.Date.Local().Format(time.DateTime),
			e.Action,
			e.Cash.Display(currency),
		})
	}
	doc.Table(table)
	return doc.String()
}

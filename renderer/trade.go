package renderer

import (
	"fmt"

	"github.com/etnz/folio"
)

// TradeMarkdown renders the confirmation of an executed trade.
func TradeMarkdown(side string, t folio.Trade, cash folio.Money, currency string) string {
	return fmt.Sprintf("%s **%s %s** at %s for %s. Cash balance: %s.\n",
		side, t.Quantity, t.Symbol, t.Price.Display(currency), t.Amount.Display(currency), cash.Display(currency))
}

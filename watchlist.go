package folio

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Watchlist is the immutable set of tradeable symbols and their display names.
//
// It is the only admission gate for trading: a symbol that is not in the
// watchlist can never be bought.
type Watchlist struct {
	names map[string]string
}

// NewWatchlist creates a watchlist from a symbol to display name mapping.
// The mapping is copied, later changes to it have no effect. Blank symbols
// are ignored.
func NewWatchlist(names map[string]string) Watchlist {
	w := Watchlist{names: make(map[string]string, len(names))}
	for symbol, name := range names {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}
		w.names[symbol] = name
	}
	return w
}

// DefaultWatchlist returns the watchlist used when none is configured.
func DefaultWatchlist() Watchlist {
	return NewWatchlist(map[string]string{
		"AAPL":    "Apple Inc.",
		"MSFT":    "Microsoft Corporation",
		"GOOGL":   "Alphabet Inc.",
		"AMZN":    "Amazon.com Inc.",
		"TSLA":    "Tesla Inc.",
		"NVDA":    "NVIDIA Corporation",
		"BTC-USD": "Bitcoin",
		"ETH-USD": "Ethereum",
	})
}

// Has reports whether symbol is tradeable.
func (w Watchlist) Has(symbol string) bool {
	_, ok := w.names[symbol]
	return ok
}

// Name returns the display name of symbol.
func (w Watchlist) Name(symbol string) (string, bool) {
	name, ok := w.names[symbol]
	return name, ok
}

// Len returns the number of tradeable symbols.
func (w Watchlist) Len() int { return len(w.names) }

// Symbols iterates over the symbols in alphabetical order.
func (w Watchlist) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, symbol := range slices.Sorted(maps.Keys(w.names)) {
			if !yield(symbol) {
				return
			}
		}
	}
}

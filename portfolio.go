package folio

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"time"
)

// HistoryDateLayout is the layout of history timestamps in snapshots. They
// are always written in UTC so that an instant is never ambiguous.
const HistoryDateLayout = time.RFC3339

// localDateLayout is the layout of history timestamps in exports, and in
// snapshots written before timestamps carried an offset.
const localDateLayout = time.DateTime

func formatHistoryDate(t time.Time) string { return t.UTC().Format(HistoryDateLayout) }

// parseHistoryDate reads a snapshot timestamp. Timestamps without an offset
// are read in local time.
func parseHistoryDate(s string) (time.Time, error) {
	if t, err := time.Parse(HistoryDateLayout, s); err == nil {
		return t.Local(), nil
	}
	return time.ParseInLocation(localDateLayout, s, time.Local)
}

// Position is the holding of a single symbol.
type Position struct {
	Quantity     Quantity `json:"qty"`       // always strictly positive in a portfolio
	AveragePrice Money    `json:"avg_price"` // quantity weighted average cost of all purchases
}

// CostBasis returns the total cost of the position at its average price.
func (p Position) CostBasis() Money { return p.AveragePrice.Mul(p.Quantity) }

// HistoryEntry records one successful mutation of a portfolio.
type HistoryEntry struct {
	Date   time.Time // when the mutation happened, second precision
	Action string    // human readable description
	Cash   Money     // cash balance after the mutation
}

// MarshalJSON writes the entry as {"date","action","cash_snapshot"}.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", formatHistoryDate(e.Date))
	w.Append("action", e.Action)
	w.Append("cash_snapshot", e.Cash)
	return w.MarshalJSON()
}

// UnmarshalJSON reads an entry written by MarshalJSON.
func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	var temp struct {
		Date   string `json:"date"`
		Action string `json:"action"`
		Cash   *Money `json:"cash_snapshot"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Cash == nil {
		return fmt.Errorf("history entry %q has no cash_snapshot", temp.Action)
	}
	day, err := parseHistoryDate(temp.Date)
	if err != nil {
		return fmt.Errorf("history entry %q has an invalid date: %w", temp.Action, err)
	}
	*e = HistoryEntry{Date: day, Action: temp.Action, Cash: *temp.Cash}
	return nil
}

// Equal compares entries, dates are compared as instants.
func (e HistoryEntry) Equal(o HistoryEntry) bool {
	return e.Date.Equal(o.Date) && e.Action == o.Action && e.Cash.Equal(o.Cash)
}

// Portfolio is the whole state of a session: cash, positions and the
// chronological history of mutations.
//
// A Portfolio is only mutated through a Ledger, which keeps it consistent.
type Portfolio struct {
	cash      Money
	positions map[string]Position
	history   []HistoryEntry
}

// NewPortfolio returns an empty portfolio: no cash, no positions, no history.
func NewPortfolio() *Portfolio {
	return &Portfolio{positions: make(map[string]Position)}
}

// Cash returns the current cash balance.
func (p *Portfolio) Cash() Money { return p.cash }

// Position returns the position held on symbol, if any.
func (p *Portfolio) Position(symbol string) (Position, bool) {
	pos, ok := p.positions[symbol]
	return pos, ok
}

// Positions iterates over held positions in symbol order.
func (p *Portfolio) Positions() iter.Seq2[string, Position] {
	return func(yield func(string, Position) bool) {
		for _, symbol := range slices.Sorted(maps.Keys(p.positions)) {
			if !yield(symbol, p.positions[symbol]) {
				return
			}
		}
	}
}

// Len returns the number of held positions.
func (p *Portfolio) Len() int { return len(p.positions) }

// History returns a copy of the history, oldest first.
func (p *Portfolio) History() []HistoryEntry { return slices.Clone(p.history) }

// Clone returns a deep copy of p.
func (p *Portfolio) Clone() *Portfolio {
	return &Portfolio{
		cash:      p.cash,
		positions: maps.Clone(p.positions),
		history:   slices.Clone(p.history),
	}
}

// Equal reports whether p and o have the same cash, positions and history.
func (p *Portfolio) Equal(o *Portfolio) bool {
	if !p.cash.Equal(o.cash) || len(p.positions) != len(o.positions) || len(p.history) != len(o.history) {
		return false
	}
	for symbol, pos := range p.positions {
		other, ok := o.positions[symbol]
		if !ok || !pos.Quantity.Equal(other.Quantity) || !pos.AveragePrice.Equal(other.AveragePrice) {
			return false
		}
	}
	return slices.EqualFunc(p.history, o.history, HistoryEntry.Equal)
}

// MarshalJSON writes the snapshot format: {"cash","positions","history"} in that order.
func (p *Portfolio) MarshalJSON() ([]byte, error) {
	history := p.history
	if history == nil {
		history = []HistoryEntry{}
	}
	positions := p.positions
	if positions == nil {
		positions = map[string]Position{}
	}
	var w jsonObjectWriter
	w.Append("cash", p.cash)
	w.Append("positions", positions)
	w.Append("history", history)
	return w.MarshalJSON()
}

// UnmarshalJSON reads the snapshot format. A snapshot without "cash" is
// malformed, and so is any position with a non positive quantity or a
// negative average price.
func (p *Portfolio) UnmarshalJSON(data []byte) error {
	var temp struct {
		Cash      *Money              `json:"cash"`
		Positions map[string]Position `json:"positions"`
		History   []HistoryEntry      `json:"history"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Cash == nil {
		return fmt.Errorf("%w: snapshot has no cash", ErrInvalidArgument)
	}
	positions := make(map[string]Position, len(temp.Positions))
	for symbol, pos := range temp.Positions {
		if !pos.Quantity.IsPositive() {
			return fmt.Errorf("%w: position %q has a non positive quantity %s", ErrInvalidArgument, symbol, pos.Quantity)
		}
		if pos.AveragePrice.IsNegative() {
			return fmt.Errorf("%w: position %q has a negative average price %s", ErrInvalidArgument, symbol, pos.AveragePrice)
		}
		positions[symbol] = pos
	}
	*p = Portfolio{cash: *temp.Cash, positions: positions, history: temp.History}
	return nil
}

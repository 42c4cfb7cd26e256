package folio

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Ledger applies cash updates, buys and sells to a Portfolio.
//
// Every operation either succeeds and appends exactly one history entry, or
// fails and leaves the portfolio untouched. A Ledger is meant for a single
// session and a single caller, it is not safe for concurrent use.
type Ledger struct {
	portfolio *Portfolio
	watchlist Watchlist
	oracle    PriceOracle
	now       func() time.Time
	log       zerolog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used to timestamp history entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger sets the ledger's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// Trade describes an executed buy or sell.
type Trade struct {
	Symbol   string
	Quantity Quantity
	Price    Money // unit price used
	Amount   Money // cost of a buy, revenue of a sell
}

// NewLedger creates a ledger operating on p.
//
// p is checked first: every position must be on a watchlist symbol, with a
// positive quantity and a non negative average price.
func NewLedger(p *Portfolio, watchlist Watchlist, oracle PriceOracle, opts ...Option) (*Ledger, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no portfolio", ErrInvalidArgument)
	}
	if oracle == nil {
		return nil, fmt.Errorf("%w: no price oracle", ErrInvalidArgument)
	}
	if p.positions == nil {
		p.positions = make(map[string]Position)
	}
	for symbol, pos := range p.positions {
		if !watchlist.Has(symbol) {
			return nil, fmt.Errorf("%w: portfolio holds %q which is not in the watchlist", ErrNotTradeable, symbol)
		}
		if !pos.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: position %q has a non positive quantity %s", ErrInvalidArgument, symbol, pos.Quantity)
		}
		if pos.AveragePrice.IsNegative() {
			return nil, fmt.Errorf("%w: position %q has a negative average price %s", ErrInvalidArgument, symbol, pos.AveragePrice)
		}
	}

	l := &Ledger{
		portfolio: p,
		watchlist: watchlist,
		oracle:    oracle,
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Portfolio returns the portfolio this ledger operates on.
func (l *Ledger) Portfolio() *Portfolio { return l.portfolio }

// Watchlist returns the tradeable symbols.
func (l *Ledger) Watchlist() Watchlist { return l.watchlist }

// record appends a history entry for the current cash balance.
func (l *Ledger) record(action string) {
	stamp := l.now().In(time.Local).Truncate(time.Second)
	l.portfolio.history = append(l.portfolio.history, HistoryEntry{
		Date:   stamp,
		Action: action,
		Cash:   l.portfolio.cash,
	})
}

// UpdateCash adds amount to the cash balance. A negative amount is a
// withdrawal, there is no lower bound on the resulting balance.
func (l *Ledger) UpdateCash(amount float64) error {
	delta, err := finite("amount", amount)
	if err != nil {
		return err
	}
	m := M(delta)
	l.portfolio.cash = l.portfolio.cash.Add(m)

	action := "Deposit " + m.Exact()
	if m.IsNegative() {
		action = "Withdraw " + m.Neg().Exact()
	}
	l.record(action)
	l.log.Info().Str("amount", m.String()).Str("cash", l.portfolio.cash.String()).Msg("cash updated")
	return nil
}

// quantity validates a user supplied quantity.
func quantity(q float64) (Quantity, error) {
	d, err := finite("quantity", q)
	if err != nil {
		return Quantity{}, err
	}
	if !d.IsPositive() {
		return Quantity{}, fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidArgument, q)
	}
	return Q(d), nil
}

// price asks the oracle for the price of symbol, non positive prices are unavailable.
func (l *Ledger) price(ctx context.Context, symbol string) (Money, error) {
	p, ok := l.oracle.Price(ctx, symbol)
	if !ok || !p.IsPositive() {
		return Money{}, fmt.Errorf("%w: no price for %q", ErrPriceUnavailable, symbol)
	}
	return p, nil
}

// Buy purchases quantity units of symbol at the oracle's price.
//
// The purchase cost is debited from cash and the position's average price
// becomes the quantity weighted average of its previous cost and this purchase.
func (l *Ledger) Buy(ctx context.Context, symbol string, q float64) (Trade, error) {
	qty, err := quantity(q)
	if err != nil {
		return Trade{}, err
	}
	if !l.watchlist.Has(symbol) {
		return Trade{}, fmt.Errorf("%w: %q is not in the watchlist", ErrNotTradeable, symbol)
	}
	price, err := l.price(ctx, symbol)
	if err != nil {
		return Trade{}, err
	}
	cost := price.Mul(qty)
	if cost.GreaterThan(l.portfolio.cash) {
		return Trade{}, fmt.Errorf("%w: buying %s %s costs %s, cash is %s", ErrInsufficientFunds, qty, symbol, cost, l.portfolio.cash)
	}

	pos, held := l.portfolio.positions[symbol]
	if held {
		total := pos.Quantity.Add(qty)
		pos.AveragePrice = pos.CostBasis().Add(cost).Div(total)
		pos.Quantity = total
	} else {
		pos = Position{Quantity: qty, AveragePrice: price}
	}
	l.portfolio.cash = l.portfolio.cash.Sub(cost)
	l.portfolio.positions[symbol] = pos

	l.record(fmt.Sprintf("Buy %s %s at %s for %s", qty, symbol, price.Exact(), cost.Exact()))
	l.log.Info().Str("symbol", symbol).Str("quantity", qty.String()).Str("price", price.String()).Str("cash", l.portfolio.cash.String()).Msg("bought")
	return Trade{Symbol: symbol, Quantity: qty, Price: price, Amount: cost}, nil
}

// Sell sells quantity units of symbol at the oracle's price.
//
// The revenue is credited to cash. The average price of the remaining units
// is unchanged, and a position sold out entirely is removed.
func (l *Ledger) Sell(ctx context.Context, symbol string, q float64) (Trade, error) {
	qty, err := quantity(q)
	if err != nil {
		return Trade{}, err
	}
	pos, held := l.portfolio.positions[symbol]
	if !held || pos.Quantity.LessThan(qty) {
		return Trade{}, fmt.Errorf("%w: cannot sell %s %s, holding %s", ErrInsufficientPosition, qty, symbol, pos.Quantity)
	}
	price, err := l.price(ctx, symbol)
	if err != nil {
		return Trade{}, err
	}
	revenue := price.Mul(qty)

	pos.Quantity = pos.Quantity.Sub(qty)
	if pos.Quantity.IsPositive() {
		l.portfolio.positions[symbol] = pos
	} else {
		delete(l.portfolio.positions, symbol)
	}
	l.portfolio.cash = l.portfolio.cash.Add(revenue)

	l.record(fmt.Sprintf("Sell %s %s at %s for %s", qty, symbol, price.Exact(), revenue.Exact()))
	l.log.Info().Str("symbol", symbol).Str("quantity", qty.String()).Str("price", price.String()).Str("cash", l.portfolio.cash.String()).Msg("sold")
	return Trade{Symbol: symbol, Quantity: qty, Price: price, Amount: revenue}, nil
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// tradeFlags are the flags shared by buy and sell.
type tradeFlags struct {
	symbol   string
	quantity float64
}

func (t *tradeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.symbol, "s", "", "symbol to trade, from the watchlist")
	f.Float64Var(&t.quantity, "q", 0, "quantity to trade, fractional quantities are allowed")
}

// normalizeSymbol reads symbols the way users type them.
func normalizeSymbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

type tradeFunc func(l *folio.Ledger, ctx context.Context, symbol string, q float64) (folio.Trade, error)

// trade executes fn on a fresh session, saves the portfolio and prints a confirmation.
func (t *tradeFlags) trade(ctx context.Context, side string, fn tradeFunc) subcommands.ExitStatus {
	symbol := normalizeSymbol(t.symbol)
	if symbol == "" {
		fmt.Fprintln(stderr, "-s is required")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	tr, err := fn(s.ledger, ctx, symbol, t.quantity)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprint(stdout, renderer.TradeMarkdown(side, tr, s.ledger.Portfolio().Cash(), s.cfg.Currency))
	return subcommands.ExitSuccess
}

type buyCmd struct{ tradeFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a watchlist symbol at the current price" }
func (*buyCmd) Usage() string {
	return `pfm buy -s <symbol> -q <quantity>

  Buys quantity units of symbol at its current price, paid from the cash balance.
`
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.trade(ctx, "Bought", (*folio.Ledger).Buy)
}

type sellCmd struct{ tradeFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a held symbol at the current price" }
func (*sellCmd) Usage() string {
	return `pfm sell -s <symbol> -q <quantity>

  Sells quantity units of a held symbol at its current price.
`
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.trade(ctx, "Sold", (*folio.Ledger).Sell)
}

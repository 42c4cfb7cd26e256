package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type watchlistCmd struct {
	quotes bool
}

func (*watchlistCmd) Name() string     { return "watchlist" }
func (*watchlistCmd) Synopsis() string { return "list the tradeable symbols" }
func (*watchlistCmd) Usage() string {
	return `pfm watchlist [-quotes=false]

  Lists the symbols that can be traded, with their current price.
`
}

func (c *watchlistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quotes, "quotes", true, "fetch the current price of each symbol")
}

func (c *watchlistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	var quotes map[string]folio.Money
	if c.quotes {
		quotes = s.quotes(ctx)
	}
	printMarkdown(renderer.WatchlistMarkdown(s.ledger.Watchlist(), quotes, s.cfg.Currency))
	return subcommands.ExitSuccess
}

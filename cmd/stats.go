package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display the portfolio value and profit or loss" }
func (*statsCmd) Usage() string {
	return `pfm stats

  Values every position at its current price. Positions without a price are
  valued at their average price and marked.
`
}

func (*statsCmd) SetFlags(f *flag.FlagSet) {}

func (*statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	printMarkdown(renderer.StatsMarkdown(s.stats(ctx), s.cfg.Currency))
	return subcommands.ExitSuccess
}

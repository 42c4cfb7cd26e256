package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	markdown bool
	tail     int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "export the operation history" }
func (*historyCmd) Usage() string {
	return `pfm history [-md] [-tail <n>]

  Writes the operation history as CSV (Date,Action,Cash) on the standard output,
  or as a markdown table with -md.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.markdown, "md", false, "display a markdown table instead of CSV")
	f.IntVar(&c.tail, "tail", 0, "with -md, show only the last N operations")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tail < 0 {
		fmt.Fprintln(stderr, "-tail must not be negative")
		return subcommands.ExitUsageError
	}
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	p := s.ledger.Portfolio()
	if c.markdown {
		printMarkdown(renderer.HistoryMarkdown(p.History(), c.tail, s.cfg.Currency))
		return subcommands.ExitSuccess
	}
	if err := folio.ExportHistory(stdout, p); err != nil {
		fmt.Fprintf(stderr, "Error exporting history: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

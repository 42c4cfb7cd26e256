package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/chart"
	"github.com/google/subcommands"
)

type chartCmd struct {
	symbol string
	days   int
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the price chart of a symbol" }
func (*chartCmd) Usage() string {
	return `pfm chart -s <symbol> [-days <n>] [-o <file.png>]

  Draws the daily closes of the last n trading sessions as a PNG image,
  written to <SYMBOL>.png by default.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "symbol to chart")
	f.IntVar(&c.days, "days", 30, "number of trading sessions")
	f.StringVar(&c.output, "o", "", "output file, defaults to <SYMBOL>.png")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol := normalizeSymbol(c.symbol)
	if symbol == "" {
		fmt.Fprintln(stderr, "-s is required")
		return subcommands.ExitUsageError
	}
	if c.days <= 0 {
		fmt.Fprintln(stderr, "-days must be positive")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	path, err := s.drawChart(ctx, symbol, c.days, c.output)
	if err != nil {
		fmt.Fprintf(stderr, "Error drawing chart: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Chart written to %s\n", path)
	return subcommands.ExitSuccess
}

// drawChart writes the chart of symbol to output, or <symbol>.png, and returns the file written.
func (s *session) drawChart(ctx context.Context, symbol string, days int, output string) (string, error) {
	if output == "" {
		output = symbol + ".png"
	}
	closes, err := s.history.Closes(ctx, symbol, days)
	if err != nil {
		return "", err
	}
	f, err := os.Create(output)
	if err != nil {
		return "", err
	}
	title := fmt.Sprintf("%s - last %d sessions", symbol, len(closes))
	if name, ok := s.ledger.Watchlist().Name(symbol); ok && name != "" {
		title = fmt.Sprintf("%s (%s) - last %d sessions", name, symbol, len(closes))
	}
	if err := chart.Render(f, title, closes); err != nil {
		f.Close()
		os.Remove(output)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return output, nil
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
)

type cashCmd struct {
	amount string
}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "deposit or withdraw cash" }
func (*cashCmd) Usage() string {
	return `pfm cash -a <amount>

  Adds amount to the cash balance. A negative amount is a withdrawal.
`
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "amount to deposit, negative to withdraw")
}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		fmt.Fprintln(stderr, "-a is required")
		return subcommands.ExitUsageError
	}
	amount, err := strconv.ParseFloat(c.amount, 64)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	if err := s.ledger.UpdateCash(amount); err != nil {
		fmt.Fprintf(stderr, "Error updating cash: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Cash balance: %s\n", s.ledger.Portfolio().Cash().Display(s.cfg.Currency))
	return subcommands.ExitSuccess
}

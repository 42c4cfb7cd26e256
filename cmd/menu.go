package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type menuCmd struct{}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "manage the portfolio interactively" }
func (*menuCmd) Usage() string {
	return `pfm menu

  Starts the interactive portfolio manager. The portfolio is saved after each
  change and on exit.
`
}

func (*menuCmd) SetFlags(f *flag.FlagSet) {}

func (*menuCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	m := &menu{in: bufio.NewScanner(stdin), out: stdout}

	fmt.Fprintln(m.out, "Load a portfolio or start from the default one?")
	fmt.Fprintln(m.out, "1. Load a portfolio file")
	fmt.Fprintln(m.out, "2. Use the default portfolio")
	if choice, _ := m.ask("\nChoose: "); choice == "1" {
		if name, _ := m.ask("File name: "); name != "" {
			cfg.PortfolioFile = name
		}
	}

	s, err := newSession(cfg, log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()
	m.session = s

	if err := m.run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// menu is the interactive loop over a session.
type menu struct {
	*session
	in  *bufio.Scanner
	out io.Writer
}

// ask prints prompt and reads a trimmed line. ok is false at end of input.
func (m *menu) ask(prompt string) (line string, ok bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// askFloat asks for a number.
func (m *menu) askFloat(prompt string) (float64, bool) {
	line, ok := m.ask(prompt)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid value.")
		return 0, false
	}
	return v, true
}

// saved saves the portfolio after a change, reporting failures without leaving the menu.
func (m *menu) saved() {
	if err := m.save(); err != nil {
		fmt.Fprintf(m.out, "Error saving portfolio: %v\n", err)
	}
}

func (m *menu) header() {
	currency := m.cfg.Currency
	fmt.Fprintln(m.out, "\n=================================")
	fmt.Fprintln(m.out, "   PORTFOLIO MANAGER")
	fmt.Fprintln(m.out, "=================================")
	fmt.Fprintf(m.out, "Balance: %s\n", m.ledger.Portfolio().Cash().Display(currency))

	fmt.Fprintln(m.out, "\n--- Tradeable symbols ---")
	w := m.ledger.Watchlist()
	for symbol := range w.Symbols() {
		name, _ := w.Name(symbol)
		fmt.Fprintf(m.out, " %-10s : %s\n", symbol, name)
	}

	fmt.Fprintln(m.out, "\n1. Deposit / withdraw cash")
	fmt.Fprintln(m.out, "2. Buy")
	fmt.Fprintln(m.out, "3. Sell")
	fmt.Fprintln(m.out, "4. Portfolio statistics")
	fmt.Fprintln(m.out, "5. Export history")
	fmt.Fprintln(m.out, "6. Show chart")
	fmt.Fprintln(m.out, "7. Exit")
}

// run loops until the user exits or the input ends, then saves the portfolio.
func (m *menu) run(ctx context.Context) error {
	for {
		m.header()
		choice, ok := m.ask("\nChoose: ")
		if !ok {
			break
		}
		switch choice {
		case "1":
			m.cash()
		case "2":
			m.trade(ctx, "Bought", (*folio.Ledger).Buy)
		case "3":
			m.trade(ctx, "Sold", (*folio.Ledger).Sell)
		case "4":
			fmt.Fprint(m.out, renderMarkdown(renderer.StatsMarkdown(m.stats(ctx), m.cfg.Currency)))
		case "5":
			fmt.Fprintln(m.out, "\n--- History Export ---")
			if err := folio.ExportHistory(m.out, m.ledger.Portfolio()); err != nil {
				fmt.Fprintf(m.out, "Error: %v\n", err)
			}
		case "6":
			m.chart(ctx)
		case "7":
			fmt.Fprintln(m.out, "Saving and exiting...")
			return m.save()
		default:
			fmt.Fprintln(m.out, "Invalid choice.")
		}
	}
	return m.save()
}

func (m *menu) cash() {
	amount, ok := m.askFloat("Amount (positive to deposit, negative to withdraw): ")
	if !ok {
		return
	}
	if err := m.ledger.UpdateCash(amount); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	m.saved()
	fmt.Fprintln(m.out, "Cash updated.")
}

func (m *menu) trade(ctx context.Context, side string, fn tradeFunc) {
	line, ok := m.ask("Symbol: ")
	if !ok {
		return
	}
	symbol := normalizeSymbol(line)
	q, ok := m.askFloat("Quantity: ")
	if !ok {
		return
	}
	tr, err := fn(m.ledger, ctx, symbol, q)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	m.saved()
	fmt.Fprint(m.out, renderer.TradeMarkdown(side, tr, m.ledger.Portfolio().Cash(), m.cfg.Currency))
}

func (m *menu) chart(ctx context.Context) {
	line, ok := m.ask("Symbol: ")
	if !ok {
		return
	}
	answer, ok := m.ask("Number of days: ")
	if !ok {
		return
	}
	days, err := strconv.Atoi(answer)
	if err != nil || days <= 0 {
		fmt.Fprintln(m.out, "Invalid value.")
		return
	}
	path, err := m.drawChart(ctx, normalizeSymbol(line), days, "")
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Chart written to %s\n", path)
}

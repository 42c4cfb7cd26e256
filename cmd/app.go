// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/etnz/folio/logger"
	"github.com/etnz/folio/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// commands lists the subcommands with their help group.
func commands() []struct {
	group string
	cmd   subcommands.Command
} {
	return []struct {
		group string
		cmd   subcommands.Command
	}{
		{"portfolio", &cashCmd{}},
		{"portfolio", &buyCmd{}},
		{"portfolio", &sellCmd{}},
		{"reports", &statsCmd{}},
		{"reports", &historyCmd{}},
		{"reports", &watchlistCmd{}},
		{"reports", &chartCmd{}},
		{"", &menuCmd{}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands() {
		c.Register(e.cmd, e.group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", defaultConfigFile(), "Path to the configuration file (TOML), FOLIO_CONFIG overrides the default")
var portfolioFile = flag.String("portfolio", "", "Path to the portfolio file, .db for SQLite. Overrides the configuration")

func defaultConfigFile() string {
	if p := os.Getenv("FOLIO_CONFIG"); p != "" {
		return p
	}
	return "folio.toml"
}

// command output, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// renderMarkdown formats markdown for the terminal.
var renderMarkdown = func(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) { fmt.Fprint(stdout, renderMarkdown(md)) }

// closesSource gives daily close history for charts.
type closesSource interface {
	Closes(ctx context.Context, symbol string, days int) ([]float64, error)
}

// session is the state shared by a command invocation: the configuration, the
// store and the ledger operating on the loaded portfolio.
type session struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   folio.Store
	oracle  folio.PriceOracle
	history closesSource
	ledger  *folio.Ledger
}

// loadConfig reads the configuration file and applies the -portfolio flag.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if *portfolioFile != "" {
		cfg.PortfolioFile = *portfolioFile
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	return cfg, log, nil
}

// openSession loads the configuration and the portfolio.
func openSession() (*session, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newSession(cfg, log)
}

// newOracle returns the price oracle selected by the configuration.
func newOracle(cfg *config.Config, log zerolog.Logger) folio.PriceOracle {
	switch cfg.Oracle {
	case config.OracleEODHD:
		return folio.NewEODHD(cfg.EODHDAPIKey, cfg.CacheDir, log)
	case config.OracleStatic:
		return folio.PriceMap(cfg.Prices)
	default:
		return yahoo.New(log)
	}
}

// newSession opens the store for cfg.PortfolioFile and loads the portfolio.
func newSession(cfg *config.Config, log zerolog.Logger) (*session, error) {
	store, err := folio.OpenStore(cfg.PortfolioFile, log)
	if err != nil {
		return nil, err
	}
	s := &session{
		cfg:     cfg,
		log:     log,
		store:   store,
		oracle:  newOracle(cfg, log),
		history: yahoo.New(log),
	}
	s.ledger, err = folio.NewLedger(store.Load(), cfg.TradeableWatchlist(), s.oracle, folio.WithLogger(log))
	if err != nil {
		s.close()
		return nil, fmt.Errorf("cannot open portfolio %q: %w", cfg.PortfolioFile, err)
	}
	return s, nil
}

// save persists the portfolio.
func (s *session) save() error { return s.store.Save(s.ledger.Portfolio()) }

// close releases the store.
func (s *session) close() {
	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			s.log.Warn().Err(err).Msg("cannot close store")
		}
	}
}

// stats values the portfolio.
func (s *session) stats(ctx context.Context) folio.Stats {
	v := folio.NewValuation(s.ledger.Watchlist(), s.oracle, s.log)
	return v.ComputeStats(ctx, s.ledger.Portfolio())
}

// quotes fetches the price of every watchlist symbol, unavailable ones are skipped.
func (s *session) quotes(ctx context.Context) map[string]folio.Money {
	quotes := make(map[string]folio.Money)
	for symbol := range s.ledger.Watchlist().Symbols() {
		if price, ok := s.oracle.Price(ctx, symbol); ok {
			quotes[symbol] = price
		}
	}
	return quotes
}

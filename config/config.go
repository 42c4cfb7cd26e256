// Package config loads the pfm configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/etnz/folio"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Oracle names.
const (
	OracleYahoo  = "yahoo"
	OracleEODHD  = "eodhd"
	OracleStatic = "static"
)

// Config holds all configuration for pfm.
type Config struct {
	PortfolioFile string             `toml:"portfolio_file"` // .db, .sqlite or .sqlite3 selects the SQLite store
	Currency      string             `toml:"currency"`       // display currency, no conversion is ever made
	Oracle        string             `toml:"oracle"`         // yahoo, eodhd or static
	EODHDAPIKey   string             `toml:"eodhd_api_key"`
	CacheDir      string             `toml:"cache_dir"` // daily http cache, system temp dir when empty
	LogLevel      string             `toml:"log_level"`
	LogPretty     bool               `toml:"log_pretty"`
	Watchlist     map[string]string  `toml:"watchlist"` // symbol to display name
	Prices        map[string]float64 `toml:"prices"`    // symbol to price, for the static oracle
}

// NewDefaultConfig returns a Config with the defaults.
func NewDefaultConfig() *Config {
	return &Config{
		PortfolioFile: "portfolio.json",
		Currency:      "USD",
		Oracle:        OracleYahoo,
		LogLevel:      "warn",
	}
}

// Load loads configuration from path with environment overrides.
//
// A .env file in the working directory is loaded first if present. A missing
// config file is not an error, defaults are used.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := NewDefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	cfg.Oracle = strings.ToLower(strings.TrimSpace(cfg.Oracle))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FOLIO_PORTFOLIO"); v != "" {
		cfg.PortfolioFile = v
	}
	if v := os.Getenv("FOLIO_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("FOLIO_ORACLE"); v != "" {
		cfg.Oracle = v
	}
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		cfg.EODHDAPIKey = v
	}
	if v := os.Getenv("FOLIO_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("FOLIO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Currency == "" {
		return errors.New("currency is required")
	}
	if c.Watchlist != nil && folio.NewWatchlist(c.Watchlist).Len() == 0 {
		return errors.New("watchlist is empty")
	}
	switch c.Oracle {
	case OracleYahoo:
	case OracleEODHD:
		if c.EODHDAPIKey == "" {
			return errors.New("eodhd oracle requires eodhd_api_key or EODHD_API_KEY")
		}
	case OracleStatic:
		for symbol, price := range c.Prices {
			if !(price > 0) || math.IsInf(price, 1) {
				return fmt.Errorf("invalid static price %v for %s", price, symbol)
			}
		}
	default:
		return fmt.Errorf("unknown oracle %q, want %s, %s or %s", c.Oracle, OracleYahoo, OracleEODHD, OracleStatic)
	}
	return nil
}

// TradeableWatchlist returns the configured watchlist, or the default one.
func (c *Config) TradeableWatchlist() folio.Watchlist {
	if c.Watchlist == nil {
		return folio.DefaultWatchlist()
	}
	return folio.NewWatchlist(c.Watchlist)
}

// Package folio is a single-user, local portfolio ledger. It tracks cash,
// holdings and the history of operations for a fixed watchlist of tradeable
// instruments, executes buys and sells at live market prices and reports the
// portfolio value and its unrealized profit or loss.
//
// The main parts are:
//   - Watchlist: the immutable set of tradeable symbols, the only admission
//     gate for trading.
//   - Ledger: applies cash updates, buys and sells to a Portfolio. Each
//     operation succeeds and appends exactly one history entry, or fails and
//     leaves the portfolio unchanged.
//   - Valuation: marks a Portfolio to market. A position without a live price
//     is valued at its average price and flagged as stale.
//   - PriceOracle: gives the latest close of a symbol. PriceMap and EODHD are
//     provided here, the yahoo package provides a Yahoo Finance one.
//   - Store: loads and saves a Portfolio as a JSON snapshot or in SQLite.
//
// This package serves as the foundational logic for the `pfm` command-line
// tool.
package folio

package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS account (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	cash TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS positions (
	symbol    TEXT PRIMARY KEY,
	qty       TEXT NOT NULL,
	avg_price TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS history (
	seq           INTEGER PRIMARY KEY,
	date          TEXT NOT NULL,
	action        TEXT NOT NULL,
	cash_snapshot TEXT NOT NULL
);`

// SQLiteStore keeps the portfolio in a SQLite database, with the same three
// parts as the JSON snapshot: the account cash, the positions and the history.
// Decimals are stored as TEXT to be kept exact.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// OpenSQLiteStore opens (or creates) the database at path.
func OpenSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: cannot create database directory: %v", ErrIO, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open database %q: %v", ErrIO, path, err)
	}
	// a single connection: the store is used by one session at a time.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: cannot create schema in %q: %v", ErrIO, path, err)
	}
	return &SQLiteStore{db: db, path: path, log: log}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load reads the portfolio. An empty database, or any read error, yields an
// empty portfolio.
func (s *SQLiteStore) Load() *Portfolio {
	p, err := s.load()
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("cannot load portfolio, starting empty")
		return NewPortfolio()
	}
	return p
}

func (s *SQLiteStore) load() (*Portfolio, error) {
	p := NewPortfolio()

	var cash string
	err := s.db.QueryRow(`SELECT cash FROM account WHERE id = 1`).Scan(&cash)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil // never saved
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read cash: %w", err)
	}
	if p.cash.value, err = decimal.NewFromString(cash); err != nil {
		return nil, fmt.Errorf("invalid cash %q: %w", cash, err)
	}

	rows, err := s.db.Query(`SELECT symbol, qty, avg_price FROM positions`)
	if err != nil {
		return nil, fmt.Errorf("cannot read positions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var symbol, qty, avg string
		if err := rows.Scan(&symbol, &qty, &avg); err != nil {
			return nil, fmt.Errorf("cannot read position: %w", err)
		}
		var pos Position
		if pos.Quantity.value, err = decimal.NewFromString(qty); err != nil || !pos.Quantity.IsPositive() {
			return nil, fmt.Errorf("invalid quantity %q for %q", qty, symbol)
		}
		if pos.AveragePrice.value, err = decimal.NewFromString(avg); err != nil || pos.AveragePrice.IsNegative() {
			return nil, fmt.Errorf("invalid average price %q for %q", avg, symbol)
		}
		p.positions[symbol] = pos
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read positions: %w", err)
	}

	hrows, err := s.db.Query(`SELECT date, action, cash_snapshot FROM history ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("cannot read history: %w", err)
	}
	defer hrows.Close()
	for hrows.Next() {
		var day, action, snapshot string
		if err := hrows.Scan(&day, &action, &snapshot); err != nil {
			return nil, fmt.Errorf("cannot read history entry: %w", err)
		}
		e := HistoryEntry{Action: action}
		if e.Date, err = parseHistoryDate(day); err != nil {
			return nil, fmt.Errorf("invalid history date %q: %w", day, err)
		}
		if e.Cash.value, err = decimal.NewFromString(snapshot); err != nil {
			return nil, fmt.Errorf("invalid cash snapshot %q: %w", snapshot, err)
		}
		p.history = append(p.history, e)
	}
	if err := hrows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read history: %w", err)
	}
	return p, nil
}

// Save replaces the stored portfolio with p in a single transaction.
func (s *SQLiteStore) Save(p *Portfolio) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: cannot save portfolio in %q: %v", ErrIO, s.path, err)
	}
	if err := s.save(tx, p); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: cannot save portfolio in %q: %v", ErrIO, s.path, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: cannot save portfolio in %q: %v", ErrIO, s.path, err)
	}
	s.log.Debug().Str("path", s.path).Msg("portfolio saved")
	return nil
}

func (s *SQLiteStore) save(tx *sql.Tx, p *Portfolio) error {
	for _, stmt := range []string{`DELETE FROM account`, `DELETE FROM positions`, `DELETE FROM history`} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO account (id, cash) VALUES (1, ?)`, p.cash.value.String()); err != nil {
		return err
	}
	for symbol, pos := range p.Positions() {
		if _, err := tx.Exec(`INSERT INTO positions (symbol, qty, avg_price) VALUES (?, ?, ?)`,
			symbol, pos.Quantity.value.String(), pos.AveragePrice.value.String()); err != nil {
			return err
		}
	}
	for i, e := range p.history {
		if _, err := tx.Exec(`INSERT INTO history (seq, date, action, cash_snapshot) VALUES (?, ?, ?, ?)`,
			i, formatHistoryDate(e.Date), e.Action, e.Cash.value.String()); err != nil {
			return err
		}
	}
	return nil
}

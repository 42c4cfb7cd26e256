package folio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// This file contains the snapshot and export formats.
//
// A snapshot is a single JSON object, human readable and stable:
//
//	{
//	  "cash": 670,
//	  "positions": {"AAPL": {"qty": 3, "avg_price": 110}},
//	  "history": [{"date": "2025-01-10 09:30:00", "action": "Deposit 1000.00", "cash_snapshot": 1000}]
//	}

// EncodePortfolio writes the snapshot of p into w.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cannot encode portfolio: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("cannot encode portfolio: %w", err)
	}
	buf.WriteByte('\n')
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: cannot write portfolio: %v", ErrIO, err)
	}
	return nil
}

// DecodePortfolio reads a snapshot from r.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	p := NewPortfolio()
	if err := json.NewDecoder(r).Decode(p); err != nil {
		return nil, fmt.Errorf("cannot decode portfolio: %w", err)
	}
	return p, nil
}

// ExportHistory writes the history of p as CSV: a "Date,Action,Cash" header
// then one record per entry, oldest first, dated in local time.
func ExportHistory(w io.Writer, p *Portfolio) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Action", "Cash"}); err != nil {
		return fmt.Errorf("%w: cannot export history: %v", ErrIO, err)
	}
	for _, e := range p.History() {
		record := []string{e.Date.Local().Format(localDateLayout), e.Action, e.Cash.value.String()}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: cannot export history: %v", ErrIO, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: cannot export history: %v", ErrIO, err)
	}
	return nil
}

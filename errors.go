package folio

import "errors"

// Failure kinds reported by the ledger and the stores. They are always
// wrapped with context, use errors.Is to test for them.
var (
	// ErrInvalidArgument reports malformed numeric input (non finite amount,
	// non positive quantity) or a malformed portfolio.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotTradeable reports a symbol outside the watchlist.
	ErrNotTradeable = errors.New("symbol not tradeable")
	// ErrPriceUnavailable reports that no price could be obtained to execute a trade.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrInsufficientFunds reports a buy costing more than the available cash.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientPosition reports a sell of more units than held.
	ErrInsufficientPosition = errors.New("insufficient position")
	// ErrIO reports a persistence or export failure.
	ErrIO = errors.New("i/o error")
)

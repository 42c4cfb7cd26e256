package folio

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
)

// This file contains a PriceOracle backed by the EODHD API (https://eodhd.com).

const eodhdBaseURL = "https://eodhd.com/api"

// EODHD is a PriceOracle returning the latest end of day close from eodhd.com.
// Responses are cached on disk for the day.
type EODHD struct {
	apiKey string
	base   string
	client *http.Client
	now    func() time.Time
	log    zerolog.Logger
}

// NewEODHD creates an EODHD oracle. cacheDir holds the daily response cache,
// the system temp dir is used when empty.
func NewEODHD(apiKey, cacheDir string, log zerolog.Logger) *EODHD {
	log = log.With().Str("oracle", "eodhd").Logger()
	return &EODHD{
		apiKey: apiKey,
		base:   eodhdBaseURL,
		client: daily(cacheDir, log),
		now:    time.Now,
		log:    log,
	}
}

// eodhdCode maps a watchlist symbol to an EODHD ticker: crypto pairs like
// BTC-USD live on the "CC" exchange, plain symbols are US listings, and
// symbols with an explicit exchange suffix are kept as is.
func eodhdCode(symbol string) string {
	switch {
	case strings.Contains(symbol, "."):
		return symbol
	case strings.HasSuffix(symbol, "-USD"):
		return symbol + ".CC"
	default:
		return symbol + ".US"
	}
}

// Price returns the close of the most recent session in the last week.
func (e *EODHD) Price(ctx context.Context, symbol string) (Money, bool) {
	if strings.TrimSpace(symbol) == "" {
		return Money{}, false
	}
	val, err := e.latestClose(ctx, eodhdCode(symbol))
	if err != nil {
		e.log.Warn().Err(err).Str("symbol", symbol).Msg("price unavailable")
		return Money{}, false
	}
	return M(val), true
}

func (e *EODHD) latestClose(ctx context.Context, code string) (float64, error) {
	// https://eodhd.com/api/eod/AAPL.US?fmt=json&from=2025-02-06
	// [
	//	{
	//		"date": "2025-02-13",
	//		"open": 236.91,
	//		"high": 242.34,
	//		"low": 235.57,
	//		"close": 241.53,
	//		"adjusted_close": 241.53,
	//		"volume": 53614100
	//	},
	from := e.now().AddDate(0, 0, -7).Format(time.DateOnly)
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s", e.base, url.PathEscape(code), url.QueryEscape(e.apiKey), from)

	var jobj any
	if err := jwget(ctx, e.client, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error retrieving %q: %w", code, err)
	}
	const path = "$[-1:].close"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", code, path, err)
	}
	// jsonpath returns a list for slices: keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return math.NaN(), fmt.Errorf("no session for %q in the last week", code)
		}
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok || math.IsNaN(val) || val <= 0 {
		return math.NaN(), fmt.Errorf("invalid close for %q: %v", code, jval)
	}
	return val, nil
}

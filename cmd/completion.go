package cmd

import (
	"flag"
	"io"

	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the pfm command.
//
// Symbols are predicted from the watchlist of the default configuration file
// (folio.toml or FOLIO_CONFIG), or the default watchlist.
func Completion() *complete.Command {
	symbols := predict.Set{}
	for s := range completionWatchlist().Symbols() {
		symbols = append(symbols, s)
	}
	files := map[string]complete.Predictor{
		"config":    predict.Files("*.toml"),
		"portfolio": predict.Or(predict.Files("*.json"), predict.Files("*.db"), predict.Files("*.sqlite")),
		"o":         predict.Files("*.png"),
	}

	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"config":    files["config"],
			"portfolio": files["portfolio"],
		},
	}
	for _, e := range commands() {
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		f := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		f.SetOutput(io.Discard)
		e.cmd.SetFlags(f)
		f.VisitAll(func(fl *flag.Flag) {
			switch {
			case fl.Name == "s":
				sub.Flags[fl.Name] = symbols
			case files[fl.Name] != nil:
				sub.Flags[fl.Name] = files[fl.Name]
			case isBool(fl):
				sub.Flags[fl.Name] = predict.Nothing
			default:
				sub.Flags[fl.Name] = predict.Something
			}
		})
		root.Sub[e.cmd.Name()] = sub
	}
	return root
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// completionWatchlist reads the watchlist without reporting errors: completion must stay silent.
func completionWatchlist() folio.Watchlist {
	cfg, err := config.Load(defaultConfigFile())
	if err != nil {
		return folio.DefaultWatchlist()
	}
	return cfg.TradeableWatchlist()
}

package cmd

import (
	"flag"

	"github.com/etnz/folio"
	"github.com/etnz/folio/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles shell completion requests for the commander, and exits
// when there is one. Install with COMP_INSTALL=1 folio.
func Complete(c *subcommands.Commander) {
	completion(c).Complete("folio")
}

// completion builds the completion tree of the registered commands.
func completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	c.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictFlag(f) })

	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictFlag(f) })
		switch cmd.Name() {
		case "audit":
			sub.Args = predictCurrencies
		case "topic":
			sub.Args = complete.PredictFunc(func(string) []string {
				topics, _ := docs.List()
				return topics
			})
		case "help":
			sub.Args = complete.PredictFunc(func(string) []string {
				var names []string
				c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) { names = append(names, cmd.Name()) })
				return names
			})
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

var (
	predictCurrencies = fromLedger((*folio.Ledger).Currencies)
	predictAccounts   = fromLedger((*folio.Ledger).Accounts)
)

// predictFlag returns the predictor of a flag value.
func predictFlag(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "c", "currency":
		return predictCurrencies
	case "account":
		return predictAccounts
	case "valuation":
		return predict.Set{folio.AtMarket.String(), folio.AtCost.String()}
	case "format":
		return predict.Set{"markdown", "json"}
	case "ledger-file":
		return predict.Files("*.jsonl")
	case "config":
		return predict.Files("*.toml")
	case "metrics-file":
		return predict.Files("*.prom")
	default:
		return predict.Something
	}
}

// fromLedger predicts values listed from the configured ledger.
func fromLedger(list func(*folio.Ledger) []string) complete.PredictFunc {
	return func(string) []string {
		cfg, err := settings()
		if err != nil {
			return nil
		}
		l, err := folio.LoadLedger(cfg.LedgerFile)
		if err != nil {
			return nil
		}
		return list(l)
	}
}

package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

// reportFlags are the flags shared by report commands.
type reportFlags struct {
	valuation string
	format    string
	query     string
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.valuation, "valuation", "", "Valuation of lots: market or cost. Defaults to the configuration.")
	f.StringVar(&r.format, "format", "markdown", "Output format: markdown or json.")
	f.StringVar(&r.query, "q", "", "JSONPath query selecting part of the json output. Implies -format json.")
}

// parse checks the flags and returns the valuation to use.
func (r *reportFlags) parse(cfg *Config) (folio.Valuation, error) {
	switch r.format {
	case "markdown", "json":
	default:
		return 0, fmt.Errorf("unknown format: %q", r.format)
	}
	if r.valuation == "" {
		return cfg.valuation()
	}
	return folio.ParseValuation(r.valuation)
}

// print writes the report as json, or as the markdown returned by render.
func (r *reportFlags) print(report any, render func() string) subcommands.ExitStatus {
	if r.format == "json" || r.query != "" {
		if err := printJSON(os.Stdout, report, r.query); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(render())
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	reportFlags
	currencies string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the holdings of asset accounts" }
func (*holdingsCmd) Usage() string {
	return `folio holdings [-c <currency>,...] [-valuation market|cost] [-format markdown|json] [-q <jsonpath>]

  Displays every leaf account under Assets with its units, market value,
  cost basis and unrealized gain in each target currency, and the totals.

  Target currencies default to the configuration, then to the operating
  currencies of the ledger.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.currencies, "c", "", "Comma separated target currencies.")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	v, err := c.parse(s.cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	targets := splitList(strings.ToUpper(c.currencies))
	if len(targets) == 0 {
		targets = s.cfg.Currencies
	}

	holdings, err := s.reporter.Holdings(v, targets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(holdings.Currencies) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no target currency, use -c or declare an operating_currency option.")
	}
	return c.print(holdings, func() string { return renderer.HoldingsMarkdown(holdings) })
}

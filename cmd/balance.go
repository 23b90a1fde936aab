package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// balanceCmd reports the balance sheet, or the trial balance.
type balanceCmd struct {
	reportFlags
	trial   bool
	convert string
}

func (c *balanceCmd) Name() string {
	if c.trial {
		return "trial"
	}
	return "balance"
}

func (c *balanceCmd) Synopsis() string {
	if c.trial {
		return "display the balance of every account"
	}
	return "display the balance sheet"
}

func (c *balanceCmd) Usage() string {
	return fmt.Sprintf(`folio %s [-c <currency>] [-valuation market|cost] [-format markdown|json] [-q <jsonpath>]

  %s.
  Each account includes its sub accounts. With -c, every lot is valued in
  that currency, lots that cannot be converted stay in their own currency.
  The report ends with the net position of the top level accounts.
`, c.Name(), strings.ToUpper(c.Synopsis()[:1])+c.Synopsis()[1:])
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.convert, "c", "", "Convert every lot to this currency.")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	roots, title := folio.BalanceSheetRoots, "Balance Sheet"
	if c.trial {
		roots, title = nil, "Trial Balance"
	}
	target := strings.ToUpper(c.convert)
	if target != "" {
		title = fmt.Sprintf("%s in %s (%s)", title, target, v)
	}

	balances, err := s.reporter.Balances(roots, target, v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing %s: %v\n", strings.ToLower(title), err)
		return subcommands.ExitFailure
	}

	report := struct {
		Accounts folio.Balances       `json:"accounts"`
		Net      map[string]folio.Net `json:"net"`
	}{balances, balances.NetPosition()}
	return c.print(report, func() string { return renderer.BalancesMarkdown(title, balances) })
}

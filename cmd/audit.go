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

type auditCmd struct {
	limit  int
	all    bool
	format string
}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "list the postings in a currency" }
func (*auditCmd) Usage() string {
	return `folio audit [-n <count>] [-all] [-format markdown|json] <currency>

  Lists, newest first, the postings in a currency with their price or cost
  basis.
`
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of most recent transactions to list.")
	f.BoolVar(&c.all, "all", false, "List every transaction.")
	f.StringVar(&c.format, "format", "markdown", "Output format: markdown or json.")
}

func (c *auditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: audit requires exactly one currency.")
		return subcommands.ExitUsageError
	}
	currency := strings.ToUpper(f.Arg(0))

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	limit := c.limit
	if c.all {
		limit = 0
	}
	lines := s.ledger.Audit(currency, limit)
	if c.format == "json" {
		if err := printJSON(os.Stdout, lines, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	limited := limit > 0 && len(s.ledger.Audit(currency, 0)) > len(lines)
	printMarkdown(renderer.AuditMarkdown(currency, lines, limited))
	return subcommands.ExitSuccess
}

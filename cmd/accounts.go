package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts of the ledger" }
func (*accountsCmd) Usage() string {
	return `folio accounts

  Lists the opened accounts with their opening date and currencies.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (*accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AccountsMarkdown(s.ledger))
	return subcommands.ExitSuccess
}

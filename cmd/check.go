package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the ledger" }
func (*checkCmd) Usage() string {
	return `folio check

  Lists the problems of the ledger: unbalanced transactions, postings to
  accounts not open, undeclared currencies, invalid prices. Exits with a
  failure status when there is any.
`
}

func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (*checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	errs := s.ledger.Errors()
	if len(errs) == 0 {
		fmt.Fprintf(os.Stderr, "✅ %s\n", s.ledger)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ErrorsMarkdown(errs))
	return subcommands.ExitFailure
}

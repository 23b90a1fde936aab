// Command folio reports balances and holdings of a multi-currency ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/folio/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)
	cmd.Complete(commander)

	flag.Parse()
	os.Exit(int(cmd.Execute(context.Background(), commander)))
}

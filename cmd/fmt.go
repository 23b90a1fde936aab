package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	write bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `folio fmt [-w]

  Reads all directives, sorts them by date, fills in inferred units and
  writes them back in a canonical JSONL format. Comments are not kept.

Usage Examples:
# Prints the canonical ledger.
$ folio fmt

# Rewrites the ledger file.
$ folio fmt -w
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.write, "w", false, "Write the result to the ledger file instead of stdout.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if n := len(s.ledger.Errors()); n > 0 {
		fmt.Fprintf(os.Stderr, "Warning: the ledger has %d errors, see 'folio check'.\n", n)
	}

	if !p.write {
		if err := folio.EncodeLedger(os.Stdout, s.ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := saveLedger(s.cfg.LedgerFile, s.ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted ledger %q: %v\n", s.cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ Successfully formatted %s.\n", s.cfg.LedgerFile)
	return subcommands.ExitSuccess
}

// saveLedger writes the ledger to a temporary file next to path, then
// renames it over path.
func saveLedger(path string, l *folio.Ledger) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".folio-*.jsonl")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := folio.EncodeLedger(tmp, l); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	account  string
	payee    string
	tag      string
	currency string
	head     int
	tail     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `folio tx [-account <regex>] [-payee <regex>] [-tag <tag>] [-currency <currency>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with options for filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.account, "account", "", "Regular expression matching some posting account.")
	f.StringVar(&p.payee, "payee", "", "Regular expression matching the payee.")
	f.StringVar(&p.tag, "tag", "", "Only tagged transactions.")
	f.StringVar(&p.currency, "currency", "", "Only transactions with a posting in this currency.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

// filter builds the transaction filter from the flags.
func (p *txCmd) filter() (folio.Filter, error) {
	filter := folio.Filter{Tag: p.tag, Currency: strings.ToUpper(p.currency)}
	var err error
	if p.account != "" {
		if filter.Account, err = regexp.Compile(p.account); err != nil {
			return filter, fmt.Errorf("invalid -account: %w", err)
		}
	}
	if p.payee != "" {
		if filter.Payee, err = regexp.Compile(p.payee); err != nil {
			return filter, fmt.Errorf("invalid -payee: %w", err)
		}
	}
	return filter, nil
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	filter, err := p.filter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	transactions := s.ledger.Find(filter)
	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))
	return subcommands.ExitSuccess
}

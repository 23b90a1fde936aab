package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `folio topic [<topic>...]

  Shows the documentation of the given topics. Without topic, shows the list
  of topics, '*' shows them all.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}
	doc, err := docs.Topics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nAvailable topics: %v\n", err, topicList())
		return subcommands.ExitUsageError
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

func topicList() []string {
	topics, _ := docs.List()
	return topics
}

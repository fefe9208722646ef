package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/clearfield/reporting/docs"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `arc topic <topic>

  Show documentation for a given topic. Without arguments, shows the table of
  contents.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}

	doc, err := docs.Topics(names...)
	if err != nil {
		return errorf("reading doc: %v", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

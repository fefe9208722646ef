package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/clearfield/reporting/agent"
)

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	data dataFlags
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `arc assist [question]

  Start an interactive session with the AI assistant. The assistant can
  compute account value, performance and holdings over the loaded data, and
  search for market context.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.data.SetFlags(f)
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	positions, transactions, err := c.data.load()
	if err != nil {
		return errorf("%v", err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return errorf("initializing Gemini's client: %v", err)
	}

	analyst := agent.NewAnalyst(&agent.Dataset{
		AccountID:    c.data.account,
		Positions:    positions,
		Transactions: transactions,
	})
	researcher := agent.NewResearcher()
	a := agent.New(os.Stdout, os.Stdin, analyst, researcher)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		return errorf("agent failed: %v", err)
	}
	return subcommands.ExitSuccess
}

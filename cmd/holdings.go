package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/clearfield/reporting"
	"github.com/clearfield/reporting/date"
	"github.com/clearfield/reporting/renderer"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	data   dataFlags
	date   string
	format string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the holdings snapshot on a date" }
func (*holdingsCmd) Usage() string {
	return `arc holdings -account <id> [-date <date>] [-format md|csv|json]

  Reconstructs what the account holds on the given date, with cost basis,
  unrealized profit and allocations. Defaults to today.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	c.data.SetFlags(f)
	f.StringVar(&c.date, "date", "", "Snapshot date (defaults to today)")
	f.StringVar(&c.format, "format", "md", "Output format: md, csv or json")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf := date.Today()
	if c.date != "" {
		var err error
		if asOf, err = date.Parse(c.date); err != nil {
			return errorf("invalid -date: %v", err)
		}
	}
	positions, transactions, err := c.data.load()
	if err != nil {
		return errorf("%v", err)
	}

	report, err := reporting.NewHoldingsReport(c.data.account, asOf, positions, transactions)
	if err != nil {
		return errorf("%v", err)
	}

	switch c.format {
	case "md":
		printMarkdown(renderer.HoldingsMarkdown(report))
	case "csv":
		if err := renderer.HoldingsCSV(os.Stdout, report); err != nil {
			return errorf("%v", err)
		}
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errorf("%v", err)
		}
	default:
		return errorf("unknown format %q", c.format)
	}
	return subcommands.ExitSuccess
}

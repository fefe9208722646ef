package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/clearfield/reporting"
	"github.com/clearfield/reporting/date"
	"github.com/clearfield/reporting/renderer"
)

// aumCmd holds the flags for the 'aum' subcommand.
type aumCmd struct {
	data   dataFlags
	period rangeFlags
	format string
}

func (*aumCmd) Name() string     { return "aum" }
func (*aumCmd) Synopsis() string { return "display the daily account value over a period" }
func (*aumCmd) Usage() string {
	return `arc aum -account <id> [-from <date>] [-to <date>] [-format md|csv|json]

  Computes the daily value of the account over the period, with net external
  flows and daily returns. Days without an observation carry the last known
  value forward.
`
}

func (c *aumCmd) SetFlags(f *flag.FlagSet) {
	c.data.SetFlags(f)
	c.period.SetFlags(f)
	f.StringVar(&c.format, "format", "md", "Output format: md, csv or json")
}

func (c *aumCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := c.period.parse()
	if err != nil {
		return errorf("%v", err)
	}
	positions, transactions, err := c.data.load()
	if err != nil {
		return errorf("%v", err)
	}

	report, err := reporting.NewValuationReport(c.data.account, rng, positions, transactions)
	if err != nil {
		return errorf("%v", err)
	}

	switch c.format {
	case "md":
		printMarkdown(renderer.ValuationMarkdown(report))
	case "csv":
		if err := renderer.ValuationCSV(os.Stdout, report); err != nil {
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

// rangeFlags are the period flags shared by the aum and perf commands. The
// period defaults to the last 30 days.
type rangeFlags struct {
	from string
	to   string
}

func (r *rangeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.from, "from", "", "First day of the period (defaults to 29 days before -to)")
	f.StringVar(&r.to, "to", "", "Last day of the period (defaults to today)")
}

func (r *rangeFlags) parse() (date.Range, error) {
	to := date.Today()
	if r.to != "" {
		var err error
		if to, err = date.Parse(r.to); err != nil {
			return date.Range{}, fmt.Errorf("invalid -to date: %w", err)
		}
	}
	from := to.Add(-29)
	if r.from != "" {
		var err error
		if from, err = date.Parse(r.from); err != nil {
			return date.Range{}, fmt.Errorf("invalid -from date: %w", err)
		}
	}
	return date.NewRange(from, to)
}

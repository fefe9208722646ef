package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/clearfield/reporting"
	"github.com/clearfield/reporting/renderer"
)

// perfCmd holds the flags for the 'perf' subcommand.
type perfCmd struct {
	data         dataFlags
	period       rangeFlags
	riskFreeRate float64
	format       string
}

func (*perfCmd) Name() string     { return "perf" }
func (*perfCmd) Synopsis() string { return "display the time-weighted performance over a period" }
func (*perfCmd) Usage() string {
	return `arc perf -account <id> [-from <date>] [-to <date>] [-risk-free-rate <rate>] [-format md|csv|json]

  Computes the time-weighted return of the account over the period, with
  annualized return, volatility and Sharpe ratio. Daily returns are adjusted
  for external flows so deposits and withdrawals do not distort performance.
`
}

func (c *perfCmd) SetFlags(f *flag.FlagSet) {
	c.data.SetFlags(f)
	c.period.SetFlags(f)
	f.Float64Var(&c.riskFreeRate, "risk-free-rate", 0, "Annual risk-free rate for the Sharpe ratio (0.02 means 2%)")
	f.StringVar(&c.format, "format", "md", "Output format: md, csv or json")
}

func (c *perfCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := c.period.parse()
	if err != nil {
		return errorf("%v", err)
	}
	positions, transactions, err := c.data.load()
	if err != nil {
		return errorf("%v", err)
	}

	report, err := reporting.NewPerformanceFromRecords(c.data.account, rng, positions, transactions,
		reporting.WithRiskFreeRate(c.riskFreeRate))
	if err != nil {
		return errorf("%v", err)
	}

	switch c.format {
	case "md":
		printMarkdown(renderer.PerformanceMarkdown(report))
	case "csv":
		if err := renderer.PerformanceCSV(os.Stdout, report); err != nil {
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

package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/clearfield/reporting"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	mappingFile string
	account     string
	kind        string
	output      string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "convert a third-party export into the JSONL format" }
func (*importCmd) Usage() string {
	return `arc import -mapping <file> -account <id> [-kind positions|transactions] [-o <file>] <export.json>

  Reads a provider's JSON export and converts it using the jsonpath mapping
  file. The result is written as JSONL, appendable to the data files.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mappingFile, "mapping", "", "Path to the jsonpath mapping file")
	f.StringVar(&c.account, "account", os.Getenv(EnvAccount), "Account the imported records belong to")
	f.StringVar(&c.kind, "kind", "positions", "Kind of records to import: positions or transactions")
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return errorf("expected exactly one export file, got %d", f.NArg())
	}
	if c.mappingFile == "" {
		return errorf("-mapping is required")
	}

	mapping, err := loadMapping(c.mappingFile)
	if err != nil {
		return errorf("%v", err)
	}

	export, err := os.Open(f.Arg(0))
	if err != nil {
		return errorf("could not open export file: %v", err)
	}
	defer export.Close()

	out := os.Stdout
	if c.output != "" {
		out, err = os.OpenFile(c.output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return errorf("could not open output file: %v", err)
		}
		defer out.Close()
	}

	switch c.kind {
	case "positions":
		positions, err := reporting.ImportPositions(export, c.account, mapping)
		if err != nil {
			return errorf("%v", err)
		}
		if err := reporting.EncodePositions(out, positions); err != nil {
			return errorf("%v", err)
		}
		fmt.Fprintf(os.Stderr, "imported %d positions\n", len(positions))
	case "transactions":
		transactions, err := reporting.ImportTransactions(export, c.account, mapping)
		if err != nil {
			return errorf("%v", err)
		}
		if err := reporting.EncodeTransactions(out, transactions); err != nil {
			return errorf("%v", err)
		}
		fmt.Fprintf(os.Stderr, "imported %d transactions\n", len(transactions))
	default:
		return errorf("unknown kind %q", c.kind)
	}
	return subcommands.ExitSuccess
}

func loadMapping(path string) (reporting.ImportMapping, error) {
	var mapping reporting.ImportMapping
	b, err := os.ReadFile(path)
	if err != nil {
		return mapping, fmt.Errorf("could not read mapping file %q: %w", path, err)
	}
	if err := json.Unmarshal(b, &mapping); err != nil {
		return mapping, fmt.Errorf("could not parse mapping file %q: %w", path, err)
	}
	return mapping, nil
}

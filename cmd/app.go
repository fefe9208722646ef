// Package cmd implements the CLI application to value accounts and report on
// their performance.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clearfield/reporting"
)

// Environment variables honored by the application. Flags take precedence.
const (
	EnvPositionsFile    = "ARC_POSITIONS_FILE"
	EnvTransactionsFile = "ARC_TRANSACTIONS_FILE"
	EnvAccount          = "ARC_ACCOUNT"
)

// Commands is the list a main package registers on its commander.
var Commands = []subcommands.Command{
	&aumCmd{},
	&perfCmd{},
	&holdingsCmd{},
	&validateCmd{},
	&importCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.
var Verbose = flag.Bool("v", false, "enable verbose logging")

// Setup loads the .env file if present and configures the logger. A main
// package calls it once after flag parsing.
func Setup() {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded environment from .env")
	}
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// dataFlags are the flags locating the account data, shared by the report
// commands.
type dataFlags struct {
	positionsFile    string
	transactionsFile string
	account          string
}

func (d *dataFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&d.positionsFile, "positions", envOr(EnvPositionsFile, "positions.jsonl"), "Path to the positions file (JSONL format)")
	f.StringVar(&d.transactionsFile, "transactions", envOr(EnvTransactionsFile, "transactions.jsonl"), "Path to the transactions file (JSONL format)")
	f.StringVar(&d.account, "account", os.Getenv(EnvAccount), "Account to report on")
}

// load reads the positions and transactions files. A missing transactions
// file is an empty transaction list, positions are required.
func (d *dataFlags) load() ([]reporting.Position, []reporting.Transaction, error) {
	positions, err := loadPositions(d.positionsFile)
	if err != nil {
		return nil, nil, err
	}
	transactions, err := loadTransactions(d.transactionsFile)
	if err != nil {
		return nil, nil, err
	}
	return positions, transactions, nil
}

func loadPositions(path string) ([]reporting.Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open positions file %q: %w", path, err)
	}
	defer f.Close()
	positions, err := reporting.DecodePositions(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode positions file %q: %w", path, err)
	}
	log.Debug().Int("count", len(positions)).Str("file", path).Msg("loaded positions")
	return positions, nil
}

func loadTransactions(path string) ([]reporting.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("file", path).Msg("no transactions file, assuming none")
			return nil, nil
		}
		return nil, fmt.Errorf("could not open transactions file %q: %w", path, err)
	}
	defer f.Close()
	transactions, err := reporting.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode transactions file %q: %w", path, err)
	}
	log.Debug().Int("count", len(transactions)).Str("file", path).Msg("loaded transactions")
	return transactions, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer is unavailable.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

func errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

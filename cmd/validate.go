package cmd

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"sync"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/clearfield/reporting"
	"github.com/clearfield/reporting/date"
)

// validateCmd holds the flags for the 'validate' subcommand.
type validateCmd struct {
	data dataFlags
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check the data files for anomalies" }
func (*validateCmd) Usage() string {
	return `arc validate [-positions <file>] [-transactions <file>]

  Decodes the data files and runs a full-history valuation for every account
  found in them, reporting every data anomaly: missing opening values,
  unordered transactions, negative balances, unreconstructable cost bases.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	c.data.SetFlags(f)
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	positions, transactions, err := c.data.load()
	if err != nil {
		return errorf("%v", err)
	}
	if len(positions) == 0 {
		return errorf("no positions to validate")
	}

	accounts := accountSpans(positions)
	names := make([]string, 0, len(accounts))
	for name := range accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	// One account's history is independent of another's, validate them
	// concurrently.
	var wg sync.WaitGroup
	warnings := make([]reporting.Warnings, len(names))
	errs := make([]error, len(names))
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			warnings[i], errs[i] = validateAccount(name, accounts[name], positions, transactions)
		}(i, name)
	}
	wg.Wait()

	anomalies := 0
	for i, name := range names {
		if errs[i] != nil {
			log.Error().Err(errs[i]).Str("account", name).Msg("validation failed")
			anomalies++
			continue
		}
		for _, w := range warnings[i] {
			log.Warn().Str("account", name).Str("code", w.Code).Msg(w.Message)
			anomalies++
		}
	}

	if anomalies > 0 {
		return errorf("%d anomalies found across %d accounts", anomalies, len(names))
	}
	fmt.Printf("%d accounts validated, no anomalies found\n", len(names))
	return subcommands.ExitSuccess
}

// accountSpans returns for each account the date range its positions cover.
func accountSpans(positions []reporting.Position) map[string]date.Range {
	spans := make(map[string]date.Range)
	for _, p := range positions {
		span, ok := spans[p.AccountID]
		if !ok {
			spans[p.AccountID] = date.Range{From: p.Date, To: p.Date}
			continue
		}
		if p.Date.Before(span.From) {
			span.From = p.Date
		}
		if p.Date.After(span.To) {
			span.To = p.Date
		}
		spans[p.AccountID] = span
	}
	return spans
}

func validateAccount(name string, span date.Range, positions []reporting.Position, transactions []reporting.Transaction) (reporting.Warnings, error) {
	var accPositions []reporting.Position
	for _, p := range positions {
		if p.AccountID == name {
			accPositions = append(accPositions, p)
		}
	}
	var accTransactions []reporting.Transaction
	for _, tx := range transactions {
		if tx.AccountID == name {
			accTransactions = append(accTransactions, tx)
		}
	}

	report, err := reporting.NewValuationReport(name, span, accPositions, accTransactions)
	if err != nil {
		return nil, err
	}
	warnings := report.Warnings

	holdings, err := reporting.NewHoldingsReport(name, span.To, accPositions, accTransactions)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, holdings.Warnings...)
	return warnings, nil
}

package reporting

import (
	"fmt"

	"github.com/clearfield/reporting/date"
)

// DailyValue is one day of an account's valuation series. The return fields
// are zero until the series is run through the return engine.
type DailyValue struct {
	Date             date.Date `json:"date"`
	BeginningValue   Money     `json:"beginningValue"`
	EndingValue      Money     `json:"endingValue"`
	NetFlows         Money     `json:"netFlows"`
	DailyReturn      Percent   `json:"dailyReturn"`
	CumulativeReturn Percent   `json:"cumulativeReturn"`
}

// MarketValueChange is the part of the day's value change not explained by
// external flows.
func (d DailyValue) MarketValueChange() Money {
	return d.EndingValue.Sub(d.BeginningValue).Sub(d.NetFlows)
}

// ValuationSummary condenses a valuation series over its full period.
type ValuationSummary struct {
	StartValue      Money `json:"startValue"`
	EndValue        Money `json:"endValue"`
	NetContribution Money `json:"netContribution"`
	TotalGrowth     Money `json:"totalGrowth"`
	// DataAvailable is false when the account had no position history at all.
	// The report still renders, with zeroed values.
	DataAvailable bool `json:"dataAvailable"`
}

// ValuationReport is the daily assets-under-management series of one account
// over a date range.
type ValuationReport struct {
	AccountID string           `json:"accountId"`
	Range     date.Range       `json:"range"`
	Summary   ValuationSummary `json:"summary"`
	Daily     []DailyValue     `json:"dailyValues"`
	Warnings  Warnings         `json:"warnings,omitempty"`
}

// NewValuationReport builds the daily market-value series for an account over
// a date range from position snapshots and cash-flow events.
//
// Positions and transactions must already be scoped to the account; dates may
// be sparse, the latest position at or before each day stands in for missing
// records. The first day's beginning value is the latest position value
// strictly before the range start, or zero with a warning when none exists.
func NewValuationReport(accountID string, rng date.Range, positions []Position, transactions []Transaction) (*ValuationReport, error) {
	if rng.From.After(rng.To) {
		return nil, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, rng.From, rng.To)
	}
	if err := validateScope(accountID, positions, transactions); err != nil {
		return nil, err
	}

	report := &ValuationReport{
		AccountID: accountID,
		Range:     rng,
		Daily:     make([]DailyValue, 0, rng.Days()),
	}

	if len(positions) == 0 {
		// No position history at all for this account. Downstream reports
		// must still render, so this is a flagged empty result, not an error.
		for on := range rng.All() {
			report.Daily = append(report.Daily, DailyValue{Date: on})
		}
		return report, nil
	}
	report.Summary.DataAvailable = true

	txs, reordered := sortedTransactions(transactions)
	if reordered {
		report.Warnings.addf(WarnUnorderedInput, "transactions for account %s were not in chronological order", accountID)
	}
	flows := netFlowsByDay(txs, rng)
	series := positionSeries(positions)

	opening := totalMarketValue(series, rng.From.Add(-1))
	if _, known := latestValueAsOf(series, rng.From.Add(-1)); !known {
		report.Warnings.addf(WarnNoOpeningValue, "no position at or before %s, beginning value assumed zero", rng.From)
	}

	beginning := opening
	for on := range rng.All() {
		dv := DailyValue{
			Date:           on,
			BeginningValue: beginning,
			EndingValue:    totalMarketValue(series, on),
		}
		if f, ok := flows[on]; ok {
			dv.NetFlows = f
		}
		if dv.EndingValue.IsNegative() && !report.Warnings.Has(WarnNegativeBalance) {
			report.Warnings.addf(WarnNegativeBalance, "account value is negative on %s", on)
		}
		report.Daily = append(report.Daily, dv)
		beginning = dv.EndingValue
	}

	s := &report.Summary
	s.StartValue = opening
	s.EndValue = report.Daily[len(report.Daily)-1].EndingValue
	for _, dv := range report.Daily {
		s.NetContribution = s.NetContribution.Add(dv.NetFlows)
	}
	s.TotalGrowth = s.EndValue.Sub(s.StartValue).Sub(s.NetContribution)
	return report, nil
}

// netFlowsByDay sums the external cash flows of each day in the range.
// Trades, dividends and fees are internal activity: their net effect is
// already visible in market value, counting them again would distort the
// flow-adjusted returns downstream.
func netFlowsByDay(transactions []Transaction, rng date.Range) map[date.Date]Money {
	flows := make(map[date.Date]Money)
	for _, tx := range transactions {
		if !tx.Type.IsExternalFlow() || !rng.Contains(tx.Date) {
			continue
		}
		flows[tx.Date] = flows[tx.Date].Add(tx.Amount)
	}
	return flows
}

// totalMarketValue sums, per security, the latest position value at or
// before 'on'.
func totalMarketValue(series map[string]*date.History[Position], on date.Date) Money {
	var total Money
	for _, h := range series {
		if p, ok := h.ValueAsOf(on); ok {
			total = total.Add(p.MarketValue)
		}
	}
	return total
}

// latestValueAsOf reports whether any security has a position record at or
// before 'on', and the most recent such date.
func latestValueAsOf(series map[string]*date.History[Position], on date.Date) (date.Date, bool) {
	var latest date.Date
	found := false
	for _, h := range series {
		if p, ok := h.ValueAsOf(on); ok {
			if !found || p.Date.After(latest) {
				latest = p.Date
			}
			found = true
		}
	}
	return latest, found
}

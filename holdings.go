package reporting

import (
	"fmt"
	"slices"
	"strings"

	"github.com/clearfield/reporting/date"
)

// Holding is one security's open position as of the report date.
type Holding struct {
	Security          string   `json:"security"`
	AssetClass        string   `json:"assetClass,omitempty"`
	Quantity          Quantity `json:"quantity,omitzero"`
	MarketValue       Money    `json:"marketValue"`
	CostBasis         Money    `json:"costBasis"`
	UnrealizedPnL     Money    `json:"unrealizedPnL"`
	AllocationPercent Percent  `json:"allocationPercent"`
}

// AssetClassBreakdown aggregates the holdings of one asset class.
type AssetClassBreakdown struct {
	AssetClass        string  `json:"assetClass"`
	Count             int     `json:"count"`
	MarketValue       Money   `json:"marketValue"`
	AllocationPercent Percent `json:"allocationPercent"`
}

// HoldingsReport is the set of open positions of an account as of a single
// date, with market values, unrealized P&L and allocation percentages.
type HoldingsReport struct {
	AccountID        string                `json:"accountId"`
	Date             date.Date             `json:"date"`
	Holdings         []Holding             `json:"holdings"`
	CashBalance      Money                 `json:"cashBalance"`
	TotalMarketValue Money                 `json:"totalMarketValue"`
	AssetClasses     []AssetClassBreakdown `json:"assetClasses"`
	Warnings         Warnings              `json:"warnings,omitempty"`
}

// unclassified groups holdings with no asset class in the breakdown.
const unclassified = "unclassified"

// NewHoldingsReport computes the open positions of an account as of a single
// date. For each security the latest position record at or before the date is
// selected; fully liquidated securities are excluded. The cost basis is
// reconstructed from the cumulative net buy/sell amounts (average-cost, no
// lot-level tracking), and allocation percentages are computed from the final
// total so that holdings plus cash always close to one.
func NewHoldingsReport(accountID string, asOf date.Date, positions []Position, transactions []Transaction) (*HoldingsReport, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: as-of date is not set", ErrInvalidRange)
	}
	if err := validateScope(accountID, positions, transactions); err != nil {
		return nil, err
	}

	report := &HoldingsReport{AccountID: accountID, Date: asOf}

	txs, reordered := sortedTransactions(transactions)
	if reordered {
		report.Warnings.addf(WarnUnorderedInput, "transactions for account %s were not in chronological order", accountID)
	}

	// Latest position per security on or before the report date.
	series := positionSeries(positions)
	for security, h := range series {
		p, ok := h.ValueAsOf(asOf)
		if !ok {
			continue // first record is after the report date
		}
		if p.Quantity.IsZero() && p.MarketValue.IsZero() {
			continue // fully liquidated
		}
		holding := Holding{
			Security:    security,
			AssetClass:  p.AssetClass,
			Quantity:    p.Quantity,
			MarketValue: p.MarketValue,
			CostBasis:   costBasis(security, txs, asOf),
		}
		if holding.CostBasis.IsNegative() {
			report.Warnings.addf(WarnZeroBasis, "security %s has a negative reconstructed cost basis, clamped to zero", security)
			holding.CostBasis = M(0, holding.CostBasis.Currency())
		}
		if holding.CostBasis.IsZero() && !holding.MarketValue.IsZero() {
			report.Warnings.addf(WarnZeroBasis, "security %s is held with no reconstructable cost basis", security)
		}
		holding.UnrealizedPnL = holding.MarketValue.Sub(holding.CostBasis)
		report.Holdings = append(report.Holdings, holding)
	}
	slices.SortFunc(report.Holdings, func(a, b Holding) int {
		return strings.Compare(a.Security, b.Security)
	})

	report.CashBalance = cashBalance(txs, asOf)

	report.TotalMarketValue = report.CashBalance
	for _, h := range report.Holdings {
		report.TotalMarketValue = report.TotalMarketValue.Add(h.MarketValue)
	}

	// Allocation percentages are computed only after all holdings are
	// gathered, from the one final total, so that their sum closes to 1.
	if !report.TotalMarketValue.IsZero() {
		for i := range report.Holdings {
			report.Holdings[i].AllocationPercent = Percent(report.Holdings[i].MarketValue.Ratio(report.TotalMarketValue))
		}
	}
	report.AssetClasses = assetClassBreakdown(report.Holdings, report.TotalMarketValue)
	return report, nil
}

// costBasis reconstructs the average-cost basis of a security from its
// cumulative buy and sell amounts up to the report date. Buy amounts are
// negative cash (money out), sell amounts positive, so the invested capital
// is the negated sum.
func costBasis(security string, transactions []Transaction, asOf date.Date) Money {
	var net Money
	for _, tx := range transactions {
		if tx.Date.After(asOf) {
			break // chronological, nothing later can apply
		}
		if tx.Security != security || !tx.Type.IsTrade() {
			continue
		}
		net = net.Add(tx.Amount)
	}
	return net.Neg()
}

// cashBalance reconstructs the account cash balance from every transaction up
// to the report date. All types move cash: deposits, dividends and sells
// credit it, withdrawals, fees and buys debit it.
func cashBalance(transactions []Transaction, asOf date.Date) Money {
	var balance Money
	for _, tx := range transactions {
		if tx.Date.After(asOf) {
			break
		}
		balance = balance.Add(tx.Amount)
	}
	return balance
}

// assetClassBreakdown groups holdings by asset class. Allocations are
// recomputed from the same total as the per-holding figures, never from
// already-rounded percentages.
func assetClassBreakdown(holdings []Holding, total Money) []AssetClassBreakdown {
	index := make(map[string]int)
	var breakdown []AssetClassBreakdown
	for _, h := range holdings {
		class := h.AssetClass
		if class == "" {
			class = unclassified
		}
		i, ok := index[class]
		if !ok {
			i = len(breakdown)
			index[class] = i
			breakdown = append(breakdown, AssetClassBreakdown{AssetClass: class})
		}
		breakdown[i].Count++
		breakdown[i].MarketValue = breakdown[i].MarketValue.Add(h.MarketValue)
	}
	if !total.IsZero() {
		for i := range breakdown {
			breakdown[i].AllocationPercent = Percent(breakdown[i].MarketValue.Ratio(total))
		}
	}
	slices.SortFunc(breakdown, func(a, b AssetClassBreakdown) int {
		return strings.Compare(a.AssetClass, b.AssetClass)
	})
	return breakdown
}

package reporting

import (
	"fmt"
	"slices"
	"strings"

	"github.com/clearfield/reporting/date"
)

// Position is a dated snapshot of a holding, produced by the ingestion
// pipeline and read-only to the engine.
type Position struct {
	AccountID   string    `json:"accountId"`
	Security    string    `json:"security"`
	Date        date.Date `json:"date"`
	MarketValue Money     `json:"marketValue"`
	Quantity    Quantity  `json:"quantity,omitzero"`
	AssetClass  string    `json:"assetClass,omitempty"`
}

// TransactionType classifies a cash-flow event.
type TransactionType string

const (
	Buy        TransactionType = "BUY"
	Sell       TransactionType = "SELL"
	Dividend   TransactionType = "DIVIDEND"
	Fee        TransactionType = "FEE"
	Interest   TransactionType = "INTEREST"
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
)

// ParseTransactionType parses a transaction type, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case Buy, Sell, Dividend, Fee, Interest, Deposit, Withdrawal, Transfer:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// IsExternalFlow reports whether the type moves money across the account
// boundary. Only these count as cash flows for time-weighted returns:
// trades, dividends and fees show up through market value and cost basis.
func (t TransactionType) IsExternalFlow() bool {
	switch t {
	case Deposit, Withdrawal, Transfer:
		return true
	default:
		return false
	}
}

// IsTrade reports whether the type is internal trading activity.
func (t TransactionType) IsTrade() bool { return t == Buy || t == Sell }

// Transaction is a cash-flow event. Amount is signed: positive is an inflow
// (contribution), negative an outflow (withdrawal or fee).
type Transaction struct {
	AccountID string          `json:"accountId"`
	Security  string          `json:"security,omitempty"`
	Date      date.Date       `json:"date"`
	Amount    Money           `json:"amount"`
	Type      TransactionType `json:"type"`
}

// validateScope checks the caller's side of the contract: records supplied to
// a calculation must all belong to the requested account. A mismatch is a
// caller bug and rejects the whole call.
func validateScope(accountID string, positions []Position, transactions []Transaction) error {
	for _, p := range positions {
		if p.AccountID != "" && p.AccountID != accountID {
			return fmt.Errorf("%w: position for %q supplied to a calculation for %q", ErrAccountMismatch, p.AccountID, accountID)
		}
	}
	for _, tx := range transactions {
		if tx.AccountID != "" && tx.AccountID != accountID {
			return fmt.Errorf("%w: transaction for %q supplied to a calculation for %q", ErrAccountMismatch, tx.AccountID, accountID)
		}
	}
	return nil
}

// sortedTransactions returns the transactions in chronological order, leaving
// the caller's slice untouched. When reordering was needed the fact is
// reported so it can be surfaced as a data-quality warning.
func sortedTransactions(transactions []Transaction) (sorted []Transaction, reordered bool) {
	sorted = slices.Clone(transactions)
	chronological := slices.IsSortedFunc(sorted, func(a, b Transaction) int {
		return a.Date.Sub(b.Date)
	})
	if !chronological {
		slices.SortStableFunc(sorted, func(a, b Transaction) int {
			return a.Date.Sub(b.Date)
		})
	}
	return sorted, !chronological
}

// positionSeries indexes positions per security into a forward-fillable
// market value history.
func positionSeries(positions []Position) map[string]*date.History[Position] {
	series := make(map[string]*date.History[Position])
	for _, p := range positions {
		h, ok := series[p.Security]
		if !ok {
			h = &date.History[Position]{}
			series[p.Security] = h
		}
		h.Append(p.Date, p)
	}
	return series
}

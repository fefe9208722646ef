package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/clearfield/reporting/date"
)

// This file converts third-party JSON exports (custodian feeds, broker
// downloads) into the engine's model. Every provider shapes its export
// differently, so the field locations are declared as jsonpath expressions
// instead of hardcoding one provider's schema.

// ImportMapping declares where each field lives in a provider's JSON export.
// Rows selects the array of records; the remaining paths are evaluated
// against each record.
type ImportMapping struct {
	Rows       string `json:"rows"`
	Date       string `json:"date"`
	Security   string `json:"security"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency,omitempty"`
	Quantity   string `json:"quantity,omitempty"`
	AssetClass string `json:"assetClass,omitempty"`
	Type       string `json:"type,omitempty"` // transactions only

	// DefaultCurrency applies when Currency is not mapped.
	DefaultCurrency string `json:"defaultCurrency,omitempty"`
	// TypeAliases maps provider-specific labels to transaction types.
	TypeAliases map[string]TransactionType `json:"typeAliases,omitempty"`
}

// ImportPositions reads a provider's JSON export and maps it to position
// snapshots for the given account.
func ImportPositions(r io.Reader, accountID string, m ImportMapping) ([]Position, error) {
	rows, err := selectRows(r, m.Rows)
	if err != nil {
		return nil, err
	}
	positions := make([]Position, 0, len(rows))
	for i, row := range rows {
		p := Position{AccountID: accountID}
		if p.Date, err = pathDate(row, m.Date); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if p.Security, err = pathString(row, m.Security); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		amount, err := pathDecimal(row, m.Amount)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		currency, err := optionalString(row, m.Currency, m.DefaultCurrency)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		p.MarketValue = M(amount, currency)
		if m.Quantity != "" {
			q, err := pathDecimal(row, m.Quantity)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			p.Quantity = Q(q)
		}
		if p.AssetClass, err = optionalString(row, m.AssetClass, ""); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// ImportTransactions reads a provider's JSON export and maps it to cash-flow
// events for the given account.
func ImportTransactions(r io.Reader, accountID string, m ImportMapping) ([]Transaction, error) {
	if m.Type == "" {
		return nil, fmt.Errorf("transaction import mapping requires a type path")
	}
	rows, err := selectRows(r, m.Rows)
	if err != nil {
		return nil, err
	}
	transactions := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		tx := Transaction{AccountID: accountID}
		if tx.Date, err = pathDate(row, m.Date); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if tx.Security, err = optionalString(row, m.Security, ""); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		amount, err := pathDecimal(row, m.Amount)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		currency, err := optionalString(row, m.Currency, m.DefaultCurrency)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		tx.Amount = M(amount, currency)
		label, err := pathString(row, m.Type)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if tx.Type, err = resolveType(label, m.TypeAliases); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// selectRows parses the document and evaluates the rows path into a list of
// records. Numbers are kept as json.Number to preserve decimal precision.
func selectRows(r io.Reader, rowsPath string) ([]any, error) {
	if rowsPath == "" {
		rowsPath = "$[*]"
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse export document: %w", err)
	}
	selected, err := jsonpath.Get(rowsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("rows path %q: %w", rowsPath, err)
	}
	rows, ok := selected.([]any)
	if !ok {
		return nil, fmt.Errorf("rows path %q did not select an array", rowsPath)
	}
	return rows, nil
}

func pathString(row any, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("missing required mapping path")
	}
	v, err := jsonpath.Get(path, row)
	if err != nil {
		return "", fmt.Errorf("path %q: %w", path, err)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("path %q selected %T, want a string", path, v)
	}
	return s, nil
}

func optionalString(row any, path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	return pathString(row, path)
}

func pathDecimal(row any, path string) (decimal.Decimal, error) {
	if path == "" {
		return decimal.Zero, fmt.Errorf("missing required mapping path")
	}
	v, err := jsonpath.Get(path, row)
	if err != nil {
		return decimal.Zero, fmt.Errorf("path %q: %w", path, err)
	}
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		return decimal.NewFromString(n)
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("path %q selected %T, want a number", path, v)
	}
}

func pathDate(row any, path string) (date.Date, error) {
	s, err := pathString(row, path)
	if err != nil {
		return date.Date{}, err
	}
	return date.Parse(s)
}

func resolveType(label string, aliases map[string]TransactionType) (TransactionType, error) {
	if t, ok := aliases[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return t, nil
	}
	return ParseTransactionType(label)
}

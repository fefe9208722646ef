package reporting

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/clearfield/reporting/date"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file handles the JSONL persistence format for positions and
// transactions. One record per line, human readable and git friendly, so
// account data can live in a plain repository and feed the calculators
// without a database.

// jposition is the line format of a position snapshot.
type jposition struct {
	AccountID  string          `json:"accountId"`
	Security   string          `json:"security"`
	Date       date.Date       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Quantity   Quantity        `json:"quantity,omitzero"`
	AssetClass string          `json:"assetClass,omitempty"`
}

// jtransaction is the line format of a cash-flow event.
type jtransaction struct {
	AccountID string          `json:"accountId"`
	Security  string          `json:"security,omitempty"`
	Date      date.Date       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Type      string          `json:"type"`
}

// DecodePositions decodes position snapshots from a JSONL stream.
func DecodePositions(r io.Reader) ([]Position, error) {
	var positions []Position
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var jp jposition
		if err := json.Unmarshal(line, &jp); err != nil {
			return nil, fmt.Errorf("cannot parse position line %q: %w", string(line), err)
		}
		positions = append(positions, Position{
			AccountID:   jp.AccountID,
			Security:    jp.Security,
			Date:        jp.Date,
			MarketValue: M(jp.Amount, jp.Currency),
			Quantity:    jp.Quantity,
			AssetClass:  jp.AssetClass,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	return positions, nil
}

// DecodeTransactions decodes cash-flow events from a JSONL stream.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var transactions []Transaction
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var jt jtransaction
		if err := json.Unmarshal(line, &jt); err != nil {
			return nil, fmt.Errorf("cannot parse transaction line %q: %w", string(line), err)
		}
		txType, err := ParseTransactionType(jt.Type)
		if err != nil {
			return nil, fmt.Errorf("in transaction line %q: %w", string(line), err)
		}
		transactions = append(transactions, Transaction{
			AccountID: jt.AccountID,
			Security:  jt.Security,
			Date:      jt.Date,
			Amount:    M(jt.Amount, jt.Currency),
			Type:      txType,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return transactions, nil
}

// EncodePositions writes position snapshots to 'w' in the JSONL format.
func EncodePositions(w io.Writer, positions []Position) error {
	for _, p := range positions {
		var jw jsonObjectWriter
		jw.Append("accountId", p.AccountID)
		jw.Append("security", p.Security)
		jw.Append("date", p.Date)
		jw.Append("amount", p.MarketValue.value)
		jw.Optional("currency", p.MarketValue.Currency())
		if !p.Quantity.IsZero() {
			jw.Append("quantity", p.Quantity)
		}
		jw.Optional("assetClass", p.AssetClass)
		if err := writeLine(w, &jw); err != nil {
			return fmt.Errorf("encoding position for %s: %w", p.Security, err)
		}
	}
	return nil
}

// EncodeTransactions writes cash-flow events to 'w' in the JSONL format.
func EncodeTransactions(w io.Writer, transactions []Transaction) error {
	for _, tx := range transactions {
		var jw jsonObjectWriter
		jw.Append("accountId", tx.AccountID)
		jw.Optional("security", tx.Security)
		jw.Append("date", tx.Date)
		jw.Append("amount", tx.Amount.value)
		jw.Optional("currency", tx.Amount.Currency())
		jw.Append("type", string(tx.Type))
		if err := writeLine(w, &jw); err != nil {
			return fmt.Errorf("encoding transaction on %s: %w", tx.Date, err)
		}
	}
	return nil
}

func writeLine(w io.Writer, jw *jsonObjectWriter) error {
	b, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

package reporting

import (
	"strings"
	"testing"
)

const custodianPositions = `{
  "meta": {"generated": "2024-02-01"},
  "holdings": [
    {"asOf": "2024-01-31", "ticker": "AAPL", "value": "1500.25", "ccy": "USD", "units": 10, "bucket": "equity"},
    {"asOf": "2024-01-31", "ticker": "BND", "value": "800", "ccy": "USD", "units": 8, "bucket": "bond"}
  ]
}`

func TestImportPositions(t *testing.T) {
	m := ImportMapping{
		Rows:       "$.holdings[*]",
		Date:       "$.asOf",
		Security:   "$.ticker",
		Amount:     "$.value",
		Currency:   "$.ccy",
		Quantity:   "$.units",
		AssetClass: "$.bucket",
	}
	positions, err := ImportPositions(strings.NewReader(custodianPositions), "acc-1", m)
	if err != nil {
		t.Fatalf("ImportPositions() error = %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("len = %d, want 2", len(positions))
	}
	p := positions[0]
	if p.AccountID != "acc-1" || p.Security != "AAPL" || p.AssetClass != "equity" {
		t.Errorf("position = %+v", p)
	}
	if p.Date != day("2024-01-31") {
		t.Errorf("Date = %s, want 2024-01-31", p.Date)
	}
	if !p.MarketValue.Equal(USD(1500.25)) {
		t.Errorf("MarketValue = %v, want 1500.25 USD", p.MarketValue)
	}
	if !p.Quantity.Equal(Q(10)) {
		t.Errorf("Quantity = %v, want 10", p.Quantity)
	}
}

func TestImportPositions_defaultCurrency(t *testing.T) {
	in := `[{"d": "2024-01-31", "s": "EQNR", "v": 120}]`
	m := ImportMapping{Date: "$.d", Security: "$.s", Amount: "$.v", DefaultCurrency: "NOK"}
	positions, err := ImportPositions(strings.NewReader(in), "acc-2", m)
	if err != nil {
		t.Fatalf("ImportPositions() error = %v", err)
	}
	if got := positions[0].MarketValue.Currency(); got != "NOK" {
		t.Errorf("Currency = %q, want NOK", got)
	}
}

func TestImportTransactions_typeAliases(t *testing.T) {
	in := `[
  {"when": "2024-01-02", "amt": "5000", "kind": "CONTRIBUTION", "sym": ""},
  {"when": "2024-01-05", "amt": "-1000", "kind": "buy", "sym": "AAPL"}
]`
	m := ImportMapping{
		Date:     "$.when",
		Security: "$.sym",
		Amount:   "$.amt",
		Type:     "$.kind",
		TypeAliases: map[string]TransactionType{
			"CONTRIBUTION": Deposit,
		},
		DefaultCurrency: "USD",
	}
	transactions, err := ImportTransactions(strings.NewReader(in), "acc-1", m)
	if err != nil {
		t.Fatalf("ImportTransactions() error = %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("len = %d, want 2", len(transactions))
	}
	if transactions[0].Type != Deposit {
		t.Errorf("Type = %s, want %s", transactions[0].Type, Deposit)
	}
	if transactions[1].Type != Buy {
		t.Errorf("Type = %s, want %s", transactions[1].Type, Buy)
	}
	if transactions[1].Security != "AAPL" {
		t.Errorf("Security = %q, want AAPL", transactions[1].Security)
	}
}

func TestImportTransactions_requiresTypePath(t *testing.T) {
	m := ImportMapping{Date: "$.d", Amount: "$.a"}
	if _, err := ImportTransactions(strings.NewReader(`[]`), "acc-1", m); err == nil {
		t.Errorf("expected an error when the type path is missing")
	}
}

func TestImportPositions_badRowsPath(t *testing.T) {
	m := ImportMapping{Rows: "$.missing", Date: "$.d", Security: "$.s", Amount: "$.v"}
	if _, err := ImportPositions(strings.NewReader(`{"rows": []}`), "acc-1", m); err == nil {
		t.Errorf("expected an error for a rows path that selects nothing")
	}
}

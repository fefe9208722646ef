package reporting

import (
	"bytes"
	"strings"
	"testing"
)

func TestPositions_roundTrip(t *testing.T) {
	positions := []Position{
		{AccountID: "acc-1", Security: "AAPL", Date: day("2024-01-01"), MarketValue: USD(1000.50), Quantity: Q(10), AssetClass: "equity"},
		{AccountID: "acc-1", Security: "CASH", Date: day("2024-01-02"), MarketValue: USD(250)},
	}

	var buf bytes.Buffer
	if err := EncodePositions(&buf, positions); err != nil {
		t.Fatalf("EncodePositions() error = %v", err)
	}

	decoded, err := DecodePositions(&buf)
	if err != nil {
		t.Fatalf("DecodePositions() error = %v", err)
	}
	if len(decoded) != len(positions) {
		t.Fatalf("len = %d, want %d", len(decoded), len(positions))
	}
	for i, want := range positions {
		got := decoded[i]
		if got.Security != want.Security || got.Date != want.Date || got.AssetClass != want.AssetClass {
			t.Errorf("position[%d] = %+v, want %+v", i, got, want)
		}
		if !got.MarketValue.Equal(want.MarketValue) {
			t.Errorf("position[%d].MarketValue = %v, want %v", i, got.MarketValue, want.MarketValue)
		}
		if !got.Quantity.Equal(want.Quantity) {
			t.Errorf("position[%d].Quantity = %v, want %v", i, got.Quantity, want.Quantity)
		}
	}
}

func TestTransactions_roundTrip(t *testing.T) {
	transactions := []Transaction{
		{AccountID: "acc-1", Security: "AAPL", Date: day("2024-01-05"), Amount: USD(-1000), Type: Buy},
		{AccountID: "acc-1", Date: day("2024-01-02"), Amount: USD(5000), Type: Deposit},
	}

	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, transactions); err != nil {
		t.Fatalf("EncodeTransactions() error = %v", err)
	}
	decoded, err := DecodeTransactions(&buf)
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	if len(decoded) != len(transactions) {
		t.Fatalf("len = %d, want %d", len(decoded), len(transactions))
	}
	for i, want := range transactions {
		got := decoded[i]
		if got.Type != want.Type || got.Date != want.Date || got.Security != want.Security {
			t.Errorf("transaction[%d] = %+v, want %+v", i, got, want)
		}
		if !got.Amount.Equal(want.Amount) {
			t.Errorf("transaction[%d].Amount = %v, want %v", i, got.Amount, want.Amount)
		}
	}
}

func TestDecodeTransactions_badType(t *testing.T) {
	in := `{"accountId":"acc-1","date":"2024-01-02","amount":10,"currency":"USD","type":"GIFT"}`
	if _, err := DecodeTransactions(strings.NewReader(in)); err == nil {
		t.Errorf("expected an error for an unknown transaction type")
	}
}

func TestDecodePositions_badLine(t *testing.T) {
	in := "{not json}\n"
	if _, err := DecodePositions(strings.NewReader(in)); err == nil {
		t.Errorf("expected an error for a malformed line")
	}
}

func TestDecodePositions_skipsEmptyLines(t *testing.T) {
	in := "\n" + `{"accountId":"acc-1","security":"AAPL","date":"2024-01-01","amount":100,"currency":"USD"}` + "\n\n"
	positions, err := DecodePositions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodePositions() error = %v", err)
	}
	if len(positions) != 1 {
		t.Errorf("len = %d, want 1", len(positions))
	}
}

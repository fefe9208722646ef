package reporting

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewValuationReport_forwardFill(t *testing.T) {
	positions := []Position{
		{AccountID: "acc-1", Security: "AAPL", Date: day("2024-01-01"), MarketValue: USD(1000)},
		{AccountID: "acc-1", Security: "AAPL", Date: day("2024-01-04"), MarketValue: USD(1200)},
	}

	report, err := NewValuationReport("acc-1", span("2024-01-01", "2024-01-05"), positions, nil)
	if err != nil {
		t.Fatalf("NewValuationReport() error = %v", err)
	}

	if len(report.Daily) != 5 {
		t.Fatalf("len(Daily) = %d, want 5 (one row per calendar day)", len(report.Daily))
	}

	wantEndings := []Money{USD(1000), USD(1000), USD(1000), USD(1200), USD(1200)}
	for i, want := range wantEndings {
		if !report.Daily[i].EndingValue.Equal(want) {
			t.Errorf("Daily[%d].EndingValue = %v, want %v", i, report.Daily[i].EndingValue, want)
		}
	}

	// No position strictly before the range start: zero beginning value, flagged.
	if !report.Daily[0].BeginningValue.IsZero() {
		t.Errorf("Daily[0].BeginningValue = %v, want zero", report.Daily[0].BeginningValue)
	}
	if !report.Warnings.Has(WarnNoOpeningValue) {
		t.Errorf("expected a %s warning, got %v", WarnNoOpeningValue, report.Warnings)
	}

	if !report.Summary.DataAvailable {
		t.Errorf("Summary.DataAvailable = false, want true")
	}
	if !report.Summary.EndValue.Equal(USD(1200)) {
		t.Errorf("Summary.EndValue = %v, want %v", report.Summary.EndValue, USD(1200))
	}
	if !report.Summary.TotalGrowth.Equal(USD(1200)) {
		t.Errorf("Summary.TotalGrowth = %v, want %v", report.Summary.TotalGrowth, USD(1200))
	}
}

func TestNewValuationReport_continuity(t *testing.T) {
	positions := []Position{
		{AccountID: "acc-1", Security: "AAPL", Date: day("2023-12-30"), MarketValue: USD(500)},
		{AccountID: "acc-1", Security: "AAPL", Date: day("2024-01-02"), MarketValue: USD(520)},
		{AccountID: "acc-1", Security: "GOOG", Date: day("2024-01-03"), MarketValue: USD(300)},
	}
	transactions := []Transaction{
		{AccountID: "acc-1", Date: day("2024-01-03"), Amount: USD(300), Type: Deposit},
	}

	report, err := NewValuationReport("acc-1", span("2024-01-01", "2024-01-04"), positions, transactions)
	if err != nil {
		t.Fatalf("NewValuationReport() error = %v", err)
	}

	// The opening value comes from the latest position strictly before the start.
	if !report.Summary.StartValue.Equal(USD(500)) {
		t.Errorf("Summary.StartValue = %v, want %v", report.Summary.StartValue, USD(500))
	}
	if report.Warnings.Has(WarnNoOpeningValue) {
		t.Errorf("unexpected %s warning: %v", WarnNoOpeningValue, report.Warnings)
	}

	for i := 1; i < len(report.Daily); i++ {
		if !report.Daily[i].BeginningValue.Equal(report.Daily[i-1].EndingValue) {
			t.Errorf("continuity broken at %s: beginning %v != prior ending %v",
				report.Daily[i].Date, report.Daily[i].BeginningValue, report.Daily[i-1].EndingValue)
		}
	}

	// ending = beginning + flows + market value change, every day
	for _, dv := range report.Daily {
		reconstructed := dv.BeginningValue.Add(dv.NetFlows).Add(dv.MarketValueChange())
		if !dv.EndingValue.Equal(reconstructed) {
			t.Errorf("%s: ending %v != beginning+flows+change %v", dv.Date, dv.EndingValue, reconstructed)
		}
	}
}

func TestNewValuationReport_netFlows(t *testing.T) {
	positions := []Position{
		{AccountID: "acc-1", Security: "CASH", Date: day("2024-01-01"), MarketValue: USD(1000)},
		{AccountID: "acc-1", Security: "CASH", Date: day("2024-01-02"), MarketValue: USD(1500)},
	}
	transactions := []Transaction{
		{AccountID: "acc-1", Date: day("2024-01-02"), Amount: USD(500), Type: Deposit},
		// internal trading activity, not an external flow
		{AccountID: "acc-1", Security: "AAPL", Date: day("2024-01-02"), Amount: USD(-200), Type: Buy},
		// outside the range, ignored
		{AccountID: "acc-1", Date: day("2024-02-01"), Amount: USD(900), Type: Deposit},
	}

	report, err := NewValuationReport("acc-1", span("2024-01-01", "2024-01-02"), positions, transactions)
	if err != nil {
		t.Fatalf("NewValuationReport() error = %v", err)
	}

	if !report.Daily[1].NetFlows.Equal(USD(500)) {
		t.Errorf("NetFlows = %v, want %v (buys are not external flows)", report.Daily[1].NetFlows, USD(500))
	}
	if !report.Summary.NetContribution.Equal(USD(500)) {
		t.Errorf("NetContribution = %v, want %v", report.Summary.NetContribution, USD(500))
	}
	// growth = 1500 - 0 - 500, the opening was unknown (zero)
	if !report.Summary.TotalGrowth.Equal(USD(1000)) {
		t.Errorf("TotalGrowth = %v, want %v", report.Summary.TotalGrowth, USD(1000))
	}
}

func TestNewValuationReport_noData(t *testing.T) {
	report, err := NewValuationReport("acc-1", span("2024-01-01", "2024-01-03"), nil, nil)
	if err != nil {
		t.Fatalf("NewValuationReport() error = %v, want graceful no-data result", err)
	}
	if report.Summary.DataAvailable {
		t.Errorf("Summary.DataAvailable = true, want false")
	}
	if !report.Summary.StartValue.IsZero() || !report.Summary.EndValue.IsZero() || !report.Summary.TotalGrowth.IsZero() {
		t.Errorf("summary not zeroed: %+v", report.Summary)
	}
	if len(report.Daily) != 3 {
		t.Errorf("len(Daily) = %d, want 3", len(report.Daily))
	}
}

func TestNewValuationReport_contractViolations(t *testing.T) {
	if _, err := NewValuationReport("acc-1", span("2024-01-05", "2024-01-01"), nil, nil); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range error = %v, want ErrInvalidRange", err)
	}

	positions := []Position{
		{AccountID: "acc-2", Security: "AAPL", Date: day("2024-01-01"), MarketValue: USD(1000)},
	}
	if _, err := NewValuationReport("acc-1", span("2024-01-01", "2024-01-02"), positions, nil); !errors.Is(err, ErrAccountMismatch) {
		t.Errorf("mismatched account error = %v, want ErrAccountMismatch", err)
	}
}

func TestNewValuationReport_unorderedTransactionsWarn(t *testing.T) {
	positions := []Position{
		{AccountID: "acc-1", Security: "AAPL", Date: day("2024-01-01"), MarketValue: USD(100)},
	}
	transactions := []Transaction{
		{AccountID: "acc-1", Date: day("2024-01-03"), Amount: USD(10), Type: Deposit},
		{AccountID: "acc-1", Date: day("2024-01-02"), Amount: USD(10), Type: Deposit},
	}
	report, err := NewValuationReport("acc-1", span("2024-01-01", "2024-01-03"), positions, transactions)
	if err != nil {
		t.Fatalf("NewValuationReport() error = %v", err)
	}
	if !report.Warnings.Has(WarnUnorderedInput) {
		t.Errorf("expected a %s warning, got %v", WarnUnorderedInput, report.Warnings)
	}
	if !report.Summary.NetContribution.Equal(USD(20)) {
		t.Errorf("NetContribution = %v, want %v", report.Summary.NetContribution, USD(20))
	}
}

func TestNewValuationReport_idempotent(t *testing.T) {
	positions := []Position{
		{AccountID: "acc-1", Security: "AAPL", Date: day("2024-01-01"), MarketValue: USD(1000)},
		{AccountID: "acc-1", Security: "AAPL", Date: day("2024-01-03"), MarketValue: USD(1050)},
	}
	transactions := []Transaction{
		{AccountID: "acc-1", Date: day("2024-01-02"), Amount: USD(25), Type: Deposit},
	}

	first, err := NewValuationReport("acc-1", span("2024-01-01", "2024-01-03"), positions, transactions)
	if err != nil {
		t.Fatalf("NewValuationReport() error = %v", err)
	}
	second, err := NewValuationReport("acc-1", span("2024-01-01", "2024-01-03"), positions, transactions)
	if err != nil {
		t.Fatalf("NewValuationReport() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different reports:\n%+v\n%+v", first, second)
	}
}

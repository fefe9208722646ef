package reporting

import (
	"slices"

	"github.com/clearfield/reporting/date"
	"github.com/clearfield/reporting/stats"
)

// PerformanceSummary holds the period's time-weighted return analytics.
// All return figures are fractions, the presentation layer scales them.
type PerformanceSummary struct {
	TotalTWR      Percent  `json:"totalTwr"`
	AnnualizedTWR Percent  `json:"annualizedTwr"`
	BestDay       Percent  `json:"bestDay"`
	WorstDay      Percent  `json:"worstDay"`
	Volatility    float64  `json:"volatility"`
	SharpeRatio   *float64 `json:"sharpeRatio,omitempty"`
	RiskFreeRate  float64  `json:"riskFreeRate"`
	PeriodDays    int      `json:"periodDays"`
}

// PerformanceReport augments a daily valuation series with flow-adjusted
// returns and their dispersion statistics.
type PerformanceReport struct {
	AccountID     string             `json:"accountId,omitempty"`
	Range         date.Range         `json:"range,omitzero"`
	DataAvailable bool               `json:"dataAvailable"`
	Daily         []DailyValue       `json:"dailyReturns"`
	Summary       PerformanceSummary `json:"summary"`
	Warnings      Warnings           `json:"warnings,omitempty"`
}

type performanceConfig struct {
	riskFreeRate float64
}

// PerformanceOption configures a performance calculation.
type PerformanceOption func(*performanceConfig)

// WithRiskFreeRate sets the annual risk-free rate used in the Sharpe ratio.
// It defaults to zero.
func WithRiskFreeRate(rate float64) PerformanceOption {
	return func(c *performanceConfig) { c.riskFreeRate = rate }
}

// NewPerformanceReport computes flow-adjusted daily returns over a valuation
// series and geometrically links them into cumulative and annualized
// time-weighted returns.
//
// The daily return convention is (ending - flows - beginning) / beginning,
// zero when the beginning value is zero. A malformed day (missing date,
// negative beginning value) yields a zero return and a warning, never a
// fatal error: one bad day must not abort the whole period's report.
func NewPerformanceReport(dailyValues []DailyValue, opts ...PerformanceOption) (*PerformanceReport, error) {
	cfg := performanceConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	report := &PerformanceReport{
		DataAvailable: len(dailyValues) > 0,
		Daily:         slices.Clone(dailyValues),
	}
	report.Summary.RiskFreeRate = cfg.riskFreeRate
	if len(report.Daily) == 0 {
		return report, nil
	}

	if !slices.IsSortedFunc(report.Daily, func(a, b DailyValue) int { return a.Date.Sub(b.Date) }) {
		report.Warnings.addf(WarnUnorderedInput, "daily values were not in chronological order")
		slices.SortStableFunc(report.Daily, func(a, b DailyValue) int { return a.Date.Sub(b.Date) })
	}

	var cumulative float64
	returns := make([]float64, 0, len(report.Daily))
	for i := range report.Daily {
		dv := &report.Daily[i]
		dv.DailyReturn = Percent(flowAdjustedReturn(dv, &report.Warnings))
		// geometric linking, not arithmetic summation
		cumulative = (1+cumulative)*(1+float64(dv.DailyReturn)) - 1
		dv.CumulativeReturn = Percent(cumulative)
		returns = append(returns, float64(dv.DailyReturn))
	}

	first, last := report.Daily[0], report.Daily[len(report.Daily)-1]
	report.Range = date.Range{From: first.Date, To: last.Date}

	s := &report.Summary
	s.PeriodDays = last.Date.Sub(first.Date) + 1
	s.TotalTWR = last.CumulativeReturn
	s.AnnualizedTWR = Percent(stats.Annualize(float64(s.TotalTWR), s.PeriodDays))
	s.BestDay = Percent(slices.Max(returns))
	s.WorstDay = Percent(slices.Min(returns))
	s.Volatility = stats.AnnualizedVolatility(returns)
	if sharpe, ok := stats.SharpeRatio(float64(s.AnnualizedTWR), cfg.riskFreeRate, s.Volatility); ok {
		s.SharpeRatio = &sharpe
	}
	return report, nil
}

// NewPerformanceFromRecords runs the full valuation-to-returns pipeline: it
// aggregates the daily series and feeds it to the return engine, merging
// warnings from both stages.
func NewPerformanceFromRecords(accountID string, rng date.Range, positions []Position, transactions []Transaction, opts ...PerformanceOption) (*PerformanceReport, error) {
	valuation, err := NewValuationReport(accountID, rng, positions, transactions)
	if err != nil {
		return nil, err
	}
	report, err := NewPerformanceReport(valuation.Daily, opts...)
	if err != nil {
		return nil, err
	}
	report.AccountID = accountID
	report.Range = rng
	report.DataAvailable = valuation.Summary.DataAvailable
	report.Warnings = append(valuation.Warnings, report.Warnings...)
	return report, nil
}

// flowAdjustedReturn computes one day's return with the day's external flows
// removed from the value change, so a large deposit does not register as a
// large gain.
func flowAdjustedReturn(dv *DailyValue, warnings *Warnings) float64 {
	if dv.Date.IsZero() {
		warnings.addf(WarnMalformedDay, "daily value with no date, return assumed zero")
		return 0
	}
	if dv.BeginningValue.IsNegative() {
		warnings.addf(WarnMalformedDay, "negative beginning value on %s, return assumed zero", dv.Date)
		return 0
	}
	if dv.BeginningValue.IsZero() {
		// Undefined base. By convention the day contributes no return.
		return 0
	}
	return dv.EndingValue.Sub(dv.NetFlows).Sub(dv.BeginningValue).Ratio(dv.BeginningValue)
}

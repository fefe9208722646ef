package renderer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/clearfield/reporting"
)

// CSV exports mirror the markdown tables row for row, with raw numeric
// fractions instead of formatted percentages so spreadsheets can compute on
// them directly.

// ValuationCSV writes the daily value series as CSV.
func ValuationCSV(w io.Writer, r *reporting.ValuationReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "beginningValue", "endingValue", "netFlows", "dailyReturn", "cumulativeReturn"}); err != nil {
		return err
	}
	for _, day := range r.Daily {
		record := []string{
			day.Date.String(),
			formatFloat(day.BeginningValue.AsFloat()),
			formatFloat(day.EndingValue.AsFloat()),
			formatFloat(day.NetFlows.AsFloat()),
			formatFloat(float64(day.DailyReturn)),
			formatFloat(float64(day.CumulativeReturn)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PerformanceCSV writes the daily return series as CSV.
func PerformanceCSV(w io.Writer, r *reporting.PerformanceReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "dailyReturn", "cumulativeReturn"}); err != nil {
		return err
	}
	for _, day := range r.Daily {
		record := []string{
			day.Date.String(),
			formatFloat(float64(day.DailyReturn)),
			formatFloat(float64(day.CumulativeReturn)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// HoldingsCSV writes the holdings snapshot as CSV.
func HoldingsCSV(w io.Writer, r *reporting.HoldingsReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"security", "assetClass", "quantity", "marketValue", "costBasis", "unrealizedPnL", "allocation"}); err != nil {
		return err
	}
	for _, h := range r.Holdings {
		record := []string{
			h.Security,
			h.AssetClass,
			h.Quantity.String(),
			formatFloat(h.MarketValue.AsFloat()),
			formatFloat(h.CostBasis.AsFloat()),
			formatFloat(h.UnrealizedPnL.AsFloat()),
			formatFloat(float64(h.AllocationPercent)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

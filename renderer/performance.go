package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/clearfield/reporting"
)

// PerformanceMarkdown renders the time-weighted return report to markdown.
func PerformanceMarkdown(r *reporting.PerformanceReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Performance %s", r.Range))

	if !r.DataAvailable {
		doc.PlainText("No return data is available for this period.")
		warningsSection(doc, r.Warnings)
		return doc.String()
	}

	rows := [][]string{
		{"Total Return", r.Summary.TotalTWR.SignedString()},
		{"Annualized", r.Summary.AnnualizedTWR.SignedString()},
		{"Best Day", r.Summary.BestDay.SignedString()},
		{"Worst Day", r.Summary.WorstDay.SignedString()},
		{"Volatility", fmt.Sprintf("%.2f%%", r.Summary.Volatility*100)},
	}
	if r.Summary.SharpeRatio != nil {
		rows = append(rows, []string{"Sharpe Ratio", fmt.Sprintf("%.2f", *r.Summary.SharpeRatio)})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Summary", ""},
		Rows:      rows,
	})

	doc.H2("Daily Returns")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Return", "Cumulative"},
		Rows:   [][]string{},
	}
	for _, day := range r.Daily {
		table.Rows = append(table.Rows, []string{
			day.Date.String(),
			day.DailyReturn.SignedString(),
			day.CumulativeReturn.SignedString(),
		})
	}
	doc.Table(table)

	warningsSection(doc, r.Warnings)
	return doc.String()
}

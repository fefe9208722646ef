// Package renderer turns calculation reports into markdown documents and CSV
// exports. Rendering is kept out of the calculators so the same report can
// feed a terminal, a file, or the analyst agent.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/clearfield/reporting"
)

// ValuationMarkdown renders the daily account value series to markdown.
func ValuationMarkdown(r *reporting.ValuationReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Account Value %s", r.Range))

	if !r.Summary.DataAvailable {
		doc.PlainText("No position data is available for this period.")
		warningsSection(doc, r.Warnings)
		return doc.String()
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Summary", ""},
		Rows: [][]string{
			{"Start Value", r.Summary.StartValue.String()},
			{"End Value", r.Summary.EndValue.String()},
			{"Net Contribution", r.Summary.NetContribution.SignedString()},
			{"Growth", r.Summary.TotalGrowth.SignedString()},
		},
	})

	doc.H2("Daily Values")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Begin", "End", "Net Flows", "Return"},
		Rows:   [][]string{},
	}
	for _, day := range r.Daily {
		table.Rows = append(table.Rows, []string{
			day.Date.String(),
			day.BeginningValue.String(),
			day.EndingValue.String(),
			day.NetFlows.SignedString(),
			day.DailyReturn.SignedString(),
		})
	}
	doc.Table(table)

	warningsSection(doc, r.Warnings)
	return doc.String()
}

func warningsSection(doc *md.Markdown, warnings reporting.Warnings) {
	if len(warnings) == 0 {
		return
	}
	doc.H2("Warnings")
	var items []string
	for _, w := range warnings {
		items = append(items, w.Message)
	}
	doc.BulletList(items...)
}

package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/clearfield/reporting"
)

// HoldingsMarkdown renders the holdings snapshot to markdown.
func HoldingsMarkdown(r *reporting.HoldingsReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Holdings on %s", r.Date))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Security", "Quantity", "Market Value", "Cost Basis", "Unrealized P&L", "Allocation"},
		Rows:   [][]string{},
	}
	for _, h := range r.Holdings {
		table.Rows = append(table.Rows, []string{
			h.Security,
			h.Quantity.String(),
			h.MarketValue.String(),
			h.CostBasis.String(),
			h.UnrealizedPnL.SignedString(),
			h.AllocationPercent.String(),
		})
	}
	doc.Table(table)

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Summary", ""},
		Rows: [][]string{
			{"Cash", r.CashBalance.String()},
			{"Total Value", r.TotalMarketValue.String()},
		},
	})

	if len(r.AssetClasses) > 0 {
		doc.H2("Asset Classes")
		classes := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Class", "Positions", "Market Value", "Allocation"},
			Rows:   [][]string{},
		}
		for _, c := range r.AssetClasses {
			classes.Rows = append(classes.Rows, []string{
				c.AssetClass,
				fmt.Sprintf("%d", c.Count),
				c.MarketValue.String(),
				c.AllocationPercent.String(),
			})
		}
		doc.Table(classes)
	}

	warningsSection(doc, r.Warnings)
	return doc.String()
}

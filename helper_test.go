package reporting

import "github.com/clearfield/reporting/date"

// USD is a helper for tests to create dollar amounts from consts.
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for tests to create money with no currency set.
func NO(v float64) Money { return M(v, "") }

func day(s string) date.Date { return date.MustParse(s) }

func span(from, to string) date.Range {
	return date.Range{From: day(from), To: day(to)}
}

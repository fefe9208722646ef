package reporting

import (
	"errors"
	"fmt"
)

// Contract violations. These indicate a caller bug, not a data condition, and
// reject the call instead of degrading into a partial report.
var (
	// ErrInvalidRange reports a negative date range.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrAccountMismatch reports records scoped to a different account.
	ErrAccountMismatch = errors.New("account mismatch")
)

// Warning codes for recoverable data anomalies. The computation continues
// with the documented fallback and the anomaly travels with the report.
const (
	WarnNoOpeningValue  = "no-opening-value"  // no position at or before the period start
	WarnUnorderedInput  = "unordered-input"   // transactions were not chronological
	WarnZeroBasis       = "zero-basis"        // holding with no reconstructable cost basis
	WarnMalformedDay    = "malformed-day"     // daily value that failed its own invariants
	WarnNegativeBalance = "negative-balance"  // account value went below zero
)

// Warning is a recoverable data-quality anomaly found during a calculation.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string { return w.Code + ": " + w.Message }

// Warnings collects the anomalies of a single report.
type Warnings []Warning

func (ws *Warnings) addf(code, format string, args ...any) {
	*ws = append(*ws, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Has reports whether a warning with the given code was recorded.
func (ws Warnings) Has(code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Package reporting provides the valuation and performance calculation engine
// for investment accounts. It is a pure computation layer: it takes position
// snapshots and cash-flow events as input and produces reports, it never
// fetches market data itself.
//
// The core functionalities include:
//   - Account Valuation: a daily account value series over any date range,
//     carrying the last observed value forward across unobserved days and
//     tracking net external flows.
//   - Performance Measurement: flow-adjusted daily returns linked into a
//     time-weighted return, with annualization, volatility and Sharpe ratio.
//   - Holdings Snapshots: the account's composition on any date, with cost
//     basis reconstruction, unrealized profit and allocations by security and
//     asset class.
//   - Data Persistence: encoding and decoding account data in human-readable,
//     version-controllable JSONL, plus jsonpath-driven imports of third-party
//     exports.
//
// Recoverable data anomalies never abort a calculation: the engine applies a
// documented fallback and reports the anomaly as a warning on the report.
// Only contract violations (reversed ranges, mismatched accounts) are errors.
//
// This package serves as the foundational logic for the `arc` command-line
// tool.
package reporting

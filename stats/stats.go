// Package stats provides the dispersion statistics used by the performance
// reports. It wraps gonum so the conventions (sample standard deviation,
// 252 trading days) live in one place.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization convention for volatility.
// Calendar days (365) are used for return annualization, trading days for
// dispersion, which keeps the figures comparable with industry reporting.
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of the values.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of the values.
// Fewer than two samples have no dispersion.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// AnnualizedVolatility scales the sample standard deviation of daily returns
// by sqrt(252).
func AnnualizedVolatility(dailyReturns []float64) float64 {
	sd := StdDev(dailyReturns)
	if sd == 0 {
		return 0
	}
	return sd * math.Sqrt(TradingDaysPerYear)
}

// SharpeRatio computes (annualizedReturn - riskFreeRate) / volatility.
// The second return value is false when volatility is zero and the ratio is
// undefined.
func SharpeRatio(annualizedReturn, riskFreeRate, volatility float64) (float64, bool) {
	if volatility == 0 {
		return 0, false
	}
	return (annualizedReturn - riskFreeRate) / volatility, true
}

// Annualize compounds a total return over periodDays calendar days into a
// yearly rate. Periods under one day are returned unchanged, and so are total
// losses beyond -100% where compounding is undefined.
func Annualize(totalReturn float64, periodDays int) float64 {
	if periodDays < 1 {
		return totalReturn
	}
	base := 1 + totalReturn
	if base <= 0 {
		return totalReturn
	}
	return math.Pow(base, 365/float64(periodDays)) - 1
}

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{0.1}))

	// sample standard deviation of {2, 4, 4, 4, 5, 5, 7, 9} is ~2.138
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.13809, got, 1e-5)
}

func TestAnnualizedVolatility(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.015, 0.005}
	want := StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, want, AnnualizedVolatility(returns), 1e-12)

	assert.Equal(t, 0.0, AnnualizedVolatility([]float64{0.01}))
}

func TestSharpeRatio(t *testing.T) {
	s, ok := SharpeRatio(0.10, 0.02, 0.16)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, s, 1e-12)

	_, ok = SharpeRatio(0.10, 0, 0)
	assert.False(t, ok, "sharpe is undefined with zero volatility")
}

func TestAnnualize(t *testing.T) {
	// 10% over a full year stays 10%.
	assert.InDelta(t, 0.10, Annualize(0.10, 365), 1e-12)

	// 10% over half a year compounds to (1.1)^2 - 1.
	assert.InDelta(t, math.Pow(1.1, 2)-1, Annualize(0.10, 182), 0.01)

	// sub-day periods are not annualized
	assert.Equal(t, 0.10, Annualize(0.10, 0))

	// total losses beyond -100% are passed through
	assert.Equal(t, -1.5, Annualize(-1.5, 100))
}

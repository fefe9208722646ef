package reporting

import "fmt"

// Percent is a return or allocation ratio: 0.05 means 5%.
// It is serialized as the raw fraction, the presentation layer scales it.
type Percent float64

// Equal compares two ratios with the precision the reports carry (4 fractional
// digits on the percentage, i.e. 1e-6 on the ratio).
func (p Percent) Equal(q Percent) bool {
	const precision = 1e-6
	diff := float64(p - q)
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", 100*float64(p))
}

// SignedString renders the ratio with an explicit sign, zero as "-".
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", 100*float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

package reporting

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with decimal precision.
// The zero value is a currency-less zero amount that combines freely with any
// currency, which keeps aggregation code free of special cases.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// M creates a Money amount in the given currency.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's full currency definition.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency
	return *money.New(0, m.cur).Currency()
}

// fraction returns the number of decimal digits the amount is carried with.
// Currency amounts are never rounded below 2 fractional digits.
func (m Money) fraction() int32 {
	f := int32(m.currency().Fraction)
	if f < 2 {
		f = 2
	}
	return f
}

// String returns the formatted representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// Zero is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && sameCur(m.cur, n.cur) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value), cur: m.cur} }

// binary operators
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Ratio returns m/n as a plain float ratio. It panics on a zero denominator,
// callers are expected to guard that case with the documented conventions.
func (m Money) Ratio(n Money) float64 { return m.value.Div(n.value).InexactFloat64() }

// AsFloat returns the amount as a float64. It is meant for statistics over
// derived series, exact currency arithmetic stays in decimal.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

func sameCur(a, b string) bool { return a == b || a == "" || b == "" }

// cur resolves the currency of a binary operation, making "" totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value.Round(m.fraction()))
	return w.MarshalJSON()
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var j struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(b, &j); err != nil {
		return fmt.Errorf("invalid money value %q: %w", string(b), err)
	}
	m.value, m.cur = j.Amount, j.Currency
	return nil
}

var _ json.Marshaler = (*Money)(nil)
var _ json.Unmarshaler = (*Money)(nil)

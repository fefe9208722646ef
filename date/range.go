package date

import (
	"fmt"
	"iter"
)

// Range represents an inclusive range of dates.
type Range struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// NewRange returns the range covering both boundaries, or an error when the
// boundaries are reversed.
func NewRange(from, to Date) (Range, error) {
	if from.After(to) {
		return Range{}, fmt.Errorf("invalid range: %s is after %s", from, to)
	}
	return Range{From: from, To: to}, nil
}

// Contains returns true when the date is included in the range (boundaries included).
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Days returns the number of calendar days in the range, boundaries included.
func (r Range) Days() int {
	if r.From.After(r.To) {
		return 0
	}
	return r.To.Sub(r.From) + 1
}

// All returns an iterator over every calendar day in the range, in order.
func (r Range) All() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for on := r.From; !on.After(r.To); on = on.Add(1) {
			if !yield(on) {
				return
			}
		}
	}
}

// Identifier computes a unique identifier for the Range.
func (r Range) Identifier() string {
	if r.From == r.To {
		return r.From.String()
	}
	return fmt.Sprintf("%s_%s", r.From, r.To)
}

func (r Range) String() string {
	if r.From == r.To {
		return r.From.String()
	}
	return fmt.Sprintf("%s to %s", r.From, r.To)
}

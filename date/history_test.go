package date

import (
	"testing"
	"time"
)

func TestHistory_ValueAsOf(t *testing.T) {
	h := &History[float64]{}
	h.Append(New(2024, time.January, 10), 100)
	h.Append(New(2024, time.January, 1), 50)
	h.Append(New(2024, time.January, 20), 200)

	tests := []struct {
		on     Date
		want   float64
		wantOk bool
	}{
		{New(2023, time.December, 31), 0, false},
		{New(2024, time.January, 1), 50, true},
		{New(2024, time.January, 9), 50, true},
		{New(2024, time.January, 10), 100, true},
		{New(2024, time.January, 15), 100, true},
		{New(2024, time.February, 1), 200, true},
	}
	for _, tt := range tests {
		got, ok := h.ValueAsOf(tt.on)
		if ok != tt.wantOk || got != tt.want {
			t.Errorf("ValueAsOf(%s) = (%v, %v), want (%v, %v)", tt.on, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestHistory_Append_overwrites(t *testing.T) {
	h := &History[float64]{}
	on := New(2024, time.March, 1)
	h.Append(on, 1).Append(on, 2)
	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
	if got, _ := h.Get(on); got != 2 {
		t.Errorf("Get = %v, want 2", got)
	}
}

func TestHistory_LatestEarliest(t *testing.T) {
	h := &History[string]{}
	if day, v := h.Latest(); !day.IsZero() || v != "" {
		t.Errorf("Latest on empty = (%v, %q), want zero values", day, v)
	}
	h.Append(New(2024, time.June, 2), "b")
	h.Append(New(2024, time.June, 1), "a")
	if day, v := h.Earliest(); day != New(2024, time.June, 1) || v != "a" {
		t.Errorf("Earliest = (%v, %q)", day, v)
	}
	if day, v := h.Latest(); day != New(2024, time.June, 2) || v != "b" {
		t.Errorf("Latest = (%v, %q)", day, v)
	}
}

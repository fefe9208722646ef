package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-01-01", New(2024, time.January, 1)},
		{"2024-1-1", New(2024, time.January, 1)},
		{"2024-02-29", New(2024, time.February, 29)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := Parse("not-a-date"); err == nil {
		t.Errorf("Parse(%q) expected an error", "not-a-date")
	}
}

func TestDate_Add_normalizes(t *testing.T) {
	got := New(2024, time.January, 31).Add(1)
	want := New(2024, time.February, 1)
	if got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
}

func TestDate_Sub(t *testing.T) {
	a := New(2024, time.January, 1)
	b := New(2024, time.January, 31)
	if got := b.Sub(a); got != 30 {
		t.Errorf("Sub = %d, want 30", got)
	}
	if got := a.Sub(b); got != -30 {
		t.Errorf("Sub = %d, want -30", got)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := New(2025, time.July, 14)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(b) != `"2025-07-14"` {
		t.Errorf("Marshal = %s, want %q", b, "2025-07-14")
	}
	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}

func TestRange_All(t *testing.T) {
	r := Range{From: New(2024, time.January, 30), To: New(2024, time.February, 2)}
	var got []Date
	for on := range r.All() {
		got = append(got, on)
	}
	want := []Date{
		New(2024, time.January, 30),
		New(2024, time.January, 31),
		New(2024, time.February, 1),
		New(2024, time.February, 2),
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if r.Days() != 4 {
		t.Errorf("Days() = %d, want 4", r.Days())
	}
}

func TestNewRange_rejectsReversed(t *testing.T) {
	if _, err := NewRange(New(2024, time.March, 2), New(2024, time.March, 1)); err == nil {
		t.Errorf("NewRange with reversed boundaries expected an error")
	}
}

package dates

import (
	"testing"
	"time"
)

func TestNormalizeLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"16/02/2026", time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)},
		{"16-02-2026", time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)},
		{"16.02.2026", time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)},
		{"16 02 2026", time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)},
		{"2026-02-16", time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)},
		{"16/02/26", time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)},
		{"16-02-26", time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)},
		{"3/3/2026", time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		if !ok {
			t.Errorf("Normalize(%q): no layout matched", tt.in)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Normalize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDayFirstWinsAmbiguity(t *testing.T) {
	// 05/04 must read as April 5th, not May 4th.
	got, ok := Normalize("05/04/2026")
	if !ok {
		t.Fatal("no layout matched")
	}
	if got.Month() != time.April || got.Day() != 5 {
		t.Errorf("got %v, want 2026-04-05", got)
	}
}

func TestNormalizeMonthFirstFallback(t *testing.T) {
	// Day 13 cannot be a month, so the US-style layout picks it up.
	got, ok := Normalize("02/13/2026")
	if !ok {
		t.Fatal("no layout matched")
	}
	if got.Month() != time.February || got.Day() != 13 {
		t.Errorf("got %v, want 2026-02-13", got)
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	for _, in := range []string{"", "   ", "pronto", "32/13/2026", "2026"} {
		if _, ok := Normalize(in); ok {
			t.Errorf("Normalize(%q): expected failure", in)
		}
	}
}

func TestNormalizePtr(t *testing.T) {
	if got := NormalizePtr(""); got != nil {
		t.Errorf("NormalizePtr(\"\") = %v, want nil", got)
	}
	got := NormalizePtr("16/02/2026")
	if got == nil || got.Day() != 16 {
		t.Errorf("NormalizePtr(16/02/2026) = %v", got)
	}
}

package face

import (
	"testing"
	"time"
)

func at(h, m, s int) time.Time {
	return time.Date(2024, 6, 1, h, m, s, 0, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:15:00")
	if err != nil {
		t.Fatalf("ParseTimeOfDay failed: %v", err)
	}
	if tod != TimeOfDay(9*3600+15*60) {
		t.Errorf("Expected 09:15:00, got %s", tod)
	}
	if tod.String() != "09:15:00" {
		t.Errorf("Expected string 09:15:00, got %s", tod)
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, s := range []string{"", "nine", "25:00:00", "09:61:00", "09:00:75"} {
		if _, err := ParseTimeOfDay(s); err == nil {
			t.Errorf("Expected error for %q", s)
		}
	}
}

func TestWindowContains(t *testing.T) {
	w, err := ParseWindow("09:00:00", "09:15:00")
	if err != nil {
		t.Fatalf("ParseWindow failed: %v", err)
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"start bound inclusive", at(9, 0, 0), true},
		{"end bound inclusive", at(9, 15, 0), true},
		{"middle", at(9, 5, 0), true},
		{"just before", at(8, 59, 59), false},
		{"just after", at(9, 15, 1), false},
		{"afternoon", at(15, 0, 0), false},
	}

	for _, tc := range tests {
		if got := w.Contains(tc.t); got != tc.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", tc.name, tc.t, got, tc.want)
		}
	}
}

func TestWindowContains_WrapsMidnight(t *testing.T) {
	w, err := ParseWindow("22:00:00", "02:00:00")
	if err != nil {
		t.Fatalf("ParseWindow failed: %v", err)
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"late evening", at(23, 0, 0), true},
		{"just after midnight", at(0, 30, 0), true},
		{"end bound", at(2, 0, 0), true},
		{"start bound", at(22, 0, 0), true},
		{"midday", at(12, 0, 0), false},
		{"just after end", at(2, 0, 1), false},
	}

	for _, tc := range tests {
		if got := w.Contains(tc.t); got != tc.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", tc.name, tc.t, got, tc.want)
		}
	}
}

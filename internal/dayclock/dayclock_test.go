package dayclock

import (
	"testing"
	"time"
)

func TestLocalDateOf(t *testing.T) {
	// 23:30 UTC on March 10.
	instant := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		offset   int
		expected Date
	}{
		{"UTC user", 0, Date{2026, time.March, 10}},
		{"one hour east rolls to the 11th", 60, Date{2026, time.March, 11}},
		{"five hours west stays on the 10th", -300, Date{2026, time.March, 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LocalDateOf(instant, tc.offset); got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}

	t.Run("non-UTC input is normalized first", func(t *testing.T) {
		est := time.FixedZone("EST", -5*3600)
		// 20:00 EST = 01:00 UTC next day.
		local := time.Date(2026, 3, 10, 20, 0, 0, 0, est)
		if got := LocalDateOf(local, 0); got != (Date{2026, time.March, 11}) {
			t.Errorf("Expected 2026-03-11, got %s", got)
		}
	})
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2026-03-10" {
		t.Errorf("Expected 2026-03-10, got %s", d)
	}
	if _, err := ParseDate("10/03/2026"); err == nil {
		t.Error("Expected error for malformed date")
	}
}

func TestAddDays(t *testing.T) {
	d := Date{2026, time.February, 28}
	if got := d.AddDays(1); got != (Date{2026, time.March, 1}) {
		t.Errorf("Expected 2026-03-01, got %s", got)
	}
	if got := (Date{2026, time.January, 1}).AddDays(-1); got != (Date{2025, time.December, 31}) {
		t.Errorf("Expected 2025-12-31, got %s", got)
	}
	if got := d.AddDays(0); got != d {
		t.Errorf("Expected %s unchanged, got %s", d, got)
	}
}

func TestStart(t *testing.T) {
	d := Date{2026, time.March, 10}
	// For a user 120 minutes east, their midnight is 22:00 UTC the day
	// before.
	expected := time.Date(2026, 3, 9, 22, 0, 0, 0, time.UTC)
	if got := d.Start(120); !got.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if got := d.Start(0); !got.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected UTC start %v", got)
	}
}

func TestOrdering(t *testing.T) {
	a := Date{2026, time.March, 10}
	b := Date{2026, time.March, 11}
	if !a.Before(b) || b.Before(a) {
		t.Error("Expected a < b")
	}
	if !b.After(a) || a.After(b) {
		t.Error("Expected b > a")
	}
	if a.Before(a) || a.After(a) {
		t.Error("Expected a == a")
	}
}

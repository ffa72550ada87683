package srs

import (
	"errors"
	"math"
	"testing"

	"github.com/tempora-app/tempora/internal/dayclock"
	"github.com/tempora-app/tempora/internal/domain"
)

var today = dayclock.Date{Year: 2026, Month: 3, Day: 10}

func TestReviewEaseFormula(t *testing.T) {
	// delta = 0.1 - (7-q) * (0.08 + (7-q) * 0.02)
	testCases := []struct {
		name     string
		quality  Quality
		expected float64
	}{
		// easy: delta = 0.1, 2.5 -> 2.6
		{"easy raises ease", Easy, 2.6},
		// good: delta = 0.1 - 2*(0.08+0.04) = -0.14, 2.5 -> 2.36
		{"good lowers ease slightly", Good, 2.36},
		// hard: delta = 0.1 - 4*(0.08+0.08) = -0.54, 2.5 -> 1.96
		{"hard lowers ease", Hard, 1.96},
		// again: delta = 0.1 - 6*(0.08+0.12) = -1.1, 2.5 -> 1.4
		{"again lowers ease sharply", Again, 1.4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Review(NewSchedule(today), tc.quality, today)
			if err != nil {
				t.Fatalf("Review returned error: %v", err)
			}
			if math.Abs(next.EaseFactor-tc.expected) > 1e-9 {
				t.Errorf("Expected ease %.2f, got %.4f", tc.expected, next.EaseFactor)
			}
		})
	}
}

func TestReviewIntervalLadder(t *testing.T) {
	s := NewSchedule(today)

	// First good review: repetitions 1, interval 1 day.
	s, err := Review(s, Good, today)
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	if s.Repetitions != 1 || s.IntervalDays != 1 {
		t.Errorf("After first review expected reps=1 interval=1, got reps=%d interval=%d", s.Repetitions, s.IntervalDays)
	}
	if s.NextReviewDate != today.AddDays(1) {
		t.Errorf("Expected due %s, got %s", today.AddDays(1), s.NextReviewDate)
	}

	// Second good review: repetitions 2, interval 3 days.
	s, err = Review(s, Good, today.AddDays(1))
	if err != nil {
		t.Fatalf("second review: %v", err)
	}
	if s.Repetitions != 2 || s.IntervalDays != 3 {
		t.Errorf("After second review expected reps=2 interval=3, got reps=%d interval=%d", s.Repetitions, s.IntervalDays)
	}

	// Third good review: interval = round(3 * ease).
	// Ease after three goods: 2.5 - 0.14 - 0.14 - 0.14 = 2.08, so round(3*2.08) = 6.
	s, err = Review(s, Good, today.AddDays(4))
	if err != nil {
		t.Fatalf("third review: %v", err)
	}
	if s.Repetitions != 3 || s.IntervalDays != 6 {
		t.Errorf("After third review expected reps=3 interval=6, got reps=%d interval=%d", s.Repetitions, s.IntervalDays)
	}
}

func TestReviewLapse(t *testing.T) {
	// A lapse resets repetitions and comes back tomorrow regardless of
	// how mature the card was.
	s := Schedule{EaseFactor: 2.2, IntervalDays: 42, Repetitions: 9, NextReviewDate: today}

	next, err := Review(s, Again, today)
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if next.Repetitions != 0 {
		t.Errorf("Expected repetitions reset to 0, got %d", next.Repetitions)
	}
	if next.IntervalDays != 1 {
		t.Errorf("Expected interval 1, got %d", next.IntervalDays)
	}
	if next.NextReviewDate != today.AddDays(1) {
		t.Errorf("Expected due tomorrow, got %s", next.NextReviewDate)
	}
	// Ease still takes the formula delta: 2.2 - 1.1 = 1.1, floored at 1.3.
	if next.EaseFactor != MinEase {
		t.Errorf("Expected ease floored at %.1f, got %.4f", MinEase, next.EaseFactor)
	}
}

func TestEaseNeverDropsBelowFloor(t *testing.T) {
	s := NewSchedule(today)
	day := today
	for i := 0; i < 20; i++ {
		var err error
		s, err = Review(s, Again, day)
		if err != nil {
			t.Fatalf("review %d: %v", i, err)
		}
		if s.EaseFactor < MinEase {
			t.Fatalf("Ease dropped below floor after %d lapses: %.4f", i+1, s.EaseFactor)
		}
		day = day.AddDays(1)
	}
}

func TestReviewRejectsInvalidQuality(t *testing.T) {
	for _, q := range []Quality{0, 2, 4, 6, 8, -1} {
		_, err := Review(NewSchedule(today), q, today)
		if err == nil {
			t.Errorf("Expected error for quality %d, got nil", q)
			continue
		}
		var invalid *domain.InvalidQualityError
		if !errors.As(err, &invalid) {
			t.Errorf("Expected InvalidQualityError for quality %d, got %v", q, err)
		}
	}
}

func TestNewScheduleIsDueImmediately(t *testing.T) {
	s := NewSchedule(today)
	if s.EaseFactor != DefaultEase || s.IntervalDays != 0 || s.Repetitions != 0 {
		t.Errorf("Unexpected new schedule: %+v", s)
	}
	if !Due(s, today) {
		t.Error("Expected a new card to be due on its creation day")
	}
	if Due(Schedule{NextReviewDate: today.AddDays(1)}, today) {
		t.Error("Expected a card due tomorrow not to be due today")
	}
	if !Due(Schedule{NextReviewDate: today.AddDays(-3)}, today) {
		t.Error("Expected an overdue card to be due")
	}
}

package streak

import (
	"testing"
	"time"

	"github.com/tempora-app/tempora/internal/dayclock"
)

const offset = 0 // UTC user

var today = dayclock.Date{Year: 2026, Month: 3, Day: 10}

// onTime builds a cycle completed in the evening of its own day.
func onTime(d dayclock.Date) CompletedCycle {
	return CompletedCycle{Date: d, CompletedAt: d.Start(offset).Add(21 * time.Hour)}
}

func TestCount(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		if got := Count(nil, today, offset); got != 0 {
			t.Errorf("Expected 0, got %d", got)
		}
	})

	t.Run("three consecutive days", func(t *testing.T) {
		cycles := []CompletedCycle{
			onTime(today),
			onTime(today.AddDays(-1)),
			onTime(today.AddDays(-2)),
		}
		if got := Count(cycles, today, offset); got != 3 {
			t.Errorf("Expected 3, got %d", got)
		}
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		// Completed today and two days ago; yesterday missing.
		cycles := []CompletedCycle{
			onTime(today),
			onTime(today.AddDays(-2)),
		}
		if got := Count(cycles, today, offset); got != 1 {
			t.Errorf("Expected 1, got %d", got)
		}
	})

	t.Run("today not yet complete anchors on yesterday", func(t *testing.T) {
		cycles := []CompletedCycle{
			onTime(today.AddDays(-1)),
			onTime(today.AddDays(-2)),
		}
		if got := Count(cycles, today, offset); got != 2 {
			t.Errorf("Expected 2, got %d", got)
		}
	})

	t.Run("neither today nor yesterday complete", func(t *testing.T) {
		cycles := []CompletedCycle{onTime(today.AddDays(-3))}
		if got := Count(cycles, today, offset); got != 0 {
			t.Errorf("Expected 0, got %d", got)
		}
	})
}

func TestCountGraceRecovery(t *testing.T) {
	yesterday := today.AddDays(-1)

	t.Run("late completion within window heals the gap", func(t *testing.T) {
		// Yesterday completed today at 10:00, inside start(yesterday)+48h.
		late := CompletedCycle{Date: yesterday, CompletedAt: today.Start(offset).Add(10 * time.Hour)}
		cycles := []CompletedCycle{
			onTime(today),
			late,
			onTime(today.AddDays(-2)),
		}
		if got := Count(cycles, today, offset); got != 3 {
			t.Errorf("Expected 3, got %d", got)
		}
	})

	t.Run("completion after the window leaves the break", func(t *testing.T) {
		// Yesterday completed two days after it started: outside the window.
		tooLate := CompletedCycle{Date: yesterday, CompletedAt: yesterday.Start(offset).Add(49 * time.Hour)}
		cycles := []CompletedCycle{
			onTime(today),
			tooLate,
			onTime(today.AddDays(-2)),
		}
		if got := Count(cycles, today, offset); got != 1 {
			t.Errorf("Expected 1, got %d", got)
		}
	})

	t.Run("grace never chains across two missed days", func(t *testing.T) {
		// Both of the two prior days completed today: only yesterday is
		// inside its own window, and the walk stops at the older gap.
		now := today.Start(offset).Add(12 * time.Hour)
		cycles := []CompletedCycle{
			onTime(today),
			{Date: today.AddDays(-1), CompletedAt: now},
			{Date: today.AddDays(-2), CompletedAt: now},
			onTime(today.AddDays(-3)),
		}
		if got := Count(cycles, today, offset); got != 2 {
			t.Errorf("Expected 2, got %d", got)
		}
	})
}

func TestCalculate(t *testing.T) {
	missed := today.AddDays(-1)
	expires := missed.Start(offset).Add(48 * time.Hour)

	t.Run("available inside window", func(t *testing.T) {
		now := expires.Add(-time.Hour)
		g := Calculate(missed, now, offset)
		if !g.Available {
			t.Fatal("Expected grace available")
		}
		if !g.ExpiresAt.Equal(expires) {
			t.Errorf("Expected expiry %v, got %v", expires, g.ExpiresAt)
		}
	})

	t.Run("unavailable at and after expiry", func(t *testing.T) {
		if g := Calculate(missed, expires, offset); g.Available {
			t.Error("Expected grace expired exactly at the boundary")
		}
		if g := Calculate(missed, expires.Add(time.Minute), offset); g.Available {
			t.Error("Expected grace expired after the boundary")
		}
	})

	t.Run("offset shifts the window", func(t *testing.T) {
		// A user 300 minutes east starts their day 5h earlier in UTC.
		east := 300
		g := Calculate(missed, missed.Start(east).Add(47*time.Hour), east)
		if !g.Available {
			t.Error("Expected grace available for eastern user")
		}
		if got := g.ExpiresAt; !got.Equal(missed.Start(east).Add(48 * time.Hour)) {
			t.Errorf("Unexpected expiry %v", got)
		}
	})
}

// Package streak computes consecutive-day completion streaks and the
// grace window that lets a single missed day be recovered late.
package streak

import (
	"time"

	"github.com/tempora-app/tempora/internal/dayclock"
)

// graceWindow is how long after the start of a missed day its cycle may
// still be completed and count toward streak continuity: the whole of the
// missed day plus one full calendar day after it.
const graceWindow = 48 * time.Hour

// CompletedCycle is the slice of a daily cycle the streak walk needs.
type CompletedCycle struct {
	Date        dayclock.Date
	CompletedAt time.Time // when the evening phase was recorded
}

// Count walks backward from today over completed cycles, most recent first,
// and returns the number of consecutive days ending today (or ending
// yesterday, when today is not yet complete).
//
// A cycle on date D counts toward continuity only if it was completed
// before Start(D) + 48h. On-time completions always satisfy this; a cycle
// completed one day late (within its grace window) counts the same as an
// on-time one; anything later is recorded but leaves the streak broken.
// The 48h bound also means grace never chains: of two consecutive missed
// days, only the most recent can still be inside its window.
func Count(cycles []CompletedCycle, today dayclock.Date, offsetMinutes int) int {
	if len(cycles) == 0 {
		return 0
	}

	// If today is not complete the streak anchors on yesterday.
	anchor := today
	if cycles[0].Date != today {
		anchor = today.AddDays(-1)
	}

	count := 0
	for i, c := range cycles {
		expected := anchor.AddDays(-i)
		if c.Date != expected {
			break
		}
		deadline := c.Date.Start(offsetMinutes).Add(graceWindow)
		if !c.CompletedAt.Before(deadline) {
			break
		}
		count++
	}
	return count
}

// GracePeriod describes whether a missed day is still recoverable.
type GracePeriod struct {
	Available bool
	ExpiresAt time.Time // zero when Available is false
}

// Calculate returns the grace window for a missed date: recovery is
// available while now is before Start(missed) + 48h, i.e. until the end of
// the calendar day after the missed one.
func Calculate(missed dayclock.Date, now time.Time, offsetMinutes int) GracePeriod {
	expires := missed.Start(offsetMinutes).Add(graceWindow)
	if now.Before(expires) {
		return GracePeriod{Available: true, ExpiresAt: expires}
	}
	return GracePeriod{}
}

// Package phase derives the state of a daily cycle and applies phase
// transitions. All decisions are deterministic functions of the cycle
// record and the supplied clock time; nothing here touches storage.
package phase

import (
	"time"

	"github.com/tempora-app/tempora/internal/domain"
)

// Phase is the position of a user's daily ritual.
type Phase string

const (
	NoCycle  Phase = "no_cycle" // no DailyCycle row exists for today
	Morning  Phase = "morning"  // cycle exists, morning not yet recorded
	Midday   Phase = "midday"   // morning done, midday pending
	Evening  Phase = "evening"  // midday done, evening pending
	Complete Phase = "complete" // evening done
)

// Current derives the phase from the cycle's completion timestamps.
// The phase is never stored: recomputing it on every read keeps multiple
// devices from drifting out of sync.
func Current(c *domain.DailyCycle) Phase {
	switch {
	case c == nil:
		return NoCycle
	case c.EveningCompletedAt != nil:
		return Complete
	case c.MiddayCompletedAt != nil:
		return Evening
	case c.MorningCompletedAt != nil:
		return Midday
	default:
		return Morning
	}
}

// ApplyMorning marks the morning phase complete. Re-entry before midday is
// allowed and leaves MorningCompletedAt at its first value: morning axis
// values are append-only calibration events, so a re-submission adds events
// rather than overwriting the cycle. Once midday is committed the morning
// cannot be redone.
func ApplyMorning(c *domain.DailyCycle, now time.Time) error {
	if c.MiddayCompletedAt != nil {
		return &domain.PhaseOrderError{
			Op:       "start morning",
			Expected: string(Morning),
			Actual:   string(Current(c)),
		}
	}
	if c.MorningCompletedAt == nil {
		c.MorningCompletedAt = &now
	}
	return nil
}

// ApplyMidday commits the intended action for the day. Requires the morning
// to be complete and the midday not yet recorded.
func ApplyMidday(c *domain.DailyCycle, intendedAction, decisivePrompt string, now time.Time) error {
	if c == nil || c.MorningCompletedAt == nil || c.MiddayCompletedAt != nil {
		return &domain.PhaseOrderError{
			Op:       "complete midday",
			Expected: string(Midday),
			Actual:   string(Current(c)),
		}
	}
	c.MiddayCompletedAt = &now
	c.IntendedAction = intendedAction
	c.DecisivePrompt = decisivePrompt
	return nil
}

// ApplyEvening records what was done and observed, closing the cycle.
// Requires the midday to be complete and the evening not yet recorded.
func ApplyEvening(c *domain.DailyCycle, actionTaken, observedEffect, reflection string, now time.Time) error {
	if c == nil || c.MiddayCompletedAt == nil || c.EveningCompletedAt != nil {
		return &domain.PhaseOrderError{
			Op:       "complete evening",
			Expected: string(Evening),
			Actual:   string(Current(c)),
		}
	}
	c.EveningCompletedAt = &now
	c.ActionTaken = actionTaken
	c.ObservedEffect = observedEffect
	c.Reflection = reflection
	c.IsComplete = true
	return nil
}

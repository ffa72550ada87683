package phase

import (
	"errors"
	"testing"
	"time"

	"github.com/tempora-app/tempora/internal/dayclock"
	"github.com/tempora-app/tempora/internal/domain"
)

func newCycle() *domain.DailyCycle {
	return &domain.DailyCycle{
		UserID:    "u1",
		CycleDate: dayclock.Date{Year: 2026, Month: 3, Day: 10},
	}
}

func TestCurrent(t *testing.T) {
	now := time.Now()

	t.Run("nil cycle is no_cycle", func(t *testing.T) {
		if got := Current(nil); got != NoCycle {
			t.Errorf("Expected %s, got %s", NoCycle, got)
		}
	})

	t.Run("phases derive from timestamps", func(t *testing.T) {
		c := newCycle()
		if got := Current(c); got != Morning {
			t.Errorf("Expected %s, got %s", Morning, got)
		}
		c.MorningCompletedAt = &now
		if got := Current(c); got != Midday {
			t.Errorf("Expected %s, got %s", Midday, got)
		}
		c.MiddayCompletedAt = &now
		if got := Current(c); got != Evening {
			t.Errorf("Expected %s, got %s", Evening, got)
		}
		c.EveningCompletedAt = &now
		if got := Current(c); got != Complete {
			t.Errorf("Expected %s, got %s", Complete, got)
		}
	})
}

func TestApplyMorning(t *testing.T) {
	t.Run("sets timestamp once", func(t *testing.T) {
		c := newCycle()
		first := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
		if err := ApplyMorning(c, first); err != nil {
			t.Fatalf("ApplyMorning: %v", err)
		}
		if c.MorningCompletedAt == nil || !c.MorningCompletedAt.Equal(first) {
			t.Fatalf("Expected morning timestamp %v, got %v", first, c.MorningCompletedAt)
		}

		// Re-entry before midday keeps the first timestamp.
		second := first.Add(30 * time.Minute)
		if err := ApplyMorning(c, second); err != nil {
			t.Fatalf("ApplyMorning re-entry: %v", err)
		}
		if !c.MorningCompletedAt.Equal(first) {
			t.Errorf("Expected timestamp unchanged at %v, got %v", first, c.MorningCompletedAt)
		}
	})

	t.Run("rejected after midday", func(t *testing.T) {
		c := newCycle()
		now := time.Now()
		c.MorningCompletedAt = &now
		c.MiddayCompletedAt = &now

		err := ApplyMorning(c, now)
		var phaseErr *domain.PhaseOrderError
		if !errors.As(err, &phaseErr) {
			t.Fatalf("Expected PhaseOrderError, got %v", err)
		}
	})
}

func TestApplyMidday(t *testing.T) {
	now := time.Now()

	t.Run("requires morning", func(t *testing.T) {
		c := newCycle()
		err := ApplyMidday(c, "call the bank", "", now)
		var phaseErr *domain.PhaseOrderError
		if !errors.As(err, &phaseErr) {
			t.Fatalf("Expected PhaseOrderError, got %v", err)
		}
		if c.MiddayCompletedAt != nil || c.IntendedAction != "" {
			t.Error("Expected no mutation on rejected transition")
		}
	})

	t.Run("commits intended action once", func(t *testing.T) {
		c := newCycle()
		c.MorningCompletedAt = &now
		if err := ApplyMidday(c, "call the bank", "what would the decisive you do?", now); err != nil {
			t.Fatalf("ApplyMidday: %v", err)
		}
		if c.IntendedAction != "call the bank" {
			t.Errorf("Expected intended action stored, got %q", c.IntendedAction)
		}

		err := ApplyMidday(c, "something else", "", now)
		var phaseErr *domain.PhaseOrderError
		if !errors.As(err, &phaseErr) {
			t.Fatalf("Expected PhaseOrderError on second midday, got %v", err)
		}
	})
}

func TestApplyEvening(t *testing.T) {
	now := time.Now()

	t.Run("requires midday and mutates nothing on rejection", func(t *testing.T) {
		c := newCycle()
		c.MorningCompletedAt = &now

		err := ApplyEvening(c, "did it", "felt lighter", "", now)
		var phaseErr *domain.PhaseOrderError
		if !errors.As(err, &phaseErr) {
			t.Fatalf("Expected PhaseOrderError, got %v", err)
		}
		if c.EveningCompletedAt != nil || c.IsComplete || c.ActionTaken != "" {
			t.Error("Expected no mutation on rejected transition")
		}
	})

	t.Run("closes the cycle", func(t *testing.T) {
		c := newCycle()
		c.MorningCompletedAt = &now
		c.MiddayCompletedAt = &now

		if err := ApplyEvening(c, "did it", "felt lighter", "long day", now); err != nil {
			t.Fatalf("ApplyEvening: %v", err)
		}
		if !c.IsComplete || c.EveningCompletedAt == nil {
			t.Error("Expected cycle marked complete with evening timestamp")
		}
		if c.ActionTaken != "did it" || c.ObservedEffect != "felt lighter" || c.Reflection != "long day" {
			t.Errorf("Unexpected evening fields: %+v", c)
		}
	})

	t.Run("phase monotonicity holds after full day", func(t *testing.T) {
		c := newCycle()
		if err := ApplyMorning(c, now); err != nil {
			t.Fatal(err)
		}
		if err := ApplyMidday(c, "a", "", now); err != nil {
			t.Fatal(err)
		}
		if err := ApplyEvening(c, "b", "c", "", now); err != nil {
			t.Fatal(err)
		}
		if c.EveningCompletedAt != nil && (c.MiddayCompletedAt == nil || c.MorningCompletedAt == nil) {
			t.Error("Evening set without earlier phases")
		}
	})
}

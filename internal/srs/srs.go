// Package srs implements the four-bucket SM-2 scheduler used for flashcard
// reviews. Review qualities map onto a 0-7 scale so the classic SM-2 ease
// formula keeps its shape with only four answer buttons.
package srs

import (
	"math"

	"github.com/tempora-app/tempora/internal/dayclock"
	"github.com/tempora-app/tempora/internal/domain"
)

// Quality is the user's response to a review.
type Quality int

const (
	Again Quality = 1 // forgot; lapse
	Hard  Quality = 3
	Good  Quality = 5
	Easy  Quality = 7
)

const (
	// DefaultEase is the ease factor assigned to new cards.
	DefaultEase = 2.5
	// MinEase is the floor below which the ease factor never drops.
	MinEase = 1.3
)

// Valid reports whether q is one of the four defined buckets. Out-of-range
// qualities are rejected, never clamped: scheduling correctness depends on
// the buckets staying discrete.
func Valid(q Quality) bool {
	switch q {
	case Again, Hard, Good, Easy:
		return true
	}
	return false
}

// Schedule is the review state of one card.
type Schedule struct {
	EaseFactor     float64
	IntervalDays   int
	Repetitions    int
	NextReviewDate dayclock.Date
}

// NewSchedule returns the state of a freshly created card: due immediately.
func NewSchedule(today dayclock.Date) Schedule {
	return Schedule{
		EaseFactor:     DefaultEase,
		IntervalDays:   0,
		Repetitions:    0,
		NextReviewDate: today,
	}
}

// Review applies one review to a schedule and returns the next state.
//
// The ease update follows SM-2 on the 0-7 quality scale:
//
//	delta = 0.1 - (7-q) * (0.08 + (7-q) * 0.02)
//	EF' = max(1.3, EF + delta)
//
// quality < 3 is a lapse: repetitions reset to 0 and the card comes back
// tomorrow. The ease still takes the (negative) delta from the formula but
// is not penalized further. Successful reviews walk the interval ladder
// 1 day, 3 days, then round(previous * EF').
func Review(s Schedule, q Quality, today dayclock.Date) (Schedule, error) {
	if !Valid(q) {
		return Schedule{}, &domain.InvalidQualityError{Quality: int(q)}
	}

	miss := float64(7 - q)
	ease := s.EaseFactor + 0.1 - miss*(0.08+miss*0.02)
	if ease < MinEase {
		ease = MinEase
	}

	next := Schedule{EaseFactor: ease}

	if q < Hard {
		// Lapse: restart the ladder, due tomorrow.
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		next.Repetitions = s.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 3
		default:
			next.IntervalDays = int(math.Round(float64(s.IntervalDays) * ease))
		}
	}
	next.NextReviewDate = today.AddDays(next.IntervalDays)

	return next, nil
}

// Due reports whether a schedule is due on the given day.
func Due(s Schedule, today dayclock.Date) bool {
	return !s.NextReviewDate.After(today)
}

package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateCycle signals that a daily cycle already exists for the
// requested date. It never escapes the engine: concurrent morning starts
// converge on the existing row instead.
var ErrDuplicateCycle = errors.New("daily cycle already exists for date")

// PhaseOrderError reports a phase transition requested out of order.
// Use errors.As to recover the expected and actual phases for the caller.
type PhaseOrderError struct {
	Op       string // the transition that was attempted
	Expected string // the phase the cycle needed to be in
	Actual   string // the phase the cycle is in
}

func (e *PhaseOrderError) Error() string {
	return fmt.Sprintf("%s: cycle is in phase %q, expected %q", e.Op, e.Actual, e.Expected)
}

// InvalidQualityError reports a review quality outside the discrete set
// {1, 3, 5, 7}. Qualities are rejected, never clamped.
type InvalidQualityError struct {
	Quality int
}

func (e *InvalidQualityError) Error() string {
	return fmt.Sprintf("invalid review quality %d, must be one of 1 (again), 3 (hard), 5 (good), 7 (easy)", e.Quality)
}

// NotFoundError reports that a referenced record does not exist or does not
// belong to the requesting user. The two cases are deliberately
// indistinguishable to the caller.
type NotFoundError struct {
	Kind string // "axis", "cycle", "flashcard"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

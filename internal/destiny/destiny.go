// Package destiny aggregates the latest calibration of each axis into a
// single 0-100 mastery score.
package destiny

import (
	"math"
	"sort"
	"time"
)

// Level is a deterministic bucket of the destiny score.
type Level string

const (
	Uncalibrated Level = "uncalibrated" // no axis has any calibration
	Critical     Level = "critical"     // score < 30
	NeedsWork    Level = "needs_work"   // 30-49
	Growing      Level = "growing"      // 50-69
	Strong       Level = "strong"       // 70-89
	Mastery      Level = "mastery"      // >= 90
)

// AxisValue is the latest calibration of one axis, paired with the axis
// creation time for stable tie-breaking.
type AxisValue struct {
	AxisID       int64
	LeftLabel    string
	RightLabel   string
	Value        int
	CalibratedAt time.Time
	AxisCreated  time.Time
}

// Score is the aggregate over all of a user's axes. Score is nil when no
// axis has been calibrated yet.
type Score struct {
	Score           *int
	CalibratedCount int
	TotalAxes       int
	Level           Level
}

// Aggregate computes the destiny score from the latest value per calibrated
// axis. The mean is taken in floating point over axes that have at least one
// calibration, then rounded half-up to the nearest integer.
func Aggregate(latest []AxisValue, totalAxes int) Score {
	if len(latest) == 0 {
		return Score{TotalAxes: totalAxes, Level: Uncalibrated}
	}

	sum := 0
	for _, v := range latest {
		sum += v.Value
	}
	mean := float64(sum) / float64(len(latest))
	score := int(math.Floor(mean + 0.5)) // round half-up; values are non-negative

	return Score{
		Score:           &score,
		CalibratedCount: len(latest),
		TotalAxes:       totalAxes,
		Level:           LevelOf(score),
	}
}

// LevelOf buckets a score. Boundaries are inclusive on the lower bound.
func LevelOf(score int) Level {
	switch {
	case score >= 90:
		return Mastery
	case score >= 70:
		return Strong
	case score >= 50:
		return Growing
	case score >= 30:
		return NeedsWork
	default:
		return Critical
	}
}

// LowestN returns the n calibrated axes with the lowest latest values,
// ascending. Ties break by axis creation order so repeated calls with the
// same data return the same axes. The input slice is not modified.
func LowestN(latest []AxisValue, n int) []AxisValue {
	if n <= 0 {
		return nil
	}
	sorted := make([]AxisValue, len(latest))
	copy(sorted, latest)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value < sorted[j].Value
		}
		return sorted[i].AxisCreated.Before(sorted[j].AxisCreated)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

package domain

import (
	"time"

	"github.com/tempora-app/tempora/internal/dayclock"
)

// CalibrationType identifies the phase of the daily ritual a calibration
// was recorded in.
type CalibrationType string

const (
	CalibrationMorning CalibrationType = "morning"
	CalibrationMidday  CalibrationType = "midday"
	CalibrationEvening CalibrationType = "evening"
	CalibrationManual  CalibrationType = "manual"
)

// ValidCalibrationType reports whether t is one of the defined types.
func ValidCalibrationType(t CalibrationType) bool {
	switch t {
	case CalibrationMorning, CalibrationMidday, CalibrationEvening, CalibrationManual:
		return true
	}
	return false
}

// AxisDefinition is a named bipolar spectrum a user calibrates daily,
// e.g. "Blame <-> Ownership". Identity is immutable once created; deleting
// an axis orphans its historical calibrations rather than cascading.
type AxisDefinition struct {
	ID         int64
	UserID     string
	LeftLabel  string
	RightLabel string
	Emoji      string
	ColorStart string
	ColorEnd   string
	CreatedAt  time.Time
}

// AxisCalibration is a single append-only calibration event. The current
// value of an axis is the calibration with the latest ClientTimestamp.
type AxisCalibration struct {
	ID              int64
	UserID          string
	AxisID          int64
	Value           int // 0-100
	CalibrationType CalibrationType
	ClientTimestamp time.Time
}

// DailyCycle is the morning/midday/evening ritual record for one local
// calendar day. At most one cycle exists per user per date.
type DailyCycle struct {
	ID                 int64
	UserID             string
	CycleDate          dayclock.Date
	MorningCompletedAt *time.Time
	MiddayCompletedAt  *time.Time
	EveningCompletedAt *time.Time
	IntendedAction     string
	DecisivePrompt     string
	ActionTaken        string
	ObservedEffect     string
	Reflection         string
	IsComplete         bool
}

// Flashcard is a question-answer pair together with its review schedule.
// The ID is a content hash of the normalized front/back/deck, so identical
// cards collapse to one row per user.
type Flashcard struct {
	ID        string
	UserID    string
	Front     string
	Back      string
	Deck      string
	CreatedAt time.Time

	EaseFactor     float64
	IntervalDays   int
	Repetitions    int
	NextReviewDate dayclock.Date
}

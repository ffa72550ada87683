// Package engine wires the pure calculators (phase, streak, destiny, srs)
// to storage and exposes the operations the API layer consumes. It holds
// no state of its own between calls: every answer derives from persisted
// records and the caller's local day.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tempora-app/tempora/internal/dayclock"
	"github.com/tempora-app/tempora/internal/destiny"
	"github.com/tempora-app/tempora/internal/domain"
	"github.com/tempora-app/tempora/internal/phase"
	"github.com/tempora-app/tempora/internal/storage"
	"github.com/tempora-app/tempora/internal/streak"
)

// streakLookback caps how many completed cycles the streak walk loads.
const streakLookback = 400

// Engine is the temporal practice engine.
type Engine struct {
	db  *storage.DB
	log *slog.Logger
	now func() time.Time
}

// New creates an engine over the given storage.
func New(db *storage.DB, logger *slog.Logger) *Engine {
	return &Engine{db: db, log: logger, now: time.Now}
}

// DayView is the state of a user's ritual for one day, derived fresh on
// every read.
type DayView struct {
	Date   dayclock.Date
	Phase  phase.Phase
	Cycle  *domain.DailyCycle // nil when the day has not been started
	Streak int
}

// today resolves the user's local calendar day from their timezone offset.
func (e *Engine) today(offsetMinutes int) dayclock.Date {
	return dayclock.LocalDateOf(e.now(), offsetMinutes)
}

// Today returns the user's current day view. It never fails on an
// unstarted day: the view simply carries a nil cycle in phase no_cycle.
func (e *Engine) Today(userID string, offsetMinutes int) (*DayView, error) {
	today := e.today(offsetMinutes)
	cycle, err := e.db.FindCycleByDate(userID, today)
	if err != nil {
		return nil, err
	}
	count, err := e.Streak(userID, offsetMinutes)
	if err != nil {
		return nil, err
	}
	return &DayView{
		Date:   today,
		Phase:  phase.Current(cycle),
		Cycle:  cycle,
		Streak: count,
	}, nil
}

// CalibrationInput is one axis value submitted with a morning start or a
// midday recalibration.
type CalibrationInput struct {
	AxisID int64
	Value  int
}

// targetDate resolves an explicit cycle date, defaulting to today. Grace
// recovery passes yesterday's date explicitly; everything else leaves it
// nil.
func (e *Engine) targetDate(explicit *dayclock.Date, offsetMinutes int) dayclock.Date {
	if explicit != nil {
		return *explicit
	}
	return e.today(offsetMinutes)
}

// StartMorning records the morning calibrations and marks the morning
// phase complete. Calling it again before midday appends fresh calibration
// events without touching the completion timestamp. cycleDate is normally
// nil (today); grace recovery names the missed day explicitly.
func (e *Engine) StartMorning(userID string, offsetMinutes int, calibrations []CalibrationInput, cycleDate *dayclock.Date) (*domain.DailyCycle, error) {
	date := e.targetDate(cycleDate, offsetMinutes)
	now := e.now()

	cycle, err := e.db.GetOrCreateCycle(userID, date)
	if err != nil {
		return nil, err
	}
	if err := phase.ApplyMorning(cycle, now); err != nil {
		return nil, err
	}

	for _, in := range calibrations {
		if _, err := e.recordCalibration(userID, in.AxisID, in.Value, domain.CalibrationMorning, now); err != nil {
			return nil, err
		}
	}

	if err := e.db.UpdateCycle(cycle); err != nil {
		return nil, err
	}
	e.log.Info("morning started", "user", userID, "date", date.String(), "calibrations", len(calibrations))
	return cycle, nil
}

// CompleteMidday commits the day's intended action.
func (e *Engine) CompleteMidday(userID string, offsetMinutes int, intendedAction, decisivePrompt string, cycleDate *dayclock.Date) (*domain.DailyCycle, error) {
	date := e.targetDate(cycleDate, offsetMinutes)

	cycle, err := e.db.FindCycleByDate(userID, date)
	if err != nil {
		return nil, err
	}
	if err := phase.ApplyMidday(cycle, intendedAction, decisivePrompt, e.now()); err != nil {
		return nil, err
	}
	if err := e.db.UpdateCycle(cycle); err != nil {
		return nil, err
	}
	e.log.Info("midday completed", "user", userID, "date", date.String())
	return cycle, nil
}

// CompleteEvening records the day's outcome and closes the cycle.
func (e *Engine) CompleteEvening(userID string, offsetMinutes int, actionTaken, observedEffect, reflection string, cycleDate *dayclock.Date) (*domain.DailyCycle, error) {
	date := e.targetDate(cycleDate, offsetMinutes)

	cycle, err := e.db.FindCycleByDate(userID, date)
	if err != nil {
		return nil, err
	}
	if err := phase.ApplyEvening(cycle, actionTaken, observedEffect, reflection, e.now()); err != nil {
		return nil, err
	}
	if err := e.db.UpdateCycle(cycle); err != nil {
		return nil, err
	}
	e.log.Info("evening completed", "user", userID, "date", date.String())
	return cycle, nil
}

// History returns the user's cycles for the last n calendar days, newest
// first. Days that were never started have no row.
func (e *Engine) History(userID string, offsetMinutes, days int) ([]domain.DailyCycle, error) {
	if days < 1 {
		days = 1
	}
	since := e.today(offsetMinutes).AddDays(-(days - 1))
	return e.db.GetCyclesSince(userID, since)
}

// Streak computes the user's consecutive-day completion streak ending
// today (or yesterday, while today is still in progress).
func (e *Engine) Streak(userID string, offsetMinutes int) (int, error) {
	cycles, err := e.db.GetCompletedCycles(userID, streakLookback)
	if err != nil {
		return 0, err
	}
	completed := make([]streak.CompletedCycle, 0, len(cycles))
	for _, c := range cycles {
		if c.EveningCompletedAt == nil {
			continue // is_complete without a timestamp should not exist
		}
		completed = append(completed, streak.CompletedCycle{
			Date:        c.CycleDate,
			CompletedAt: *c.EveningCompletedAt,
		})
	}
	return streak.Count(completed, e.today(offsetMinutes), offsetMinutes), nil
}

// GracePeriod reports whether yesterday's missed cycle is still
// recoverable. The window only opens when yesterday was started but not
// completed; it never reaches further back than one day.
func (e *Engine) GracePeriod(userID string, offsetMinutes int) (streak.GracePeriod, error) {
	yesterday := e.today(offsetMinutes).AddDays(-1)
	cycle, err := e.db.FindCycleByDate(userID, yesterday)
	if err != nil {
		return streak.GracePeriod{}, err
	}
	if cycle == nil || cycle.IsComplete {
		return streak.GracePeriod{}, nil
	}
	return streak.Calculate(yesterday, e.now(), offsetMinutes), nil
}

// CreateAxis defines a new axis for the user.
func (e *Engine) CreateAxis(userID, leftLabel, rightLabel, emoji, colorStart, colorEnd string) (*domain.AxisDefinition, error) {
	axis := &domain.AxisDefinition{
		UserID:     userID,
		LeftLabel:  leftLabel,
		RightLabel: rightLabel,
		Emoji:      emoji,
		ColorStart: colorStart,
		ColorEnd:   colorEnd,
		CreatedAt:  e.now(),
	}
	if err := e.db.InsertAxis(axis); err != nil {
		return nil, err
	}
	e.log.Info("axis created", "user", userID, "axis", axis.ID)
	return axis, nil
}

// ListAxes returns the user's axes in creation order.
func (e *Engine) ListAxes(userID string) ([]domain.AxisDefinition, error) {
	return e.db.GetAxes(userID)
}

// DeleteAxis removes an axis definition. Its calibration history stays
// behind, orphaned rather than cascaded.
func (e *Engine) DeleteAxis(userID string, axisID int64) error {
	axis, err := e.db.FindAxisByID(userID, axisID)
	if err != nil {
		return err
	}
	if axis == nil {
		return &domain.NotFoundError{Kind: "axis", ID: fmt.Sprint(axisID)}
	}
	if err := e.db.DeleteAxis(userID, axisID); err != nil {
		return err
	}
	e.log.Info("axis deleted", "user", userID, "axis", axisID)
	return nil
}

// RecordCalibration appends a calibration event for one axis.
func (e *Engine) RecordCalibration(userID string, axisID int64, value int, calType domain.CalibrationType) (*domain.AxisCalibration, error) {
	return e.recordCalibration(userID, axisID, value, calType, e.now())
}

func (e *Engine) recordCalibration(userID string, axisID int64, value int, calType domain.CalibrationType, at time.Time) (*domain.AxisCalibration, error) {
	if value < 0 || value > 100 {
		return nil, fmt.Errorf("calibration value %d out of range 0-100", value)
	}
	if !domain.ValidCalibrationType(calType) {
		return nil, fmt.Errorf("unknown calibration type %q", calType)
	}
	axis, err := e.db.FindAxisByID(userID, axisID)
	if err != nil {
		return nil, err
	}
	if axis == nil {
		return nil, &domain.NotFoundError{Kind: "axis", ID: fmt.Sprint(axisID)}
	}

	cal := &domain.AxisCalibration{
		UserID:          userID,
		AxisID:          axisID,
		Value:           value,
		CalibrationType: calType,
		ClientTimestamp: at,
	}
	if err := e.db.InsertCalibration(cal); err != nil {
		return nil, err
	}
	return cal, nil
}

// CalibrationHistory returns an axis's calibration events, newest first.
func (e *Engine) CalibrationHistory(userID string, axisID int64, limit int) ([]domain.AxisCalibration, error) {
	axis, err := e.db.FindAxisByID(userID, axisID)
	if err != nil {
		return nil, err
	}
	if axis == nil {
		return nil, &domain.NotFoundError{Kind: "axis", ID: fmt.Sprint(axisID)}
	}
	if limit < 1 {
		limit = 30
	}
	return e.db.GetCalibrations(userID, axisID, limit)
}

// DestinyScore aggregates the latest calibration of each axis into the
// user's 0-100 mastery score.
func (e *Engine) DestinyScore(userID string) (destiny.Score, error) {
	latest, total, err := e.latestAxisValues(userID)
	if err != nil {
		return destiny.Score{}, err
	}
	return destiny.Aggregate(latest, total), nil
}

// LowestAxes returns the n calibrated axes with the lowest latest values,
// used to pick recalibration targets for the midday phase.
func (e *Engine) LowestAxes(userID string, n int) ([]destiny.AxisValue, error) {
	latest, _, err := e.latestAxisValues(userID)
	if err != nil {
		return nil, err
	}
	return destiny.LowestN(latest, n), nil
}

func (e *Engine) latestAxisValues(userID string) ([]destiny.AxisValue, int, error) {
	axes, err := e.db.GetAxes(userID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := e.db.GetLatestCalibrations(userID)
	if err != nil {
		return nil, 0, err
	}
	latest := make([]destiny.AxisValue, 0, len(rows))
	for _, r := range rows {
		latest = append(latest, destiny.AxisValue{
			AxisID:       r.AxisID,
			LeftLabel:    r.LeftLabel,
			RightLabel:   r.RightLabel,
			Value:        r.Value,
			CalibratedAt: r.CalibratedAt,
			AxisCreated:  r.AxisCreated,
		})
	}
	return latest, len(axes), nil
}

package storage

import (
	"database/sql"
	"fmt"

	"github.com/tempora-app/tempora/internal/dayclock"
	"github.com/tempora-app/tempora/internal/domain"
)

const cycleColumns = `id, user_id, cycle_date, morning_completed_at, midday_completed_at,
	evening_completed_at, intended_action, decisive_prompt, action_taken, observed_effect, reflection, is_complete`

func scanCycle(row interface{ Scan(...any) error }) (*domain.DailyCycle, error) {
	var c domain.DailyCycle
	var date string
	var morning, midday, evening sql.NullTime
	err := row.Scan(&c.ID, &c.UserID, &date, &morning, &midday, &evening,
		&c.IntendedAction, &c.DecisivePrompt, &c.ActionTaken, &c.ObservedEffect, &c.Reflection, &c.IsComplete)
	if err != nil {
		return nil, err
	}
	c.CycleDate, err = scanDate(date)
	if err != nil {
		return nil, err
	}
	c.MorningCompletedAt = timePtr(morning)
	c.MiddayCompletedAt = timePtr(midday)
	c.EveningCompletedAt = timePtr(evening)
	return &c, nil
}

// GetOrCreateCycle returns the cycle for the given user and date, creating
// an empty one if none exists. The insert is conflict-tolerant on
// (user_id, cycle_date), so two concurrent morning starts both land on the
// same row and the duplicate never surfaces to the caller.
func (db *DB) GetOrCreateCycle(userID string, date dayclock.Date) (*domain.DailyCycle, error) {
	_, err := db.conn.Exec(`
		INSERT INTO daily_cycles (user_id, cycle_date)
		VALUES (?, ?)
		ON CONFLICT(user_id, cycle_date) DO NOTHING
	`, userID, date.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create cycle for %s: %w", date, err)
	}

	cycle, err := db.FindCycleByDate(userID, date)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, fmt.Errorf("cycle for %s missing after get-or-create", date)
	}
	return cycle, nil
}

// FindCycleByDate retrieves the user's cycle for one date, or nil if the
// day was never started.
func (db *DB) FindCycleByDate(userID string, date dayclock.Date) (*domain.DailyCycle, error) {
	row := db.conn.QueryRow(`
		SELECT `+cycleColumns+` FROM daily_cycles
		WHERE user_id = ? AND cycle_date = ?
	`, userID, date.String())

	cycle, err := scanCycle(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cycle for %s: %w", date, err)
	}
	return cycle, nil
}

// UpdateCycle persists the mutable fields of a cycle after a phase
// transition.
func (db *DB) UpdateCycle(c *domain.DailyCycle) error {
	_, err := db.conn.Exec(`
		UPDATE daily_cycles
		SET morning_completed_at = ?, midday_completed_at = ?, evening_completed_at = ?,
		    intended_action = ?, decisive_prompt = ?, action_taken = ?, observed_effect = ?, reflection = ?, is_complete = ?
		WHERE id = ?
	`,
		nullable(c.MorningCompletedAt),
		nullable(c.MiddayCompletedAt),
		nullable(c.EveningCompletedAt),
		c.IntendedAction, c.DecisivePrompt, c.ActionTaken, c.ObservedEffect, c.Reflection, c.IsComplete,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cycle %d: %w", c.ID, err)
	}
	return nil
}

// GetCyclesSince retrieves the user's cycles on or after the given date,
// newest first.
func (db *DB) GetCyclesSince(userID string, since dayclock.Date) ([]domain.DailyCycle, error) {
	rows, err := db.conn.Query(`
		SELECT `+cycleColumns+` FROM daily_cycles
		WHERE user_id = ? AND cycle_date >= ?
		ORDER BY cycle_date DESC
	`, userID, since.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get cycles: %w", err)
	}
	defer rows.Close()

	var cycles []domain.DailyCycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cycle row: %w", err)
		}
		cycles = append(cycles, *c)
	}
	return cycles, rows.Err()
}

// GetCompletedCycles retrieves the user's completed cycles, newest first,
// capped at limit. This is the streak calculator's input.
func (db *DB) GetCompletedCycles(userID string, limit int) ([]domain.DailyCycle, error) {
	rows, err := db.conn.Query(`
		SELECT `+cycleColumns+` FROM daily_cycles
		WHERE user_id = ? AND is_complete = 1
		ORDER BY cycle_date DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed cycles: %w", err)
	}
	defer rows.Close()

	var cycles []domain.DailyCycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan completed cycle row: %w", err)
		}
		cycles = append(cycles, *c)
	}
	return cycles, rows.Err()
}

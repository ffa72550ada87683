package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tempora-app/tempora/internal/domain"
)

// InsertAxis stores a new axis definition and fills in its generated ID.
func (db *DB) InsertAxis(a *domain.AxisDefinition) error {
	res, err := db.conn.Exec(`
		INSERT INTO axes (user_id, left_label, right_label, emoji, color_start, color_end, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.UserID, a.LeftLabel, a.RightLabel, a.Emoji, a.ColorStart, a.ColorEnd, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert axis: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get axis insert ID: %w", err)
	}
	a.ID = id
	return nil
}

// FindAxisByID retrieves one of the user's axes, or nil if it does not
// exist or belongs to someone else.
func (db *DB) FindAxisByID(userID string, id int64) (*domain.AxisDefinition, error) {
	var a domain.AxisDefinition
	row := db.conn.QueryRow(`
		SELECT id, user_id, left_label, right_label, emoji, color_start, color_end, created_at
		FROM axes WHERE user_id = ? AND id = ?
	`, userID, id)

	err := row.Scan(&a.ID, &a.UserID, &a.LeftLabel, &a.RightLabel, &a.Emoji, &a.ColorStart, &a.ColorEnd, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find axis %d: %w", id, err)
	}
	return &a, nil
}

// GetAxes retrieves all of a user's axes in creation order.
func (db *DB) GetAxes(userID string) ([]domain.AxisDefinition, error) {
	rows, err := db.conn.Query(`
		SELECT id, user_id, left_label, right_label, emoji, color_start, color_end, created_at
		FROM axes WHERE user_id = ? ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get axes: %w", err)
	}
	defer rows.Close()

	var axes []domain.AxisDefinition
	for rows.Next() {
		var a domain.AxisDefinition
		if err := rows.Scan(&a.ID, &a.UserID, &a.LeftLabel, &a.RightLabel, &a.Emoji, &a.ColorStart, &a.ColorEnd, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan axis row: %w", err)
		}
		axes = append(axes, a)
	}
	return axes, rows.Err()
}

// DeleteAxis removes an axis definition. Historical calibrations stay
// behind, orphaned.
func (db *DB) DeleteAxis(userID string, id int64) error {
	_, err := db.conn.Exec(`DELETE FROM axes WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete axis %d: %w", id, err)
	}
	return nil
}

// InsertCalibration appends a calibration event and fills in its ID.
// Calibrations are never updated or deleted.
func (db *DB) InsertCalibration(c *domain.AxisCalibration) error {
	res, err := db.conn.Exec(`
		INSERT INTO calibrations (user_id, axis_id, value, calibration_type, client_timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, c.UserID, c.AxisID, c.Value, string(c.CalibrationType), c.ClientTimestamp)
	if err != nil {
		return fmt.Errorf("failed to insert calibration for axis %d: %w", c.AxisID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get calibration insert ID: %w", err)
	}
	c.ID = id
	return nil
}

// GetCalibrations retrieves a user's calibration events for one axis,
// newest first, capped at limit.
func (db *DB) GetCalibrations(userID string, axisID int64, limit int) ([]domain.AxisCalibration, error) {
	rows, err := db.conn.Query(`
		SELECT id, user_id, axis_id, value, calibration_type, client_timestamp
		FROM calibrations
		WHERE user_id = ? AND axis_id = ?
		ORDER BY client_timestamp DESC, id DESC
		LIMIT ?
	`, userID, axisID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get calibrations for axis %d: %w", axisID, err)
	}
	defer rows.Close()

	var cals []domain.AxisCalibration
	for rows.Next() {
		var c domain.AxisCalibration
		var typ string
		if err := rows.Scan(&c.ID, &c.UserID, &c.AxisID, &c.Value, &typ, &c.ClientTimestamp); err != nil {
			return nil, fmt.Errorf("failed to scan calibration row: %w", err)
		}
		c.CalibrationType = domain.CalibrationType(typ)
		cals = append(cals, c)
	}
	return cals, rows.Err()
}

// LatestCalibration is the newest calibration of one axis, joined with the
// axis labels and creation time.
type LatestCalibration struct {
	AxisID       int64
	LeftLabel    string
	RightLabel   string
	Value        int
	CalibratedAt time.Time
	AxisCreated  time.Time
}

// GetLatestCalibrations returns, for each of the user's axes that has at
// least one calibration, the calibration with the latest client timestamp.
// Ties on the timestamp resolve to the most recently inserted row.
func (db *DB) GetLatestCalibrations(userID string) ([]LatestCalibration, error) {
	rows, err := db.conn.Query(`
		SELECT a.id, a.left_label, a.right_label, a.created_at, c.value, c.client_timestamp
		FROM axes a
		JOIN calibrations c ON c.user_id = a.user_id AND c.axis_id = a.id
		WHERE a.user_id = ?
		  AND c.id = (
			SELECT c2.id FROM calibrations c2
			WHERE c2.user_id = a.user_id AND c2.axis_id = a.id
			ORDER BY c2.client_timestamp DESC, c2.id DESC
			LIMIT 1
		  )
		ORDER BY a.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest calibrations: %w", err)
	}
	defer rows.Close()

	var latest []LatestCalibration
	for rows.Next() {
		var lc LatestCalibration
		if err := rows.Scan(&lc.AxisID, &lc.LeftLabel, &lc.RightLabel, &lc.AxisCreated, &lc.Value, &lc.CalibratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan latest calibration row: %w", err)
		}
		latest = append(latest, lc)
	}
	return latest, rows.Err()
}

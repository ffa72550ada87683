package storage

import (
	"database/sql"
	"fmt"

	"github.com/tempora-app/tempora/internal/dayclock"
	"github.com/tempora-app/tempora/internal/domain"
)

const flashcardColumns = `id, user_id, front, back, deck, ease_factor, interval_days,
	repetitions, next_review_date, created_at`

func scanFlashcard(row interface{ Scan(...any) error }) (*domain.Flashcard, error) {
	var f domain.Flashcard
	var due string
	err := row.Scan(&f.ID, &f.UserID, &f.Front, &f.Back, &f.Deck,
		&f.EaseFactor, &f.IntervalDays, &f.Repetitions, &due, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	f.NextReviewDate, err = scanDate(due)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// InsertFlashcard stores a new flashcard with its initial schedule. The
// insert is conflict-tolerant on (user_id, id): re-creating an identical
// card leaves the existing row and its review history untouched.
func (db *DB) InsertFlashcard(f *domain.Flashcard) error {
	_, err := db.conn.Exec(`
		INSERT INTO flashcards (id, user_id, front, back, deck, ease_factor, interval_days, repetitions, next_review_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, id) DO NOTHING
	`, f.ID, f.UserID, f.Front, f.Back, f.Deck,
		f.EaseFactor, f.IntervalDays, f.Repetitions, f.NextReviewDate.String(), f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert flashcard %s: %w", f.ID, err)
	}
	return nil
}

// FindFlashcard retrieves one of the user's flashcards, or nil if it does
// not exist or belongs to someone else.
func (db *DB) FindFlashcard(userID, id string) (*domain.Flashcard, error) {
	row := db.conn.QueryRow(`
		SELECT `+flashcardColumns+` FROM flashcards
		WHERE user_id = ? AND id = ?
	`, userID, id)

	f, err := scanFlashcard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find flashcard %s: %w", id, err)
	}
	return f, nil
}

// UpdateSchedule persists the review state of a flashcard after a review.
func (db *DB) UpdateSchedule(userID, id string, ease float64, intervalDays, repetitions int, nextReview dayclock.Date) error {
	_, err := db.conn.Exec(`
		UPDATE flashcards
		SET ease_factor = ?, interval_days = ?, repetitions = ?, next_review_date = ?
		WHERE user_id = ? AND id = ?
	`, ease, intervalDays, repetitions, nextReview.String(), userID, id)
	if err != nil {
		return fmt.Errorf("failed to update schedule for flashcard %s: %w", id, err)
	}
	return nil
}

// GetDueFlashcards retrieves cards whose next review date has arrived,
// oldest due first, capped at limit.
func (db *DB) GetDueFlashcards(userID string, today dayclock.Date, limit int) ([]domain.Flashcard, error) {
	rows, err := db.conn.Query(`
		SELECT `+flashcardColumns+` FROM flashcards
		WHERE user_id = ? AND next_review_date <= ?
		ORDER BY next_review_date ASC, created_at ASC
		LIMIT ?
	`, userID, today.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due flashcards: %w", err)
	}
	defer rows.Close()

	return collectFlashcards(rows)
}

// GetFlashcards retrieves all of a user's flashcards, optionally filtered
// by deck name, in creation order.
func (db *DB) GetFlashcards(userID, deck string) ([]domain.Flashcard, error) {
	query := `SELECT ` + flashcardColumns + ` FROM flashcards WHERE user_id = ?`
	args := []any{userID}
	if deck != "" {
		query += ` AND deck = ?`
		args = append(args, deck)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcards: %w", err)
	}
	defer rows.Close()

	return collectFlashcards(rows)
}

func collectFlashcards(rows *sql.Rows) ([]domain.Flashcard, error) {
	var cards []domain.Flashcard
	for rows.Next() {
		f, err := scanFlashcard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flashcard row: %w", err)
		}
		cards = append(cards, *f)
	}
	return cards, rows.Err()
}

// DeleteFlashcard removes a flashcard and, with it, its schedule.
func (db *DB) DeleteFlashcard(userID, id string) error {
	_, err := db.conn.Exec(`DELETE FROM flashcards WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete flashcard %s: %w", id, err)
	}
	return nil
}

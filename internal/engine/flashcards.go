package engine

import (
	"fmt"
	"io"

	"github.com/tempora-app/tempora/internal/cardkey"
	"github.com/tempora-app/tempora/internal/domain"
	"github.com/tempora-app/tempora/internal/parser"
	"github.com/tempora-app/tempora/internal/srs"
)

// CreateFlashcard stores a new card, due immediately. The card's ID is a
// content hash, so creating the same front/back/deck twice returns the
// existing card with its review history intact.
func (e *Engine) CreateFlashcard(userID, front, back, deck string, offsetMinutes int) (*domain.Flashcard, error) {
	if front == "" {
		return nil, fmt.Errorf("flashcard front must not be empty")
	}
	today := e.today(offsetMinutes)
	schedule := srs.NewSchedule(today)

	card := &domain.Flashcard{
		ID:             cardkey.Hash(front, back, deck),
		UserID:         userID,
		Front:          front,
		Back:           back,
		Deck:           deck,
		CreatedAt:      e.now(),
		EaseFactor:     schedule.EaseFactor,
		IntervalDays:   schedule.IntervalDays,
		Repetitions:    schedule.Repetitions,
		NextReviewDate: schedule.NextReviewDate,
	}
	if err := e.db.InsertFlashcard(card); err != nil {
		return nil, err
	}

	// Read back so a duplicate create returns the canonical row.
	stored, err := e.db.FindFlashcard(userID, card.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("flashcard %s missing after insert", card.ID)
	}
	e.log.Info("flashcard created", "user", userID, "card", stored.ID, "deck", deck)
	return stored, nil
}

// ImportFlashcards bulk-creates cards from a plain-text payload in the
// Q:/A:/D: line format. Cards already present are skipped; the returned
// slice holds every card named by the payload, new or existing.
func (e *Engine) ImportFlashcards(userID string, r io.Reader, offsetMinutes int) ([]domain.Flashcard, error) {
	parsed, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse import payload: %w", err)
	}

	cards := make([]domain.Flashcard, 0, len(parsed))
	for _, p := range parsed {
		card, err := e.CreateFlashcard(userID, p.Front, p.Back, p.Deck, offsetMinutes)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	e.log.Info("flashcards imported", "user", userID, "count", len(cards))
	return cards, nil
}

// ReviewFlashcard applies one review to a card's schedule. quality must be
// one of 1 (again), 3 (hard), 5 (good), 7 (easy).
func (e *Engine) ReviewFlashcard(userID, cardID string, quality int, offsetMinutes int) (*domain.Flashcard, error) {
	card, err := e.db.FindFlashcard(userID, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, &domain.NotFoundError{Kind: "flashcard", ID: cardID}
	}

	current := srs.Schedule{
		EaseFactor:     card.EaseFactor,
		IntervalDays:   card.IntervalDays,
		Repetitions:    card.Repetitions,
		NextReviewDate: card.NextReviewDate,
	}
	next, err := srs.Review(current, srs.Quality(quality), e.today(offsetMinutes))
	if err != nil {
		return nil, err
	}

	if err := e.db.UpdateSchedule(userID, cardID, next.EaseFactor, next.IntervalDays, next.Repetitions, next.NextReviewDate); err != nil {
		return nil, err
	}
	card.EaseFactor = next.EaseFactor
	card.IntervalDays = next.IntervalDays
	card.Repetitions = next.Repetitions
	card.NextReviewDate = next.NextReviewDate

	e.log.Info("flashcard reviewed",
		"user", userID,
		"card", cardID,
		"quality", quality,
		"interval_days", next.IntervalDays,
		"due", next.NextReviewDate.String(),
	)
	return card, nil
}

// DueFlashcards returns cards due today or earlier, oldest due first.
func (e *Engine) DueFlashcards(userID string, limit, offsetMinutes int) ([]domain.Flashcard, error) {
	if limit < 1 {
		limit = 20
	}
	return e.db.GetDueFlashcards(userID, e.today(offsetMinutes), limit)
}

// ListFlashcards returns the user's cards, optionally filtered by deck.
func (e *Engine) ListFlashcards(userID, deck string) ([]domain.Flashcard, error) {
	return e.db.GetFlashcards(userID, deck)
}

// DeleteFlashcard removes a card and its schedule.
func (e *Engine) DeleteFlashcard(userID, cardID string) error {
	card, err := e.db.FindFlashcard(userID, cardID)
	if err != nil {
		return err
	}
	if card == nil {
		return &domain.NotFoundError{Kind: "flashcard", ID: cardID}
	}
	if err := e.db.DeleteFlashcard(userID, cardID); err != nil {
		return err
	}
	e.log.Info("flashcard deleted", "user", userID, "card", cardID)
	return nil
}

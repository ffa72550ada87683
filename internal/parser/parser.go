// Package parser extracts flashcards from plain-text import payloads.
// Cards use a line-prefix format: "Q:" starts a front, "A:" the back, and
// an optional "D:" names the deck. Fields may span multiple lines; "---"
// or a new "Q:" starts the next card.
package parser

import (
	"bufio"
	"io"
	"strings"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
	deckPrefix  = "D:"
)

// Card is one parsed flashcard, not yet persisted.
type Card struct {
	Front string
	Back  string
	Deck  string
}

type state int

const (
	seeking state = iota
	readingFront
	readingBack
	readingDeck
)

// Parse reads from r and extracts all cards. Blocks without a front are
// dropped; a card with a front but no back is kept so the user can spot it.
func Parse(r io.Reader) ([]Card, error) {
	scanner := bufio.NewScanner(r)
	var cards []Card
	var current Card
	var block []string
	st := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch st {
		case readingFront:
			current.Front = content
		case readingBack:
			current.Back = content
		case readingDeck:
			current.Deck = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if current.Front != "" {
			cards = append(cards, current)
		}
		current = Card{}
		st = seeking
	}

	stripPrefix := func(line, prefix string) string {
		return strings.TrimPrefix(line[len(prefix):], " ")
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "---":
			finishCard()
		case strings.HasPrefix(line, frontPrefix):
			// A new front always starts a new card.
			if st != seeking {
				finishCard()
			}
			st = readingFront
			block = append(block, stripPrefix(line, frontPrefix))
		case strings.HasPrefix(line, backPrefix):
			flushBlock()
			st = readingBack
			block = append(block, stripPrefix(line, backPrefix))
		case strings.HasPrefix(line, deckPrefix):
			flushBlock()
			st = readingDeck
			block = append(block, stripPrefix(line, deckPrefix))
		default:
			if st != seeking {
				block = append(block, line)
			}
		}
	}

	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

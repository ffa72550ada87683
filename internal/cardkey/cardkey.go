// Package cardkey derives a stable content identity for flashcards.
// Creating the same card twice (modulo whitespace and casing) yields the
// same key, so duplicate creation collapses to the existing row.
package cardkey

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize concatenates a card's content after cleaning each part.
// Each field is lowercased, trimmed, and has its line endings normalized
// before joining.
func Normalize(front, back, deck string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// Joined with newlines so fields stay separated and "front"+"back"
	// cannot collide with a differently-split pair.
	return strings.Join([]string{
		normalizePart(front),
		normalizePart(back),
		normalizePart(deck),
	}, "\n")
}

// Hash returns the SHA-256 of the normalized card content as a hex string.
func Hash(front, back, deck string) string {
	sum := sha256.Sum256([]byte(Normalize(front, back, deck)))
	return fmt.Sprintf("%x", sum)
}

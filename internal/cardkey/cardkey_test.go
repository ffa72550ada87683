package cardkey

import "testing"

func TestNormalize(t *testing.T) {
	got := Normalize("  What is SM-2? \r\n", "A spaced-repetition algorithm.", "Study")
	expected := "what is sm-2?\na spaced-repetition algorithm.\nstudy"
	if got != expected {
		t.Errorf("Expected normalized string %q, got %q", expected, got)
	}
}

func TestHash(t *testing.T) {
	t.Run("generates correct hash", func(t *testing.T) {
		// SHA-256 of "q\na\nc"
		expected := "eb2456c1ee4f36305069dd0f63a30e92d5443129f5e8fd9a5ec490fbc4d4d8a2"
		if got := Hash("Q", "A", "C"); got != expected {
			t.Errorf("Expected hash %s, got %s", expected, got)
		}
	})

	t.Run("hash is deterministic", func(t *testing.T) {
		if Hash("Test", "", "") != Hash("Test", "", "") {
			t.Error("Expected identical cards to hash the same")
		}
	})

	t.Run("normalization collapses case and whitespace", func(t *testing.T) {
		a := Hash("  what is go? ", "A programming language.", "")
		b := Hash("What Is Go?", "A programming language.", "")
		if a != b {
			t.Error("Expected hashes to match after normalization")
		}
	})

	t.Run("different cards have different hashes", func(t *testing.T) {
		if Hash("Card 1", "", "") == Hash("Card 2", "", "") {
			t.Error("Expected different cards to hash differently")
		}
	})

	t.Run("deck is part of the identity", func(t *testing.T) {
		if Hash("Q", "A", "deck one") == Hash("Q", "A", "deck two") {
			t.Error("Expected the deck to distinguish otherwise identical cards")
		}
	})
}

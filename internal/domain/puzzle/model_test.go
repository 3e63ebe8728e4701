package puzzle

import (
	"errors"
	"testing"
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/domain/wordle"
)

func wordleDefinition(answer string) Definition {
	return Definition{
		GameID:      "wordle-2026-08-31",
		GameType:    GameTypeWordle,
		Variants:    []Variant{{ID: "v1", Wordle: &wordle.Content{Answer: answer}}},
		PublishedAt: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestDefinitionValidate_AcceptsWordleAnswer(t *testing.T) {
	t.Parallel()

	if err := wordleDefinition("faith").Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestDefinitionValidate_RejectsAccentedWordleAnswer(t *testing.T) {
	t.Parallel()

	// Check scores over a-z only, so the alphabet is enforced at publish
	// time rather than discovered mid-game.
	err := wordleDefinition("crêpe").Validate()
	if !errors.Is(err, wordle.ErrBadAnswer) {
		t.Fatalf("got=%v want=%v", err, wordle.ErrBadAnswer)
	}
}

func TestDefinitionValidate_RejectsEmptyVariants(t *testing.T) {
	t.Parallel()

	def := wordleDefinition("faith")
	def.Variants = nil
	if err := def.Validate(); !errors.Is(err, ErrNoVariants) {
		t.Fatalf("got=%v want=%v", err, ErrNoVariants)
	}
}

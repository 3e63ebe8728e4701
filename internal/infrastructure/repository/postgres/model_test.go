package postgres

import (
	"testing"
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
)

func TestDefinitionFromRow_DecodesVariantDocuments(t *testing.T) {
	t.Parallel()

	row := puzzleTableModel{
		GameID:   "connections-2026-08-31",
		GameType: "connections",
		Variants: `[
  {
    "id": "connections-a",
    "connections": {
      "categories": [
        {"name": "Gospels", "words": ["Matthew", "Mark", "Luke", "John"]},
        {"name": "Apostles", "words": ["Peter", "Andrew", "James", "Thomas"]},
        {"name": "Rivers", "words": ["Jordan", "Nile", "Tigris", "Euphrates"]},
        {"name": "Mountains", "words": ["Sinai", "Zion", "Carmel", "Horeb"]}
      ]
    }
  }
]`,
		PublishedAt: time.Now(),
	}

	def, err := definitionFromRow(row)
	if err != nil {
		t.Fatalf("definitionFromRow error: %v", err)
	}
	if def.GameType != puzzle.GameTypeConnections {
		t.Fatalf("game type: got=%s", def.GameType)
	}
	if len(def.Variants) != 1 || def.Variants[0].ID != "connections-a" {
		t.Fatalf("variants: %+v", def.Variants)
	}
	if got := len(def.Variants[0].Connections.Categories); got != 4 {
		t.Fatalf("categories: got=%d want=4", got)
	}
}

func TestDefinitionFromRow_RejectsInvalidStoredContent(t *testing.T) {
	t.Parallel()

	// A wordle row whose variant is missing its content must not surface
	// as a playable definition.
	row := puzzleTableModel{
		GameID:   "wordle-2026-08-31",
		GameType: "wordle",
		Variants: `[{"id": "wordle-a"}]`,
	}
	if _, err := definitionFromRow(row); err == nil {
		t.Fatalf("content-less variant accepted")
	}

	row.Variants = `not json`
	if _, err := definitionFromRow(row); err == nil {
		t.Fatalf("malformed JSON accepted")
	}
}

package memory

import (
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/domain/connections"
	"github.com/bereanlabs/daily-puzzles/internal/domain/crossword"
	"github.com/bereanlabs/daily-puzzles/internal/domain/matchup"
	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/verse"
	"github.com/bereanlabs/daily-puzzles/internal/domain/whoami"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordsearch"
)

// SeedDefinitions publishes one definition per game type for the given day,
// for local development and the in-memory backend.
func SeedDefinitions(day time.Time) []puzzle.Definition {
	return []puzzle.Definition{
		{
			GameID:   puzzle.DailyGameID(puzzle.GameTypeWordle, day),
			GameType: puzzle.GameTypeWordle,
			Variants: []puzzle.Variant{
				{ID: "wordle-a", Wordle: &wordle.Content{Answer: "FAITH"}},
				{ID: "wordle-b", Wordle: &wordle.Content{Answer: "GRACE"}},
				{ID: "wordle-c", Wordle: &wordle.Content{Answer: "MERCY"}},
			},
			PublishedAt: day,
		},
		{
			GameID:   puzzle.DailyGameID(puzzle.GameTypeConnections, day),
			GameType: puzzle.GameTypeConnections,
			Variants: []puzzle.Variant{
				{ID: "connections-a", Connections: &connections.Content{Categories: []connections.Category{
					{Name: "Gospels", Words: []string{"Matthew", "Mark", "Luke", "John"}},
					{Name: "Apostles", Words: []string{"Peter", "Andrew", "James", "Thomas"}},
					{Name: "Rivers", Words: []string{"Jordan", "Nile", "Tigris", "Euphrates"}},
					{Name: "Mountains", Words: []string{"Sinai", "Zion", "Carmel", "Horeb"}},
					{Name: "Prophets", Words: []string{"Isaiah", "Jeremiah", "Ezekiel", "Daniel"}},
					{Name: "Judges", Words: []string{"Gideon", "Samson", "Deborah", "Ehud"}},
				}}},
			},
			PublishedAt: day,
		},
		{
			GameID:   puzzle.DailyGameID(puzzle.GameTypeCrossword, day),
			GameType: puzzle.GameTypeCrossword,
			Variants: []puzzle.Variant{
				{ID: "crossword-a", Crossword: &crossword.Content{
					Rows: 4,
					Cols: 4,
					Clues: []crossword.Clue{
						{Number: 1, Direction: crossword.Across, Row: 0, Col: 0, Answer: "ACTS", Text: "Luke's sequel"},
						{Number: 3, Direction: crossword.Across, Row: 2, Col: 0, Answer: "EELS", Text: "Slippery swimmers"},
						{Number: 1, Direction: crossword.Down, Row: 0, Col: 0, Answer: "AMEN", Text: "Prayer closer"},
						{Number: 2, Direction: crossword.Down, Row: 0, Col: 2, Answer: "TOLL", Text: "Bell sound"},
					},
				}},
			},
			PublishedAt: day,
		},
		{
			GameID:   puzzle.DailyGameID(puzzle.GameTypeMatchup, day),
			GameType: puzzle.GameTypeMatchup,
			Variants: []puzzle.Variant{
				{ID: "matchup-a", Matchup: &matchup.Content{Pairs: []matchup.Pair{
					{Left: "David", Right: "Goliath"},
					{Left: "Ruth", Right: "Boaz"},
					{Left: "Moses", Right: "Aaron"},
					{Left: "Paul", Right: "Silas"},
					{Left: "Mary", Right: "Joseph"},
					{Left: "Abraham", Right: "Sarah"},
					{Left: "Isaac", Right: "Rebekah"},
					{Left: "Jacob", Right: "Rachel"},
				}}},
			},
			PublishedAt: day,
		},
		{
			GameID:   puzzle.DailyGameID(puzzle.GameTypeVerse, day),
			GameType: puzzle.GameTypeVerse,
			Variants: []puzzle.Variant{
				{ID: "verse-a", Verse: &verse.Content{
					Text:      "The Lord is my shepherd I shall not want",
					Reference: "Psalm 23:1",
				}},
				{ID: "verse-b", Verse: &verse.Content{
					Text:      "In the beginning God created the heavens and the earth",
					Reference: "Genesis 1:1",
				}},
			},
			PublishedAt: day,
		},
		{
			GameID:   puzzle.DailyGameID(puzzle.GameTypeWhoAmI, day),
			GameType: puzzle.GameTypeWhoAmI,
			Variants: []puzzle.Variant{
				{ID: "whoami-a", WhoAmI: &whoami.Content{Answer: "NEHEMIAH", Hint: "I rebuilt the wall"}},
				{ID: "whoami-b", WhoAmI: &whoami.Content{Answer: "BARNABAS", Hint: "Son of encouragement"}},
			},
			PublishedAt: day,
		},
		{
			GameID:   puzzle.DailyGameID(puzzle.GameTypeWordSearch, day),
			GameType: puzzle.GameTypeWordSearch,
			Variants: []puzzle.Variant{
				{ID: "wordsearch-a", WordSearch: &wordsearch.Content{
					Grid:  []string{"AMEN", "CLIP", "EXAM", "DOGS"},
					Words: []string{"AMEN", "ACED", "ALAS", "EXAM"},
				}},
			},
			PublishedAt: day,
		},
	}
}

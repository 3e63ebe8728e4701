package usecase

import (
	"fmt"
	"strings"

	"github.com/bereanlabs/daily-puzzles/internal/domain/assignment"
	"github.com/bereanlabs/daily-puzzles/internal/domain/connections"
	"github.com/bereanlabs/daily-puzzles/internal/domain/crossword"
	"github.com/bereanlabs/daily-puzzles/internal/domain/matchup"
	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/verse"
	"github.com/bereanlabs/daily-puzzles/internal/domain/whoami"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordsearch"
)

// ClientPuzzle is the client-safe derivation of an assigned variant: enough
// to render and play, never enough to reconstruct the solution. Exactly one
// per-type payload is set.
type ClientPuzzle struct {
	GameID   string
	GameType puzzle.GameType

	Wordle      *ClientWordle
	WhoAmI      *ClientWhoAmI
	Verse       *ClientVerse
	Connections *ClientConnections
	Matchup     *ClientMatchup
	WordSearch  *ClientWordSearch
	Crossword   *ClientCrossword
}

type ClientWordle struct {
	WordLength int
	MaxGuesses int
}

type ClientWhoAmI struct {
	Mask       string
	WordLength int
	Hint       string
}

type ClientVerse struct {
	Tokens    []string
	Reference string
}

type ClientConnections struct {
	Words []string
}

type ClientMatchup struct {
	Lefts  []string
	Rights []string
}

type ClientWordSearch struct {
	Grid  []string
	Words []string
}

type ClientCrossword struct {
	Rows  int
	Cols  int
	Cells [][]ClientCrosswordCell
	Clues []ClientCrosswordClue
}

type ClientCrosswordCell struct {
	Fillable bool
	Number   int
}

type ClientCrosswordClue struct {
	Number    int
	Direction crossword.Direction
	Row       int
	Col       int
	Length    int
	Text      string
}

// playedVariant is the authoritative content actually dealt to one player:
// the assigned variant with bank games narrowed to the recorded subset.
// It stays server-side; ClientPuzzle is derived from it.
type playedVariant struct {
	GameType    puzzle.GameType
	Seed        int64
	Wordle      *wordle.Content
	WhoAmI      *whoami.Content
	Verse       *verse.Content
	Connections []connections.Category
	Matchup     []matchup.Pair
	WordSearch  *wordsearch.Content
	Crossword   *crossword.Content
}

// resolvePlayed narrows a definition to the content recorded by an
// assignment. A missing variant or subset key means the published content
// changed after assignment, which the model forbids.
func resolvePlayed(def puzzle.Definition, item assignment.Assignment) (playedVariant, error) {
	var variant puzzle.Variant
	found := false
	for _, v := range def.Variants {
		if v.ID == item.VariantID {
			variant = v
			found = true
			break
		}
	}
	if !found {
		return playedVariant{}, fmt.Errorf("%w: variant %s missing from %s", ErrNoPuzzle, item.VariantID, def.GameID)
	}

	out := playedVariant{
		GameType:   def.GameType,
		Seed:       item.Seed,
		Wordle:     variant.Wordle,
		WhoAmI:     variant.WhoAmI,
		Verse:      variant.Verse,
		WordSearch: variant.WordSearch,
		Crossword:  variant.Crossword,
	}

	switch def.GameType {
	case puzzle.GameTypeConnections:
		byName := make(map[string]connections.Category, len(variant.Connections.Categories))
		for _, cat := range variant.Connections.Categories {
			byName[strings.ToLower(cat.Name)] = cat
		}
		for _, key := range item.SubsetKeys {
			cat, ok := byName[strings.ToLower(key)]
			if !ok {
				return playedVariant{}, fmt.Errorf("%w: category %q missing from %s", ErrNoPuzzle, key, def.GameID)
			}
			out.Connections = append(out.Connections, cat)
		}
	case puzzle.GameTypeMatchup:
		byLeft := make(map[string]matchup.Pair, len(variant.Matchup.Pairs))
		for _, p := range variant.Matchup.Pairs {
			byLeft[strings.ToLower(p.Left)] = p
		}
		for _, key := range item.SubsetKeys {
			p, ok := byLeft[strings.ToLower(key)]
			if !ok {
				return playedVariant{}, fmt.Errorf("%w: pair %q missing from %s", ErrNoPuzzle, key, def.GameID)
			}
			out.Matchup = append(out.Matchup, p)
		}
	}

	return out, nil
}

// clientPuzzle derives the client-safe payload for a played variant.
func clientPuzzle(gameID string, played playedVariant) (ClientPuzzle, error) {
	out := ClientPuzzle{GameID: gameID, GameType: played.GameType}

	switch played.GameType {
	case puzzle.GameTypeWordle:
		maxGuesses := played.Wordle.MaxGuesses
		if maxGuesses <= 0 {
			maxGuesses = wordle.DefaultMaxGuesses
		}
		out.Wordle = &ClientWordle{
			WordLength: len(wordle.Normalize(played.Wordle.Answer)),
			MaxGuesses: maxGuesses,
		}

	case puzzle.GameTypeWhoAmI:
		out.WhoAmI = &ClientWhoAmI{
			Mask:       whoami.Mask(played.WhoAmI.Answer),
			WordLength: len([]rune(played.WhoAmI.Answer)),
			Hint:       played.WhoAmI.Hint,
		}

	case puzzle.GameTypeVerse:
		out.Verse = &ClientVerse{
			Tokens:    verse.Scramble(verse.Tokens(played.Verse.Text), played.Seed),
			Reference: played.Verse.Reference,
		}

	case puzzle.GameTypeConnections:
		out.Connections = &ClientConnections{
			Words: connections.Shuffle(played.Connections, played.Seed),
		}

	case puzzle.GameTypeMatchup:
		lefts, rights := matchup.Columns(played.Matchup, played.Seed)
		out.Matchup = &ClientMatchup{Lefts: lefts, Rights: rights}

	case puzzle.GameTypeWordSearch:
		out.WordSearch = &ClientWordSearch{
			Grid:  append([]string(nil), played.WordSearch.Grid...),
			Words: append([]string(nil), played.WordSearch.Words...),
		}

	case puzzle.GameTypeCrossword:
		layout, err := crossword.NewLayout(*played.Crossword)
		if err != nil {
			return ClientPuzzle{}, fmt.Errorf("derive crossword layout: %w", err)
		}
		out.Crossword = clientCrossword(layout)
	}

	return out, nil
}

// clientCrossword exposes topology and clue prompts, never letters.
func clientCrossword(layout *crossword.Layout) *ClientCrossword {
	cells := make([][]ClientCrosswordCell, layout.Rows())
	for r := range cells {
		cells[r] = make([]ClientCrosswordCell, layout.Cols())
		for c := range cells[r] {
			meta, _ := layout.CellAt(crossword.Cell{Row: r, Col: c})
			cells[r][c] = ClientCrosswordCell{Fillable: meta.Fillable, Number: meta.Number}
		}
	}

	clues := layout.Clues()
	clientClues := make([]ClientCrosswordClue, 0, len(clues))
	for _, clue := range clues {
		clientClues = append(clientClues, ClientCrosswordClue{
			Number:    clue.Number,
			Direction: clue.Direction,
			Row:       clue.Row,
			Col:       clue.Col,
			Length:    len(strings.TrimSpace(clue.Answer)),
			Text:      clue.Text,
		})
	}

	return &ClientCrossword{
		Rows:  layout.Rows(),
		Cols:  layout.Cols(),
		Cells: cells,
		Clues: clientClues,
	}
}

package memory

import (
	"context"
	"sync"

	"github.com/bereanlabs/daily-puzzles/internal/domain/connections"
	"github.com/bereanlabs/daily-puzzles/internal/domain/crossword"
	"github.com/bereanlabs/daily-puzzles/internal/domain/matchup"
	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordsearch"
)

type PuzzleRepository struct {
	mu    sync.RWMutex
	items map[string]puzzle.Definition
}

func NewPuzzleRepository() *PuzzleRepository {
	return &PuzzleRepository{items: make(map[string]puzzle.Definition)}
}

func (r *PuzzleRepository) GetByGameID(_ context.Context, gameID string) (puzzle.Definition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[gameID]
	if !ok {
		return puzzle.Definition{}, false, nil
	}

	return cloneDefinition(item), true, nil
}

func (r *PuzzleRepository) Put(_ context.Context, item puzzle.Definition) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.GameID] = cloneDefinition(item)
	return nil
}

func cloneDefinition(item puzzle.Definition) puzzle.Definition {
	copied := item
	copied.Variants = make([]puzzle.Variant, len(item.Variants))
	for i, v := range item.Variants {
		copied.Variants[i] = cloneVariant(v)
	}
	return copied
}

func cloneVariant(v puzzle.Variant) puzzle.Variant {
	copied := v
	if v.Wordle != nil {
		c := *v.Wordle
		copied.Wordle = &c
	}
	if v.Connections != nil {
		c := connections.Content{Categories: make([]connections.Category, len(v.Connections.Categories))}
		for i, cat := range v.Connections.Categories {
			c.Categories[i] = connections.Category{
				Name:  cat.Name,
				Words: append([]string(nil), cat.Words...),
			}
		}
		copied.Connections = &c
	}
	if v.Crossword != nil {
		c := crossword.Content{
			Rows:  v.Crossword.Rows,
			Cols:  v.Crossword.Cols,
			Clues: append([]crossword.Clue(nil), v.Crossword.Clues...),
		}
		copied.Crossword = &c
	}
	if v.Matchup != nil {
		c := matchup.Content{Pairs: append([]matchup.Pair(nil), v.Matchup.Pairs...)}
		copied.Matchup = &c
	}
	if v.Verse != nil {
		c := *v.Verse
		copied.Verse = &c
	}
	if v.WhoAmI != nil {
		c := *v.WhoAmI
		copied.WhoAmI = &c
	}
	if v.WordSearch != nil {
		c := wordsearch.Content{
			Grid:  append([]string(nil), v.WordSearch.Grid...),
			Words: append([]string(nil), v.WordSearch.Words...),
		}
		copied.WordSearch = &c
	}
	return copied
}
